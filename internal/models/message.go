// ABOUTME: Conversation history message records
// ABOUTME: Role-tagged, append-only for the process lifetime
package models

// Role tags a conversation message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation history
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
