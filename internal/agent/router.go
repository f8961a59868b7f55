// ABOUTME: Tool router and agent loop driving model-issued tool calls
// ABOUTME: Bounded iteration; tool failures become text, never crash the loop
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dvergara/nexo/internal/models"
)

const (
	// SystemPrompt frames the assistant for a corporate setting
	SystemPrompt = "Eres un asistente útil, correcto y educado. Idoneo para un entorno corporativo."

	// IncompleteAnswer is the distinct terminal outcome when the tool-call
	// round limit is exhausted before the model produces a direct answer.
	IncompleteAnswer = "Respuesta incompleta: se alcanzó el límite de iteraciones de herramientas."

	// DefaultMaxRounds bounds the tool-call loop
	DefaultMaxRounds = 10
)

// ChatModel is the language model the router drives
type ChatModel interface {
	Chat(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}

// Router owns the tool set and runs the agent loop for one user message at a
// time.
type Router struct {
	model     ChatModel
	tools     []Tool
	maxRounds int
}

// NewRouter builds a router over a fixed tool set
func NewRouter(model ChatModel, tools []Tool, maxRounds int) *Router {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Router{model: model, tools: tools, maxRounds: maxRounds}
}

// Answer runs the loop: the model sees the history, the user message and the
// tool set; requested tool calls execute synchronously in order, their text
// results go back to the model, and the loop continues until a direct answer
// or the round limit. The returned history has the user and assistant turns
// appended.
func (r *Router) Answer(ctx context.Context, history []models.Message, userMessage string) (string, []models.Message, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	answer := IncompleteAnswer
	for round := 0; round < r.maxRounds; round++ {
		reply, err := r.model.Chat(ctx, messages, r.modelTools())
		if err != nil {
			return "", history, fmt.Errorf("consultando al modelo: %w", err)
		}

		if len(reply.ToolCalls) == 0 {
			answer = reply.Content
			break
		}

		messages = append(messages, reply)
		for _, call := range reply.ToolCalls {
			result := r.dispatch(ctx, call)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	history = append(history,
		models.Message{Role: models.RoleUser, Content: userMessage},
		models.Message{Role: models.RoleAssistant, Content: answer},
	)
	return answer, history, nil
}

// dispatch executes one tool call, converting every failure into an error
// string for the model.
func (r *Router) dispatch(ctx context.Context, call openai.ToolCall) string {
	tool, ok := r.find(call.Function.Name)
	if !ok {
		return fmt.Sprintf("❌ Herramienta desconocida: %s", call.Function.Name)
	}

	args := Args{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("❌ Argumentos inválidos para %s: %v", call.Function.Name, err)
		}
	}

	return tool.Run(ctx, args)
}

// find locates a tool in the closed set
func (r *Router) find(name string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// modelTools converts the tool set to the wire format
func (r *Router) modelTools() []openai.Tool {
	tools := make([]openai.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return tools
}
