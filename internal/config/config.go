// ABOUTME: Centralized configuration for the nexo assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all configuration for the assistant
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Notion settings
	NotionToken string

	// RAG settings
	DocsDir         string
	DataDir         string
	VectorDimension int
	TopK            int

	// Agent settings
	MaxToolRounds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("NEXO_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("NEXO_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		NotionToken:     os.Getenv("NOTION_TOKEN"),
		DocsDir:         getEnv("NEXO_DOCS_DIR", "./documentos_rag"),
		DataDir:         getEnv("NEXO_DATA_DIR", defaultDataDir()),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
		TopK:            getEnvInt("NEXO_TOP_K", 5),
		MaxToolRounds:   getEnvInt("NEXO_MAX_TOOL_ROUNDS", 10),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("NEXO_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxToolRounds <= 0 {
		return fmt.Errorf("NEXO_MAX_TOOL_ROUNDS must be positive, got %d", c.MaxToolRounds)
	}
	return nil
}

// defaultDataDir returns the XDG data directory for the vector index.
// Respects XDG_DATA_HOME override for testing.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "nexo")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
