// ABOUTME: Shared setup and helpers for CLI commands
// ABOUTME: Builds the pipeline, workspace client and index from configuration
package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/dvergara/nexo/internal/config"
	"github.com/dvergara/nexo/internal/llm"
	"github.com/dvergara/nexo/internal/rag"
	"github.com/dvergara/nexo/internal/storage"
	"github.com/dvergara/nexo/internal/workspace"
)

// components bundles everything a command needs
type components struct {
	cfg       *config.Config
	client    *llm.Client
	index     *storage.VectorIndex
	manager   *rag.Manager
	workspace *workspace.Client
}

// setup loads .env and config, then wires the pipeline. Embedding-model
// setup failure is fatal here, per the startup contract.
func setup() (*components, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrEmbeddingUnavailable, err)
	}

	index, err := storage.Open(cfg.DataDir, cfg.VectorDimension)
	if err != nil {
		return nil, fmt.Errorf("opening vector index: %w", err)
	}

	manager, err := rag.NewManager(client, index, cfg.DocsDir)
	if err != nil {
		index.Close()
		return nil, err
	}

	return &components{
		cfg:       cfg,
		client:    client,
		index:     index,
		manager:   manager,
		workspace: workspace.New(cfg.NotionToken),
	}, nil
}

func (c *components) close() {
	c.index.Close()
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
