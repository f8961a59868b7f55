// ABOUTME: Retrieval pipeline: ingest files into the vector index and assemble query context
// ABOUTME: Per-file fault isolation; outcomes are user-facing Spanish strings
package rag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dvergara/nexo/internal/chunker"
	"github.com/dvergara/nexo/internal/extract"
	"github.com/dvergara/nexo/internal/models"
	"github.com/dvergara/nexo/internal/storage"
)

// NoContextSentinel is returned by Context when retrieval yields nothing.
// Callers rely on the exact string, never an empty one.
const NoContextSentinel = "No se encontró información relevante en el RAG."

// ErrEmbeddingUnavailable signals the embedding model could not be set up.
// Fatal at startup, never recoverable per call.
var ErrEmbeddingUnavailable = errors.New("modelo de embeddings no disponible")

// ingestible lists the extensions accepted into the knowledge base. Images
// are excluded: there is no embedding defined for an image record.
var ingestible = map[string]bool{
	".txt":  true,
	".md":   true,
	".py":   true,
	".log":  true,
	".pdf":  true,
	".json": true,
	".csv":  true,
	".xlsx": true,
}

// Embedder maps text to a fixed-dimension vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Manager orchestrates extractor, splitter, embedder and index
type Manager struct {
	splitter *chunker.Splitter
	embedder Embedder
	index    *storage.VectorIndex
	docsDir  string
}

// NewManager wires the retrieval pipeline. A nil embedder is refused up
// front: the pipeline is useless without one.
func NewManager(embedder Embedder, index *storage.VectorIndex, docsDir string) (*Manager, error) {
	if embedder == nil {
		return nil, ErrEmbeddingUnavailable
	}
	return &Manager{
		splitter: chunker.New(),
		embedder: embedder,
		index:    index,
		docsDir:  docsDir,
	}, nil
}

// IngestFile adds one file to the knowledge base and reports the outcome as
// text. All chunks of the file are embedded before a single batch write, so a
// failure anywhere before the add step leaves the index unchanged for this
// file.
func (m *Manager) IngestFile(ctx context.Context, path string) string {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))

	if !ingestible[ext] {
		return fmt.Sprintf("Tipo de archivo no soportado para RAG: %s", ext)
	}

	doc, err := extract.Extract(path)
	if err != nil {
		return fmt.Sprintf("❌ Error al agregar archivo: %v", err)
	}

	chunks := m.splitter.Split(doc.Content)
	records := make([]models.Record, 0, len(chunks))
	for i, content := range chunks {
		vector, err := m.embedder.Embed(ctx, content)
		if err != nil {
			return fmt.Sprintf("❌ Error al agregar archivo: %v", err)
		}
		records = append(records, models.Record{
			ID:       "chunk_" + uuid.New().String(),
			Content:  content,
			Vector:   vector,
			Source:   doc.Source,
			Path:     doc.Path,
			DocType:  doc.DocType,
			Position: i,
		})
	}

	if err := m.index.Add(records); err != nil {
		return fmt.Sprintf("❌ Error al agregar archivo: %v", err)
	}

	return fmt.Sprintf("✅ Archivo '%s' agregado al RAG (%d chunks)", name, len(records))
}

// IngestDir ingests every regular file in the configured documents directory,
// non-recursively. One file failing never stops the rest; the summary joins
// the per-file outcomes.
func (m *Manager) IngestDir(ctx context.Context) string {
	entries, err := os.ReadDir(m.docsDir)
	if err != nil {
		return fmt.Sprintf("❌ Error al leer la carpeta de documentos: %v", err)
	}

	var outcomes []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		outcomes = append(outcomes, m.IngestFile(ctx, filepath.Join(m.docsDir, entry.Name())))
	}
	return strings.Join(outcomes, "\n")
}

// Search returns the k most similar chunks, empty on any failure
func (m *Manager) Search(ctx context.Context, query string, k int) []models.SearchResult {
	vector, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil
	}
	return m.index.Search(vector, k)
}

// Context embeds the query, retrieves the top-k chunks and renders them as a
// numbered list with source filenames, ready for inclusion in a model prompt.
func (m *Manager) Context(ctx context.Context, query string, k int) string {
	results := m.Search(ctx, query, k)
	if len(results) == 0 {
		return NoContextSentinel
	}

	var sb strings.Builder
	sb.WriteString("### Información relevante del RAG:\n\n")
	for i, r := range results {
		fuente := r.Source
		if fuente == "" {
			fuente = "desconocida"
		}
		sb.WriteString(fmt.Sprintf("**[%d] Fuente: %s**\n%s\n\n", i+1, fuente, r.Content))
	}
	return sb.String()
}
