// ABOUTME: Persistent vector index on SQLite with cosine similarity search
// ABOUTME: Growth-only record store; search degrades to empty results on backend failure
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/dvergara/nexo/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	source     TEXT NOT NULL,
	path       TEXT NOT NULL,
	doc_type   TEXT NOT NULL,
	position   INTEGER NOT NULL,
	vector     TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// VectorIndex stores (vector, text, metadata) records and answers
// k-nearest-neighbor queries by brute-force cosine similarity.
type VectorIndex struct {
	db   *sql.DB
	path string

	// Dimension is enforced on Add when non-zero. Tests use 0 to store
	// small vectors.
	Dimension int

	mu sync.Mutex // serializes batch writes
}

// Open creates or opens the index database under dataDir
func Open(dataDir string, dimension int) (*VectorIndex, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "rag.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &VectorIndex{db: db, path: dbPath, Dimension: dimension}, nil
}

// Close closes the underlying database
func (vi *VectorIndex) Close() error {
	return vi.db.Close()
}

// Add appends records in a single transaction. Duplicate text is legal:
// re-ingesting a file grows the index, it never merges.
func (vi *VectorIndex) Add(records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if vi.Dimension != 0 && len(r.Vector) != vi.Dimension {
			return fmt.Errorf("invalid embedding dimension: expected %d, got %d", vi.Dimension, len(r.Vector))
		}
	}

	vi.mu.Lock()
	defer vi.mu.Unlock()

	tx, err := vi.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO records (id, content, source, path, doc_type, position, vector) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		vec, err := json.Marshal(r.Vector)
		if err != nil {
			return fmt.Errorf("encoding vector: %w", err)
		}
		if _, err := stmt.Exec(r.ID, r.Content, r.Source, r.Path, string(r.DocType), r.Position, string(vec)); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Search returns the k nearest records to the query vector, nearest first.
// Backend failures degrade to an empty result set so the conversational flow
// stays non-fatal; the cause is logged.
func (vi *VectorIndex) Search(queryVector []float64, k int) []models.SearchResult {
	results := vi.SearchWithScores(queryVector, k)
	return results
}

// SearchWithScores is Search with the cosine similarity score attached
func (vi *VectorIndex) SearchWithScores(queryVector []float64, k int) []models.SearchResult {
	rows, err := vi.db.Query(`SELECT content, source, path, doc_type, vector FROM records`)
	if err != nil {
		log.Printf("Warning: vector index query failed: %v", err)
		return nil
	}
	defer rows.Close()

	var all []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		var docType, vecJSON string
		if err := rows.Scan(&r.Content, &r.Source, &r.Path, &docType, &vecJSON); err != nil {
			continue
		}
		var vec []float64
		if err := json.Unmarshal([]byte(vecJSON), &vec); err != nil {
			continue
		}
		r.DocType = models.DocType(docType)
		r.Score = cosineSimilarity(queryVector, vec)
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Warning: vector index scan failed: %v", err)
		return nil
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	if len(all) > k {
		all = all[:k]
	}
	return all
}

// Count returns the number of stored records
func (vi *VectorIndex) Count() (int, error) {
	var n int
	if err := vi.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
