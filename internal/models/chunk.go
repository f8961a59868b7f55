// ABOUTME: Chunk and Record types for the retrieval pipeline
// ABOUTME: A Record is the (vector, text, metadata) triple persisted in the index
package models

// Chunk is a bounded-length segment of a Document's text with inherited
// metadata and an ordering position within its document.
type Chunk struct {
	ID       string  `json:"chunk_id"`
	Content  string  `json:"content"`
	Source   string  `json:"fuente"`
	Path     string  `json:"ruta"`
	DocType  DocType `json:"tipo"`
	Position int     `json:"position"`
}

// Record is an indexed chunk with its embedding vector
type Record struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Vector   []float64 `json:"vector"`
	Source   string    `json:"fuente"`
	Path     string    `json:"ruta"`
	DocType  DocType   `json:"tipo"`
	Position int       `json:"position"`
}

// SearchResult is a retrieved chunk ranked by similarity
type SearchResult struct {
	Content string  `json:"content"`
	Source  string  `json:"fuente"`
	Path    string  `json:"ruta"`
	DocType DocType `json:"tipo"`
	Score   float64 `json:"score"`
}
