// ABOUTME: Document and image content types produced by extraction
// ABOUTME: A Document carries decoded text plus its source metadata
package models

// DocType identifies the decoder that produced a document, by extension
type DocType string

const (
	DocTypeTxt      DocType = ".txt"
	DocTypeMarkdown DocType = ".md"
	DocTypePython   DocType = ".py"
	DocTypeLog      DocType = ".log"
	DocTypePDF      DocType = ".pdf"
	DocTypeJSON     DocType = ".json"
	DocTypeCSV      DocType = ".csv"
	DocTypeXLSX     DocType = ".xlsx"
)

// Document is the decoded content of a file plus its provenance
type Document struct {
	Content string  `json:"content"`
	Source  string  `json:"fuente"`
	Path    string  `json:"ruta"`
	DocType DocType `json:"tipo"`
}

// ImageContent is the self-contained representation of an image file:
// the original bytes as a base64 data URI plus basic geometry. Consumers
// reference or display images, never compute on pixels.
type ImageContent struct {
	DataURI string `json:"data_uri"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Mode    string `json:"mode"`
	Format  string `json:"format"`
}
