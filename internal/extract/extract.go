// ABOUTME: Content Extractor converts a file path into text or structured content
// ABOUTME: Dispatches by extension; unsupported types are a named error outcome
package extract

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/dvergara/nexo/internal/models"
)

var (
	// ErrUnsupportedType is returned for unrecognized file extensions
	ErrUnsupportedType = errors.New("tipo de archivo no soportado")
	// ErrDecode is returned when content is present but unparseable
	ErrDecode = errors.New("no se pudo decodificar el contenido")
)

// textExtensions are read verbatim as UTF-8 text
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".py":  true,
	".log": true,
}

// imageExtensions are handled by ExtractImage, never by Extract
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether ext names an image type
func IsImage(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

// Extract reads the file at path and returns its decoded content as a
// Document. The extension decides the decoder. Image extensions are rejected
// here; callers wanting image content use ExtractImage.
func Extract(path string) (*models.Document, error) {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))

	var content string
	var err error

	switch {
	case textExtensions[ext]:
		content, err = readText(path)
	case ext == ".pdf":
		content, err = readPDF(path)
	case ext == ".json":
		content, err = readJSON(path)
	case ext == ".csv":
		content, err = readCSV(path)
	case ext == ".xlsx":
		content, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return nil, err
	}

	return &models.Document{
		Content: content,
		Source:  name,
		Path:    path,
		DocType: models.DocType(ext),
	}, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leyendo archivo de texto: %w", err)
	}
	return string(data), nil
}

// readPDF concatenates per-page extracted text in page order. A page that
// yields no extractable text contributes an empty string so partial
// extraction is not fatal.
func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("leyendo PDF: %w", err)
		}
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unextractable page: contributes nothing
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// readJSON validates and re-renders the document so malformed input is a
// decode error rather than garbage in the index.
func readJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leyendo JSON: %w", err)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	rendered, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(rendered), nil
}

func readCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("leyendo CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var sb strings.Builder
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		sb.WriteString(strings.Join(record, ", "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// readXLSX renders every sheet row by row, comma-joined like the CSV reader.
func readXLSX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leyendo Excel: %w", err)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer wb.Close()

	var sb strings.Builder
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, ", "))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
