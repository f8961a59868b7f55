// ABOUTME: Recursive character splitter for bounded, overlapping text chunks
// ABOUTME: Splits on a priority list of separators, falling back to hard cuts
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators is the priority order tried when splitting. The empty
// string is the terminal fallback that forces a hard cut at ChunkSize runes.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Splitter divides long text into chunks of at most ChunkSize runes,
// with adjacent chunks sharing up to ChunkOverlap trailing runes.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// New creates a Splitter with the default size, overlap and separators
func New() *Splitter {
	return &Splitter{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   DefaultSeparators,
	}
}

// Split divides text into ordered chunks. Separators are retained on the end
// of the piece they terminate, so concatenating the chunks with overlaps
// removed reconstructs the input exactly. An empty input yields one empty
// chunk.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return []string{""}
	}
	seps := s.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators
	}
	return s.splitText(text, seps)
}

// splitText picks the first separator present in text, splits on it, and
// recursively re-splits any piece still over ChunkSize with the remaining
// separators. Short pieces are merged back together up to ChunkSize.
func (s *Splitter) splitText(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" {
			separator = ""
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	splits := splitKeepingSeparator(text, separator)

	var chunks []string
	var short []string
	for _, piece := range splits {
		if utf8.RuneCountInString(piece) < s.ChunkSize {
			short = append(short, piece)
			continue
		}
		if len(short) > 0 {
			chunks = append(chunks, s.merge(short)...)
			short = nil
		}
		if len(remaining) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.splitText(piece, remaining)...)
		}
	}
	if len(short) > 0 {
		chunks = append(chunks, s.merge(short)...)
	}
	return chunks
}

// merge greedily joins pieces into chunks of at most ChunkSize runes. When a
// chunk closes, a trailing window of at most ChunkOverlap runes is carried
// into the next chunk.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var window []string
	total := 0

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total+n > s.ChunkSize && len(window) > 0 {
			chunks = append(chunks, strings.Join(window, ""))
			// Shrink the carried window to the overlap budget, and far
			// enough that the new piece fits.
			for total > s.ChunkOverlap || (total+n > s.ChunkSize && total > 0) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += n
	}
	if len(window) > 0 {
		chunks = append(chunks, strings.Join(window, ""))
	}
	return chunks
}

// splitKeepingSeparator splits text on sep, appending sep to the piece it
// terminates. The empty separator splits into individual runes.
func splitKeepingSeparator(text, sep string) []string {
	if sep == "" {
		runes := []rune(text)
		pieces := make([]string, 0, len(runes))
		for _, r := range runes {
			pieces = append(pieces, string(r))
		}
		return pieces
	}

	parts := strings.Split(text, sep)
	pieces := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return pieces
}
