// Package chunker splits document text into overlapping chunks for
// embedding and retrieval.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 400

// DefaultOverlap is the default number of overlapping characters
// shared between adjacent chunks.
const DefaultOverlap = 40

// separators is the split priority: paragraph break, line break, word
// boundary, then a hard cut at the character boundary.
var separators = []string{"\n\n", "\n", " ", ""}

// Splitter cuts text into chunks no larger than its chunk size, using
// the highest-priority separator that fits and falling back down the
// priority list for oversized pieces. Adjacent chunks share trailing/
// leading context so meaning spanning a cut stays retrievable.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		s.chunkSize = size
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// New creates a Splitter. Parameters must satisfy
// 0 <= overlap < chunkSize; anything else is a configuration error,
// reported as domain.ErrInvalidInput rather than silently corrected.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 || s.overlap < 0 || s.overlap >= s.chunkSize {
		return nil, domain.ErrInvalidInput
	}

	return s, nil
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split cuts text into chunks attributed to sourceID. Blank or
// whitespace-only input yields no chunks and no error.
//
// Concatenating the chunks with each chunk's leading overlap removed
// reconstructs the input exactly.
func (s *Splitter) Split(text, sourceID string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	pieces := s.splitRecursive(text, separators)
	merged := s.merge(pieces)

	chunks := make([]domain.Chunk, 0, len(merged))
	for i, body := range merged {
		if i > 0 && s.overlap > 0 {
			prev := merged[i-1]
			tail := s.overlap
			if tail > len(prev) {
				tail = len(prev)
			}
			body = prev[len(prev)-tail:] + body
		}
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			SourceID: sourceID,
			Text:     body,
			Position: i,
		})
	}

	return chunks
}

// splitRecursive cuts text into pieces no larger than the chunk size.
// Separators stay attached to the piece they terminate, so the pieces
// concatenate back to the input losslessly.
func (s *Splitter) splitRecursive(text string, seps []string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	sep := seps[0]
	if sep == "" {
		// Last resort: hard cut at the character boundary.
		var out []string
		for len(text) > s.chunkSize {
			out = append(out, text[:s.chunkSize])
			text = text[s.chunkSize:]
		}
		if text != "" {
			out = append(out, text)
		}
		return out
	}

	var out []string
	for _, part := range splitAfter(text, sep) {
		if len(part) <= s.chunkSize {
			out = append(out, part)
			continue
		}
		out = append(out, s.splitRecursive(part, seps[1:])...)
	}
	return out
}

// merge greedily joins consecutive pieces while the result stays
// within the chunk size.
func (s *Splitter) merge(pieces []string) []string {
	var out []string
	var cur strings.Builder

	for _, piece := range pieces {
		if cur.Len() > 0 && cur.Len()+len(piece) > s.chunkSize {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteString(piece)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// splitAfter is strings.SplitAfter without the trailing empty element
// produced when the text ends with the separator.
func splitAfter(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}
