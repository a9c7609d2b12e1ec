package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func TestNewDefaults(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultChunkSize, s.ChunkSize())
	assert.Equal(t, DefaultOverlap, s.Overlap())
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero chunk size", []Option{WithChunkSize(0)}},
		{"negative chunk size", []Option{WithChunkSize(-1)}},
		{"negative overlap", []Option{WithOverlap(-1)}},
		{"overlap equals chunk size", []Option{WithChunkSize(100), WithOverlap(100)}},
		{"overlap exceeds chunk size", []Option{WithChunkSize(100), WithOverlap(150)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSplitBlankText(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	assert.Nil(t, s.Split("", "doc"))
	assert.Nil(t, s.Split("   \n\t  ", "doc"))
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	chunks := s.Split("a short document", "doc")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0].Text)
	assert.Equal(t, "doc", chunks[0].SourceID)
	assert.Equal(t, 0, chunks[0].Position)
	assert.NotEmpty(t, chunks[0].ID)
}

func TestSplitPrefersParagraphBreaks(t *testing.T) {
	s, err := New(WithChunkSize(10), WithOverlap(0))
	require.NoError(t, err)

	chunks := s.Split("aaaaaa\n\nbbbbbb", "doc")
	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaaaa\n\n", chunks[0].Text)
	assert.Equal(t, "bbbbbb", chunks[1].Text)
}

func TestSplitHardCutWithoutSeparators(t *testing.T) {
	s, err := New(WithChunkSize(10), WithOverlap(0))
	require.NoError(t, err)

	chunks := s.Split(strings.Repeat("x", 25), "doc")
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("x", 10), chunks[0].Text)
	assert.Equal(t, strings.Repeat("x", 10), chunks[1].Text)
	assert.Equal(t, strings.Repeat("x", 5), chunks[2].Text)
}

func TestSplitChunkSizeBound(t *testing.T) {
	s, err := New(WithChunkSize(50), WithOverlap(0))
	require.NoError(t, err)

	text := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	for _, chunk := range s.Split(text, "doc") {
		assert.LessOrEqual(t, len(chunk.Text), 50)
	}
}

func TestSplitOverlapPrefixesPreviousTail(t *testing.T) {
	s, err := New(WithChunkSize(10), WithOverlap(3))
	require.NoError(t, err)

	chunks := s.Split("aaaa bbbb cccc", "doc")
	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaa bbbb ", chunks[0].Text)
	assert.Equal(t, "bb cccc", chunks[1].Text)
}

func TestSplitPositionsAscend(t *testing.T) {
	s, err := New(WithChunkSize(20), WithOverlap(4))
	require.NoError(t, err)

	chunks := s.Split(strings.Repeat("word after word. ", 10), "doc")
	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Position)
	}
}

func TestSplitReconstruction(t *testing.T) {
	text := "First paragraph talks about one thing at length.\n\n" +
		"Second paragraph covers another topic entirely, and keeps going\n" +
		"over multiple lines with words of varying length.\n\n" +
		"Third paragraph closes the document with a short remark."

	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"no overlap", 40, 0},
		{"small overlap", 40, 8},
		{"large chunks", 120, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(WithChunkSize(tt.size), WithOverlap(tt.overlap))
			require.NoError(t, err)

			chunks := s.Split(text, "doc")
			require.NotEmpty(t, chunks)
			assert.Equal(t, text, reconstruct(chunks, tt.overlap))
		})
	}
}

// reconstruct strips each chunk's leading overlap and concatenates the
// remaining bodies.
func reconstruct(chunks []domain.Chunk, overlap int) string {
	var b strings.Builder
	prevLen := 0
	for i, chunk := range chunks {
		body := chunk.Text
		if i > 0 {
			strip := overlap
			if strip > prevLen {
				strip = prevLen
			}
			body = body[strip:]
		}
		b.WriteString(body)
		prevLen = len(body)
	}
	return b.String()
}
