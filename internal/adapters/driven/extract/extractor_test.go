package extract

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

func TestExtractText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text content\nsecond line"), 0600))

	text, err := New().Extract(context.Background(), path, driven.KindText)
	require.NoError(t, err)
	assert.Equal(t, "plain text content\nsecond line", text)
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), "/nonexistent/notes.txt", driven.KindText)
	assert.Error(t, err)
}

func TestExtractUnsupportedKindYieldsEmpty(t *testing.T) {
	e := New()
	ctx := context.Background()

	for _, kind := range []driven.FileKind{driven.KindPDF, driven.KindImage} {
		text, err := e.Extract(ctx, "whatever.bin", kind)
		require.NoError(t, err)
		assert.Empty(t, text)
	}
}

func TestExtractDOCX(t *testing.T) {
	path := writeDOCX(t, `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>First paragraph.</t></r></p>
    <p><r><t>Second </t></r><r><t>paragraph.</t></r></p>
  </body>
</document>`)

	text, err := New().Extract(context.Background(), path, driven.KindDOCX)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtractDOCXWithoutDocumentXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, err := New().Extract(context.Background(), path, driven.KindDOCX)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractDOCXInvalidArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0600))

	_, err := New().Extract(context.Background(), path, driven.KindDOCX)
	assert.Error(t, err)
}

func TestSupportedKinds(t *testing.T) {
	assert.ElementsMatch(t,
		[]driven.FileKind{driven.KindText, driven.KindDOCX},
		New().SupportedKinds())
}

// writeDOCX builds a minimal DOCX archive holding the given
// word/document.xml content.
func writeDOCX(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}
