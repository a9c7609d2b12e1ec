// Package extract provides plain-text extraction from uploaded files.
//
// Text and DOCX files are handled natively. PDF and image extraction
// require external OCR/parsing tooling and are outside this adapter;
// those kinds yield an empty string rather than an error, so an
// unsupported upload degrades to "nothing to index".
package extract

import (
	"context"
	"os"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor extracts plain text from local files.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedKinds returns the kinds this extractor produces text for.
func (e *Extractor) SupportedKinds() []driven.FileKind {
	return []driven.FileKind{driven.KindText, driven.KindDOCX}
}

// Extract returns the text content of the file at path. Unsupported
// kinds return an empty string, not an error.
func (e *Extractor) Extract(ctx context.Context, path string, kind driven.FileKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch kind {
	case driven.KindText:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case driven.KindDOCX:
		return extractDOCX(path)

	default:
		logger.Info("Extraction for kind %q not supported, skipping %q", kind, path)
		return "", nil
	}
}
