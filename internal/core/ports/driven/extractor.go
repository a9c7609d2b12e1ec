package driven

import "context"

// FileKind identifies the format of an uploaded file for extraction.
type FileKind string

// Supported file kinds.
const (
	KindPDF   FileKind = "pdf"
	KindDOCX  FileKind = "docx"
	KindText  FileKind = "text"
	KindImage FileKind = "image"
)

// TextExtractor extracts plain text from uploaded files.
//
// Extraction is a thin capability at the edge of the system: kinds an
// implementation cannot handle yield an empty string, not an error.
type TextExtractor interface {
	// Extract returns the text content of the file at path.
	Extract(ctx context.Context, path string, kind FileKind) (string, error)

	// SupportedKinds returns the kinds this extractor produces text for.
	SupportedKinds() []FileKind
}
