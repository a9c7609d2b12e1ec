package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure QAService implements the interface.
var _ driving.QAService = (*QAService)(nil)

// NoIndexAnswer is returned when a question arrives before any
// document has been indexed. This is a normal outcome, not an error.
const NoIndexAnswer = "No document indexed. Please upload and process a document first."

// unsafeNameChars matches characters that may not appear in an index
// name derived from a file name.
var unsafeNameChars = regexp.MustCompile(`[\\/*?:"<>|\x00]`)

// QAService orchestrates retrieval and answer synthesis into the
// single ask operation the outer layers call, and drives document
// ingestion from extraction through index build.
type QAService struct {
	indexes     *IndexService
	retriever   *Retriever
	synthesizer *Synthesizer
	extractor   driven.TextExtractor
	topK        int
}

// NewQAService creates a QA service. topK <= 0 selects DefaultTopK.
func NewQAService(
	indexes *IndexService,
	retriever *Retriever,
	synthesizer *Synthesizer,
	extractor driven.TextExtractor,
	topK int,
) *QAService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &QAService{
		indexes:     indexes,
		retriever:   retriever,
		synthesizer: synthesizer,
		extractor:   extractor,
		topK:        topK,
	}
}

// Ask answers query against the index named indexName; an empty name
// selects the default index. When no index exists the fixed
// NoIndexAnswer is returned with no sources and no error. Embedding
// and generation failures surface as their distinct error kinds.
func (s *QAService) Ask(ctx context.Context, query, indexName string) (*domain.Answer, error) {
	logger.Section("Ask")
	logger.Debug("Query: %q index: %q", query, indexName)

	index, err := s.indexes.Get(ctx, indexName)
	if err != nil {
		return nil, err
	}
	if index == nil {
		logger.Info("No index available")
		return &domain.Answer{Text: NoIndexAnswer, Sources: []string{}}, nil
	}

	chunks, err := s.retriever.Retrieve(ctx, index, query, s.topK)
	if err != nil {
		return nil, err
	}

	text, err := s.synthesizer.Synthesize(ctx, query, chunks)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{Text: text, Sources: distinctSources(chunks)}, nil
}

// Ingest splits, embeds and indexes text under name. Blank text is a
// no-op. A failed ingest aborts this document only; already-indexed
// documents stay usable.
func (s *QAService) Ingest(ctx context.Context, name, text string) error {
	_, err := s.indexes.Build(ctx, name, text)
	return err
}

// IngestFile extracts text from the file at path and indexes it under
// the sanitised base name. The index name used is returned even when
// the extracted text is blank and nothing was indexed.
func (s *QAService) IngestFile(ctx context.Context, path string) (string, error) {
	name := SanitizeName(filepath.Base(path))
	kind := KindForPath(path)

	text, err := s.extractor.Extract(ctx, path, kind)
	if err != nil {
		return name, fmt.Errorf("extracting %q: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		logger.Info("No text extracted from %q (%s)", path, kind)
		return name, nil
	}

	return name, s.Ingest(ctx, name, text)
}

// SanitizeName replaces path separators and other unsafe characters in
// a file name so it is usable as an index name and storage key.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// KindForPath maps a file extension to the extraction kind.
func KindForPath(path string) driven.FileKind {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "pdf":
		return driven.KindPDF
	case "docx":
		return driven.KindDOCX
	case "png", "jpg", "jpeg":
		return driven.KindImage
	default:
		return driven.KindText
	}
}

// distinctSources deduplicates the chunk source identifiers, keeping
// first-seen order.
func distinctSources(chunks []domain.Chunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if _, ok := seen[chunk.SourceID]; ok {
			continue
		}
		seen[chunk.SourceID] = struct{}{}
		sources = append(sources, chunk.SourceID)
	}
	return sources
}
