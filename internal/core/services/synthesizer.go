package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// answerTemplate is the fixed instruction template answers are
// generated from. The context block is filled with retrieved chunk
// texts in retrieval order.
const answerTemplate = `You are a helpful assistant. Answer the question based on the given context.

- Use numbered steps if the answer involves multiple stages.
- Return tables in markdown if helpful.
- If the document contains code, return code blocks using triple backticks.
- If you don't know, say so honestly.

Context:
%s

Question:
%s`

// synthesisTemperature keeps generation close to the source material.
const synthesisTemperature = 0.2

// Synthesizer composes retrieved context into a prompt and produces an
// answer through the language model.
type Synthesizer struct {
	llm driven.LLMService
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(llm driven.LLMService) *Synthesizer {
	return &Synthesizer{llm: llm}
}

// Synthesize generates an answer to query grounded on chunks. The
// generated text is returned verbatim. Generation failure propagates
// as domain.ErrGenerationFailed; there is no retry.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, chunks []domain.Chunk) (string, error) {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	prompt := fmt.Sprintf(answerTemplate, strings.Join(texts, "\n\n"), query)
	logger.Debug("Prompt: %d chars over %d chunks", len(prompt), len(chunks))

	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: synthesisTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("synthesizing answer: %w: %w", domain.ErrGenerationFailed, err)
	}
	return answer, nil
}
