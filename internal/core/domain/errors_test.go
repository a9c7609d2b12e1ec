package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrEmbeddingFailed", ErrEmbeddingFailed},
		{"ErrGenerationFailed", ErrGenerationFailed},
		{"ErrModelMismatch", ErrModelMismatch},
		{"ErrIndexCorrupt", ErrIndexCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that the sentinel errors do not match each other
func TestErrors_Distinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrEmbeddingFailed,
		ErrGenerationFailed,
		ErrModelMismatch,
		ErrIndexCorrupt,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				assert.True(t, errors.Is(a, b))
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

// TestErrors_WrappedMatch tests that wrapped sentinels stay matchable
func TestErrors_WrappedMatch(t *testing.T) {
	wrapped := fmt.Errorf("building index: %w: %w", ErrEmbeddingFailed, errors.New("connection refused"))
	assert.True(t, errors.Is(wrapped, ErrEmbeddingFailed))
	assert.False(t, errors.Is(wrapped, ErrGenerationFailed))
}
