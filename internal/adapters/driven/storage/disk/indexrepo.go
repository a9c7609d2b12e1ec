// Package disk persists document indexes on the local filesystem.
//
// Each index is stored as a pair of artifacts keyed by name: a binary
// vector artifact (<name>.vec) and a metadata artifact
// (<name>.meta.json) holding the chunks and the embedding model. Both
// must be present for a load to succeed; a partial pair is reported as
// absent.
package disk

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure IndexRepository implements the interface.
var _ driven.IndexRepository = (*IndexRepository)(nil)

// Artifact suffixes.
const (
	vectorSuffix = ".vec"
	metaSuffix   = ".meta.json"
)

// IndexRepository stores index artifact pairs under a root directory.
type IndexRepository struct {
	dir string
}

// indexMeta is the on-disk metadata artifact.
type indexMeta struct {
	Name   string      `json:"name"`
	Model  string      `json:"model"`
	Chunks []chunkMeta `json:"chunks"`
}

type chunkMeta struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// NewIndexRepository creates a repository rooted at dir, creating the
// directory if needed. If dir is empty, defaults to
// ~/.docqa/data/vectorstores.
func NewIndexRepository(dir string) (*IndexRepository, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".docqa", "data", "vectorstores")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	return &IndexRepository{dir: dir}, nil
}

// Dir returns the repository root directory.
func (r *IndexRepository) Dir() string {
	return r.dir
}

// Save persists the index as a vector/metadata artifact pair,
// replacing any prior pair of the same name.
func (r *IndexRepository) Save(ctx context.Context, index *domain.DocumentIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	meta := indexMeta{
		Name:   index.Name,
		Model:  index.Model,
		Chunks: make([]chunkMeta, len(index.Entries)),
	}
	vectors := make([][]float32, len(index.Entries))
	for i, entry := range index.Entries {
		meta.Chunks[i] = chunkMeta{
			ID:       entry.Chunk.ID,
			SourceID: entry.Chunk.SourceID,
			Text:     entry.Chunk.Text,
			Position: entry.Chunk.Position,
		}
		vectors[i] = entry.Embedding
	}

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling index metadata: %w", err)
	}

	if err := os.WriteFile(r.vectorPath(index.Name), encodeVectors(vectors), 0600); err != nil {
		return fmt.Errorf("writing vector artifact: %w", err)
	}
	if err := os.WriteFile(r.metaPath(index.Name), metaJSON, 0600); err != nil {
		return fmt.Errorf("writing metadata artifact: %w", err)
	}
	return nil
}

// Load reads the artifact pair for name. A missing or partial pair is
// domain.ErrNotFound; undecodable artifacts are domain.ErrIndexCorrupt.
func (r *IndexRepository) Load(ctx context.Context, name string) (*domain.DocumentIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metaJSON, err := os.ReadFile(r.metaPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading metadata artifact: %w", err)
	}
	vecData, err := os.ReadFile(r.vectorPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading vector artifact: %w", err)
	}

	var meta indexMeta
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, fmt.Errorf("%w: metadata for %q: %v", domain.ErrIndexCorrupt, name, err)
	}

	vectors, err := decodeVectors(vecData)
	if err != nil {
		return nil, fmt.Errorf("%w: vectors for %q: %v", domain.ErrIndexCorrupt, name, err)
	}
	if len(vectors) != len(meta.Chunks) {
		return nil, fmt.Errorf("%w: %q has %d vectors for %d chunks",
			domain.ErrIndexCorrupt, name, len(vectors), len(meta.Chunks))
	}

	index := &domain.DocumentIndex{
		Name:    meta.Name,
		Model:   meta.Model,
		Entries: make([]domain.IndexEntry, len(meta.Chunks)),
	}
	for i, c := range meta.Chunks {
		index.Entries[i] = domain.IndexEntry{
			Embedding: vectors[i],
			Chunk: domain.Chunk{
				ID:       c.ID,
				SourceID: c.SourceID,
				Text:     c.Text,
				Position: c.Position,
			},
		}
	}
	return index, nil
}

// List returns the names of all complete artifact pairs, sorted.
func (r *IndexRepository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("reading index directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metaSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), metaSuffix)
		if _, err := os.Stat(r.vectorPath(name)); err != nil {
			continue // incomplete pair
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes both artifacts for name. Absent artifacts are ignored.
func (r *IndexRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, path := range []string{r.vectorPath(name), r.metaPath(name)} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}

func (r *IndexRepository) vectorPath(name string) string {
	return filepath.Join(r.dir, name+vectorSuffix)
}

func (r *IndexRepository) metaPath(name string) string {
	return filepath.Join(r.dir, name+metaSuffix)
}

// encodeVectors serialises vectors as a count header followed by, per
// vector, a length header and little-endian float32 values.
func encodeVectors(vectors [][]float32) []byte {
	size := 4
	for _, v := range vectors {
		size += 4 + len(v)*4
	}
	buf := make([]byte, 0, size)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vectors)))
	for _, v := range vectors {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(v)))
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// decodeVectors reverses encodeVectors.
func decodeVectors(data []byte) ([][]float32, error) {
	if len(data) < 4 {
		return nil, errors.New("truncated vector artifact")
	}
	count := binary.LittleEndian.Uint32(data)
	data = data[4:]
	// Each vector costs at least a length header; a count beyond that
	// is a corrupt header, not a huge allocation.
	if uint64(count)*4 > uint64(len(data)) {
		return nil, errors.New("vector count exceeds artifact size")
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		if len(data) < 4 {
			return nil, errors.New("truncated vector header")
		}
		n := binary.LittleEndian.Uint32(data)
		data = data[4:]
		if uint64(n)*4 > uint64(len(data)) {
			return nil, errors.New("truncated vector values")
		}
		vec := make([]float32, n)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[j*4:]))
		}
		vectors[i] = vec
		data = data[n*4:]
	}
	if len(data) != 0 {
		return nil, errors.New("trailing bytes in vector artifact")
	}
	return vectors, nil
}
