// Package watch monitors an upload directory and ingests new or
// modified documents automatically.
package watch

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// watchedExtensions are the upload formats the watcher reacts to.
var watchedExtensions = []string{".pdf", ".docx", ".txt", ".md", ".png", ".jpg", ".jpeg"}

// Watcher re-ingests documents as files appear in an upload directory.
// Each create or write event triggers a full rebuild of that
// document's index; there are no incremental updates.
type Watcher struct {
	qa      driving.QAService
	watcher *fsnotify.Watcher
}

// New creates a watcher driving the given QA service.
func New(qa driving.QAService) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{qa: qa, watcher: fw}, nil
}

// Run watches dir until ctx is cancelled, ingesting every created or
// modified file with a watched extension. Ingest failures abort only
// that document; the watcher keeps running.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	logger.Info("Watching %s for documents", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isWatchedExtension(event.Name) {
				continue
			}

			name, err := w.qa.IngestFile(ctx, event.Name)
			if err != nil {
				logger.Error("Ingesting %s: %v", event.Name, err)
				continue
			}
			logger.Info("Ingested %s as %q", event.Name, name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// isWatchedExtension checks if the file has a watched extension.
func isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range watchedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
