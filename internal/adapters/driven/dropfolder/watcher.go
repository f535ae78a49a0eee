// Package dropfolder watches a local directory and enqueues document
// files that appear in it into one upload bucket.
package dropfolder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// Watcher auto-enqueues documents dropped into a directory. Each watcher
// serves exactly one bucket; the scope stamped on the tasks follows the
// usual enqueue-time snapshot rule.
type Watcher struct {
	dir     string
	bucket  domain.Level
	uploads driving.UploadService
	seen    map[string]struct{}
}

// New creates a watcher over dir feeding the given bucket.
func New(dir string, bucket domain.Level, uploads driving.UploadService) *Watcher {
	return &Watcher{
		dir:     dir,
		bucket:  bucket,
		uploads: uploads,
		seen:    make(map[string]struct{}),
	}
}

// Watch blocks, enqueuing dropped documents until the context is
// cancelled. Files already present in the directory are enqueued first so
// a pre-filled drop folder is not ignored.
func (w *Watcher) Watch(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("drop folder %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("drop folder %s: %w: not a directory", w.dir, domain.ErrInvalidInput)
	}

	if err := w.enqueueExisting(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for documents (bucket: %s)", w.dir, w.bucket)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleFsEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error on %s: %v", w.dir, err)
		}
	}
}

// enqueueExisting picks up documents already sitting in the directory.
func (w *Watcher) enqueueExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read drop folder %s: %w", w.dir, err)
	}

	var paths []string
	for _, entry := range entries {
		path := filepath.Join(w.dir, entry.Name())
		if !entry.IsDir() && w.eligible(path) {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	if err := w.enqueue(paths); err != nil {
		return err
	}
	for _, path := range paths {
		w.seen[path] = struct{}{}
	}
	return nil
}

// handleFsEvent enqueues the file behind a create or write event when it
// is an eligible document. It reports whether an enqueue was attempted.
// Copying a file into the folder emits a create followed by a burst of
// writes; only the first event for a path enqueues it, the rest are
// ignored so one dropped file yields one task.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	if !w.eligible(event.Name) {
		return false
	}
	if _, done := w.seen[event.Name]; done {
		return false
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return false
	}

	if err := w.enqueue([]string{event.Name}); err != nil {
		logger.Warn("Enqueue from drop folder failed: %v", err)
		return true
	}
	w.seen[event.Name] = struct{}{}
	return true
}

// eligible filters out hidden files and non-document extensions before
// they ever reach the intake.
func (w *Watcher) eligible(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return domain.IsDocumentFile(name)
}

func (w *Watcher) enqueue(paths []string) error {
	result, err := w.uploads.Enqueue(w.bucket, paths)
	if err != nil {
		return err
	}
	for _, task := range result.Accepted {
		logger.Info("Enqueued %s into %s bucket (scope: %s)", task.Name, w.bucket, task.TargetScope.Describe())
	}
	for path, reason := range result.Rejected {
		logger.Warn("Rejected %s: %v", path, reason)
	}
	return nil
}
