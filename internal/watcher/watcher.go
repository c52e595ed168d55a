package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/internal/subtitle"
)

type implWatcher struct {
	inputDir  string
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	opts      Options
	slots     *runSlots
	wg        sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

// Start begins monitoring the input directory for new subtitle files.
// Each file is handled in its own goroutine, bounded by MaxConcurrent.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: .json, .srt")

	if w.opts.Backlog {
		if err := w.handleBacklog(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Renames into the directory also arrive as CREATE
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isSubtitleFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-subtitle file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New subtitle detected: %s", event.Name)

			// Small delay to ensure file is fully written
			select {
			case <-time.After(w.opts.Settle):
			case <-ctx.Done():
				continue
			}
			// Only fails once ctx is done, which the next iteration handles
			_ = w.dispatch(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) handleBacklog(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if w.isSubtitleFile(e.Name()) {
			files = append(files, filepath.Join(w.inputDir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) > 0 {
		w.logger.Info(ctx, "Found %d subtitle files waiting in %s", len(files), w.inputDir)
	}
	for _, f := range files {
		if err := w.dispatch(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// dispatch takes a run slot (blocking while all are busy) and handles the
// file in a goroutine. A file already in flight is skipped.
func (w *implWatcher) dispatch(ctx context.Context, filePath string) error {
	w.mu.Lock()
	if w.inFlight[filePath] {
		w.mu.Unlock()
		return nil
	}
	w.inFlight[filePath] = true
	w.mu.Unlock()

	if err := w.slots.take(ctx); err != nil {
		w.done(filePath)
		return err
	}
	w.logger.Debug(ctx, "Processing %s (%d/%d runs active)", filePath, w.slots.busy(), w.slots.size())

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.slots.give()
		defer w.done(filePath)

		if err := w.handler(ctx, filePath); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
		}
	}()
	return nil
}

func (w *implWatcher) done(filePath string) {
	w.mu.Lock()
	delete(w.inFlight, filePath)
	w.mu.Unlock()
}

// isSubtitleFile checks if the file has a supported subtitle extension
func (w *implWatcher) isSubtitleFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return subtitle.Supported(path)
}
