package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
)

// Options tunes a Watcher.
type Options struct {
	// MaxConcurrent bounds handler goroutines; zero means 2.
	MaxConcurrent int
	// Settle is the wait after a create event before handling; zero means 500ms.
	Settle time.Duration
	// Backlog handles files already present when Start is called.
	Backlog bool
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Settle <= 0 {
		opts.Settle = 500 * time.Millisecond
	}

	return &implWatcher{
		inputDir:  inputDir,
		handler:   handler,
		logger:    log,
		watcher:   watcher,
		opts:      opts,
		slots:     newRunSlots(opts.MaxConcurrent),
		inFlight:  make(map[string]bool),
	}, nil
}
