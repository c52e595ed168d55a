package watcher

import "context"

// Watcher monitors the input directory for subtitle files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one subtitle file path.
type EventHandler func(ctx context.Context, filePath string) error
