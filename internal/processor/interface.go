package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
)

// Processor turns subtitle files into dialogue artifacts on disk.
type Processor interface {
	// Process handles a file dropped into the watched input directory and
	// moves it to the archive folder once done.
	Process(ctx context.Context, subtitlePath string) error
	// ProcessFile runs the pipeline over one subtitle file and writes every
	// artifact, leaving the input in place.
	ProcessFile(ctx context.Context, subtitlePath string) (pipeline.Manifest, error)
	// Fetch runs the configured fetch command for a video id or URL and
	// returns the path of the downloaded subtitle file.
	Fetch(ctx context.Context, input string) (string, error)
}

// Archive records finished runs.
type Archive interface {
	SaveRun(ctx context.Context, res pipeline.Result, createdAt time.Time) error
}
