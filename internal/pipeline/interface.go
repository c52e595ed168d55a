package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

// Pipeline runs the subtitle-to-dialogue transform over one timeline.
type Pipeline interface {
	Run(ctx context.Context, in Input) (Result, error)
}

// Refiner rewrites turn texts with an external model. It must keep the turn
// count, order, speakers and time ranges; results that change them are
// rejected.
type Refiner interface {
	Refine(ctx context.Context, t dialogue.Transcript, contract PromptContract) (dialogue.Transcript, error)
}

// Input is one already-fetched subtitle timeline.
type Input struct {
	VideoID string
	Title   string
	Entries []timeline.RawEntry
}
