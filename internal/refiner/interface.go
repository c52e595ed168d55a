package refiner

import (
	"context"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
)

// Refiner rewrites turn texts with Gemini under a prompt contract.
type Refiner interface {
	Refine(ctx context.Context, t dialogue.Transcript, contract pipeline.PromptContract) (dialogue.Transcript, error)
}

// generator sends one prompt with one API key and returns the raw reply.
type generator interface {
	generate(ctx context.Context, apiKey, prompt string) (string, error)
}
