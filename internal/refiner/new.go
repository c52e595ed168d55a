package refiner

import (
	"sync"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
)

const defaultModel = "gemini-2.5-flash"

type implRefiner struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int

	logger logger.Logger
	model  string
	names  dialogue.Names
	gen    generator
}

// New creates a Refiner that rotates through the supplied Gemini API keys.
// An empty model selects gemini-2.5-flash.
func New(apiKeys []string, model string, names dialogue.Names, log logger.Logger) Refiner {
	if model == "" {
		model = defaultModel
	}
	if names == nil {
		names = dialogue.DefaultNames()
	}
	return &implRefiner{
		apiKeys: append([]string(nil), apiKeys...),
		logger:  log,
		model:   model,
		names:   names,
		gen:     &geminiGenerator{model: model},
	}
}
