package processor

import (
	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
	refiner  pipeline.Refiner
	archive  Archive
}

// New creates a new Processor instance. refiner and archive may be nil.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger, refiner pipeline.Refiner, archive Archive) Processor {
	return &implProcessor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		refiner:  refiner,
		archive:  archive,
	}
}
