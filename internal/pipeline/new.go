package pipeline

import (
	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/document"
	"github.com/nguyentantai21042004/dialogue-flow/internal/enhance"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

// Options is the full configuration surface of a run.
type Options struct {
	Segmenter    speaker.Options
	Verbatim     enhance.VerbatimOptions
	Smooth       enhance.SmoothOptions
	Document     document.Options
	Names        dialogue.Names
	AnnotateTime bool
	Extras       Extras
}

// DefaultOptions returns the documented defaults with no extras.
func DefaultOptions() Options {
	return Options{
		Segmenter: speaker.DefaultOptions(),
		Verbatim:  enhance.VerbatimOptions{Fillers: enhance.DefaultFillers()},
		Smooth:    enhance.SmoothOptions{QuestionCues: enhance.DefaultQuestionCues()},
		Document:  document.DefaultOptions(),
		Names:     dialogue.DefaultNames(),
	}
}

type implPipeline struct {
	opts      Options
	segmenter *speaker.Segmenter
	verbatim  enhance.Enhancer
	smooth    enhance.Enhancer
	documents document.Builder
	refiner   Refiner
}

// New creates a Pipeline. refiner may be nil.
func New(opts Options, refiner Refiner) Pipeline {
	if opts.Names == nil {
		opts.Names = dialogue.DefaultNames()
	}
	extras := Extras{}
	for k, v := range opts.Extras {
		extras[k] = v
	}
	opts.Extras = extras

	return &implPipeline{
		opts:      opts,
		segmenter: speaker.New(opts.Segmenter),
		verbatim:  enhance.NewVerbatim(opts.Verbatim),
		smooth:    enhance.NewSmooth(opts.Smooth),
		documents: document.New(opts.Document),
		refiner:   refiner,
	}
}
