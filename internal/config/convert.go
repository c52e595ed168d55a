package config

import (
	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/document"
	"github.com/nguyentantai21042004/dialogue-flow/internal/enhance"
	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

// Options converts the segmenter section, keeping defaults for zero values.
func (c SegmenterConfig) Options() speaker.Options {
	o := speaker.DefaultOptions()
	if c.GapThresholdMS > 0 {
		o.GapThresholdMS = c.GapThresholdMS
	}
	if c.ShortUtteranceTokens > 0 {
		o.ShortUtteranceTokens = c.ShortUtteranceTokens
	}
	if c.LongUtteranceTokens > 0 {
		o.LongUtteranceTokens = c.LongUtteranceTokens
	}
	if c.MinDistinctRatio > 0 {
		o.MinDistinctRatio = c.MinDistinctRatio
	}
	if c.BurstWindowMS > 0 {
		o.BurstWindowMS = c.BurstWindowMS
	}
	if c.MinBurstCues > 0 {
		o.MinBurstCues = c.MinBurstCues
	}
	if c.MinChoralCues > 0 {
		o.MinChoralCues = c.MinChoralCues
	}
	o.AddressMarkers = orDefault(c.AddressMarkers, o.AddressMarkers)
	o.InstructionMarkers = orDefault(c.InstructionMarkers, o.InstructionMarkers)
	o.ResponseMarkers = orDefault(c.ResponseMarkers, o.ResponseMarkers)
	o.QuestionParticles = orDefault(c.QuestionParticles, o.QuestionParticles)
	return o
}

func (c EnhanceConfig) VerbatimOptions() enhance.VerbatimOptions {
	return enhance.VerbatimOptions{Fillers: orDefault(c.Fillers, enhance.DefaultFillers())}
}

func (c EnhanceConfig) SmoothOptions() enhance.SmoothOptions {
	o := enhance.SmoothOptions{QuestionCues: orDefault(c.QuestionCues, enhance.DefaultQuestionCues())}
	for _, cr := range c.Corrections {
		o.Corrections = append(o.Corrections, enhance.Correction{From: cr.From, To: cr.To})
	}
	return o
}

func (c DocumentConfig) Options() document.Options {
	o := document.DefaultOptions()
	if c.MinTurns > 0 {
		o.MinTurns = c.MinTurns
	}
	if c.ExcerptRunes > 0 {
		o.ExcerptRunes = c.ExcerptRunes
	}
	if len(c.Stages) > 0 {
		o.Stages = make([]document.StageDef, len(c.Stages))
		for i, s := range c.Stages {
			o.Stages[i] = document.StageDef{
				Name:      s.Name,
				Keywords:  s.Keywords,
				Weight:    s.Weight,
				Technique: s.Technique,
				Takeaway:  s.Takeaway,
			}
		}
	}
	return o
}

// Names returns display names with configured overrides applied. Keys are
// label values such as "Teacher".
func (c OutputConfig) Names() dialogue.Names {
	names := dialogue.DefaultNames()
	for k, v := range c.SpeakerNames {
		if l := speaker.Label(k); l.Valid() && v != "" {
			names[l] = v
		}
	}
	return names
}

// PipelineOptions assembles the full run configuration.
func (c *Config) PipelineOptions() pipeline.Options {
	extras := pipeline.Extras{}
	for _, e := range c.Output.Extras {
		extras[e] = true
	}
	return pipeline.Options{
		Segmenter:    c.Segmenter.Options(),
		Verbatim:     c.Enhance.VerbatimOptions(),
		Smooth:       c.Enhance.SmoothOptions(),
		Document:     c.Document.Options(),
		Names:        c.Output.Names(),
		AnnotateTime: c.Output.AnnotateTime,
		Extras:       extras,
	}
}

func orDefault(v, def []string) []string {
	if len(v) > 0 {
		return v
	}
	return def
}
