package pipeline

import (
	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/document"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

// Logical artifact names.
const (
	ArtifactRaw             = "raw"
	ArtifactSpeakerLabeled  = "speaker_labeled"
	ArtifactVerbatim        = "dialogue_verbatim_enhanced"
	ArtifactSmooth          = "dialogue_verbatim_smooth"
	ArtifactRefined         = "dialogue_refined"
	ArtifactLessonPlan      = "lesson_plan"
	ArtifactObservationNote = "observation_note"
)

// Manifest summarizes one run. Artifacts maps artifact names to wherever the
// caller stored them.
type Manifest struct {
	RunID     string            `json:"run_id"`
	VideoID   string            `json:"bvid"`
	Title     string            `json:"title"`
	Artifacts map[string]string `json:"files"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// Result holds every intermediate and final product of a run.
type Result struct {
	Manifest Manifest
	// Outputs maps artifact names to their text serialization, and Order
	// lists the names in production order.
	Outputs map[string]string
	Order   []string

	Cues         []timeline.Cue
	Report       timeline.Report
	Segmentation speaker.Result
	Labeled      dialogue.Transcript
	Verbatim     dialogue.Transcript
	Smooth       dialogue.Transcript
	Refined      *dialogue.Transcript

	LessonPlan      *document.LessonPlan
	ObservationNote *document.ObservationNote
}

// Final returns the most processed transcript available.
func (r Result) Final() dialogue.Transcript {
	if r.Refined != nil {
		return *r.Refined
	}
	return r.Smooth
}

func (r *Result) put(name, content string) {
	r.Outputs[name] = content
	r.Order = append(r.Order, name)
}

func (r *Result) warn(msg string) {
	r.Manifest.Warnings = append(r.Manifest.Warnings, msg)
}
