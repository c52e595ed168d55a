package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/document"
	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dialogue-flow/run"))

// RunID derives a name-based UUID from the video id, title and raw entries,
// so identical input always yields the same manifest.
func RunID(in Input) string {
	var b strings.Builder
	b.WriteString(in.VideoID)
	b.WriteByte(0)
	b.WriteString(in.Title)
	for _, e := range in.Entries {
		b.WriteByte(0)
		b.WriteString(e.Start)
		b.WriteByte(0x1f)
		b.WriteString(e.End)
		b.WriteByte(0x1f)
		b.WriteString(e.Text)
	}
	return uuid.NewSHA1(runNamespace, []byte(b.String())).String()
}

// Run executes load, segment, assemble, enhance and the optional stages.
// When the timeline is unusable it returns the partial Result, with no
// outputs, together with a *timeline.EmptyTimelineError. Failures of the
// refiner or the derived documents become manifest warnings.
func (p *implPipeline) Run(ctx context.Context, in Input) (Result, error) {
	res := Result{
		Manifest: Manifest{
			RunID:     RunID(in),
			VideoID:   in.VideoID,
			Title:     in.Title,
			Artifacts: map[string]string{},
		},
		Outputs: map[string]string{},
	}
	if res.Manifest.Title == "" {
		res.Manifest.Title = in.VideoID
	}

	cues, report, err := timeline.Load(in.Entries)
	res.Report = report
	for _, w := range report.Dropped {
		res.warn(w.Error())
	}
	if err != nil {
		return res, err
	}
	if report.Clamped > 0 {
		res.warn(fmt.Sprintf("%d cues ended before they started and were clamped", report.Clamped))
	}
	res.Cues = cues

	seg := p.segmenter.Segment(cues)
	res.Segmentation = seg
	if n := len(seg.Fallbacks); n > 0 {
		res.warn(fmt.Sprintf("speaker fallback used on %d of %d cues", n, len(cues)))
	}

	labeled, err := dialogue.Assemble(cues, seg.Labels)
	if err != nil {
		return res, fmt.Errorf("assemble turns: %w", err)
	}
	res.Labeled = labeled
	res.Verbatim = p.verbatim.Enhance(labeled)
	res.Smooth = p.smooth.Enhance(res.Verbatim)

	names := p.opts.Names
	res.put(ArtifactRaw, dialogue.FormatRaw(cues))
	res.put(ArtifactSpeakerLabeled, dialogue.FormatLabeled(cues, seg.Labels, names))
	res.put(ArtifactVerbatim, dialogue.Format(res.Verbatim, names, p.opts.AnnotateTime))
	res.put(ArtifactSmooth, dialogue.Format(res.Smooth, names, p.opts.AnnotateTime))

	if p.refiner != nil {
		if err := p.refine(ctx, &res); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.warn(fmt.Sprintf("refine dialogue: %v", err))
		}
	}

	p.derive(&res)
	return res, nil
}

func (p *implPipeline) refine(ctx context.Context, res *Result) error {
	contract := PromptContract{
		Title:        res.Manifest.Title,
		Theme:        document.ExtractTheme(res.Manifest.Title),
		Instructions: DefaultInstructions,
	}
	refined, err := p.refiner.Refine(ctx, res.Smooth, contract)
	if err != nil {
		return err
	}
	if err := CheckRefined(res.Smooth, refined); err != nil {
		return err
	}
	res.Refined = &refined
	res.put(ArtifactRefined, dialogue.Format(refined, p.opts.Names, p.opts.AnnotateTime))
	return nil
}

// derive builds the requested documents from the final transcript. Their
// failures never touch the base outputs.
func (p *implPipeline) derive(res *Result) {
	final := res.Final()
	var ice *document.InsufficientContentError

	if p.opts.Extras[ExtraLessonPlan] {
		plan, err := p.documents.LessonPlan(final, res.Manifest.Title)
		switch {
		case err == nil:
			res.LessonPlan = &plan
			res.put(ArtifactLessonPlan, plan.Render())
		case errors.As(err, &ice):
			res.warn("skip lesson plan: " + err.Error())
		default:
			res.warn(fmt.Sprintf("build lesson plan: %v", err))
		}
	}

	if p.opts.Extras[ExtraObservationNote] {
		note, err := p.documents.ObservationNote(final, res.Manifest.Title)
		switch {
		case err == nil:
			res.ObservationNote = &note
			res.put(ArtifactObservationNote, note.Render())
		case errors.As(err, &ice):
			res.warn("skip observation note: " + err.Error())
		default:
			res.warn(fmt.Sprintf("build observation note: %v", err))
		}
	}
}
