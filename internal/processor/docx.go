package processor

import (
	"context"
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/document"
	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

type docSection struct {
	heading string
	lines   []string
}

// writeDocx exports Word documents. Failures are logged, not returned.
func (p *implProcessor) writeDocx(ctx context.Context, res *pipeline.Result, name func(string, string) string) {
	save := func(artifact string, fn func(string) error) {
		path := name(artifact, ".docx")
		if err := fn(path); err != nil {
			p.logger.Warn(ctx, "Failed to write %s: %v", path, err)
			return
		}
		res.Manifest.Artifacts[artifact] = path
	}

	save(ArtifactDialogueDocx, func(path string) error {
		return saveTranscriptDocx(res.Manifest.Title, res.Final(), p.cfg.Output.Names(), path)
	})
	if plan := res.LessonPlan; plan != nil {
		save(ArtifactLessonPlanDocx, func(path string) error {
			return saveLessonPlanDocx(*plan, path)
		})
	}
	if note := res.ObservationNote; note != nil {
		save(ArtifactObservationNoteDocx, func(path string) error {
			return saveObservationNoteDocx(*note, path)
		})
	}
}

func saveLessonPlanDocx(plan document.LessonPlan, path string) error {
	var header []string
	if plan.Theme != "" {
		header = append(header, "课题："+plan.Theme)
	}
	sections := []docSection{{lines: header}}
	for i, s := range plan.Stages {
		sections = append(sections, docSection{
			heading: fmt.Sprintf("%d. %s %s", i+1, s.Name, dialogue.FormatRange(s.StartMS, s.EndMS)),
			lines:   []string{s.Description},
		})
	}
	return renderDocx("教案："+plan.Title, sections, path)
}

func saveObservationNoteDocx(note document.ObservationNote, path string) error {
	var header []string
	if note.Theme != "" {
		header = append(header, "课题："+note.Theme)
	}
	sections := []docSection{{lines: header}}
	for i, e := range note.Entries {
		sections = append(sections, docSection{
			heading: fmt.Sprintf("%d. %s", i+1, e.Topic),
			lines:   []string{"我看到的：" + e.Insight, "我可以迁移的做法：" + e.ActionableTakeaway},
		})
	}
	return renderDocx("听课记录："+note.Title, sections, path)
}

// saveTranscriptDocx writes one paragraph per non-empty turn.
func saveTranscriptDocx(title string, t dialogue.Transcript, names dialogue.Names, path string) error {
	var lines []string
	for _, tr := range t.Turns {
		if tr.Text == "" {
			continue
		}
		lines = append(lines, names.Name(tr.Speaker)+"："+tr.Text)
	}
	return renderDocx(title, []docSection{{lines: lines}}, path)
}

func renderDocx(title string, sections []docSection, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	for _, s := range sections {
		if s.heading != "" {
			addStyledRun(doc.AddParagraph(""), s.heading, true, 14)
		}
		for _, line := range s.lines {
			if line == "" {
				continue
			}
			addStyledRun(doc.AddParagraph(""), line, false, fontSize)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
