package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
)

var (
	reTimestamp  = regexp.MustCompile(`\d{1,2}[:：]\d{2}(?:[:：]\d{2})?(?:[.,]\d{1,3})?`)
	reEmptyRange = regexp.MustCompile(`\[\s*-?\s*\]`)
)

// ObservationNoteEntry is one learner-perspective comment. It carries no time.
type ObservationNoteEntry struct {
	Topic              string `json:"topic"`
	Insight            string `json:"insight"`
	ActionableTakeaway string `json:"actionable_takeaway"`
}

// ObservationNote is the timeline-free commentary document.
type ObservationNote struct {
	Title   string                 `json:"title"`
	Theme   string                 `json:"theme"`
	Entries []ObservationNoteEntry `json:"entries"`
}

func (b *implBuilder) ObservationNote(t dialogue.Transcript, title string) (ObservationNote, error) {
	if len(t.Turns) < b.opts.MinTurns {
		return ObservationNote{}, &InsufficientContentError{Turns: len(t.Turns), Min: b.opts.MinTurns}
	}

	names := dialogue.DefaultNames()
	note := ObservationNote{Title: scrubTime(title), Theme: scrubTime(ExtractTheme(title))}
	for _, s := range buildStretches(t, b.opts.Stages) {
		c := countTurns(s.turns)
		var insight string
		switch {
		case c.questions > 0:
			insight = fmt.Sprintf("老师在这一段提出%d个问题，学生单独回应%d次，全班齐答%d次。", c.questions, c.student, c.class)
		case c.student+c.class > 0:
			insight = fmt.Sprintf("这一段以师生互动为主，学生回应%d次，全班齐答%d次。", c.student, c.class)
		default:
			insight = "这一段以老师讲述为主。"
		}
		insight += s.def.Technique
		if ex := excerpt(s.turns, names, b.opts.ExcerptRunes); ex != "" {
			insight += "课堂原话：" + ex
		}
		note.Entries = append(note.Entries, ObservationNoteEntry{
			Topic:              scrubTime(s.def.Name),
			Insight:            scrubTime(insight),
			ActionableTakeaway: scrubTime(s.def.Takeaway),
		})
	}
	return note, nil
}

// scrubTime removes timestamp-shaped substrings.
func scrubTime(s string) string {
	s = reTimestamp.ReplaceAllString(s, "")
	s = reEmptyRange.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Render writes the note as numbered entries without any time labels.
func (n ObservationNote) Render() string {
	var b strings.Builder
	b.WriteString("【听课记录】" + n.Title + "\n")
	if n.Theme != "" {
		b.WriteString("课题：" + n.Theme + "\n")
	}
	for i, e := range n.Entries {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, e.Topic)
		b.WriteString("- 我看到的：" + e.Insight + "\n")
		b.WriteString("- 我可以迁移的做法：" + e.ActionableTakeaway + "\n")
	}
	return b.String()
}
