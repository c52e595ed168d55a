package document

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
)

// LessonPlanStage is one half-open [StartMS, EndMS) stretch of the lesson.
type LessonPlanStage struct {
	Name        string `json:"name"`
	StartMS     int64  `json:"start_ms"`
	EndMS       int64  `json:"end_ms"`
	Description string `json:"description"`
}

// LessonPlan is the staged teaching-process document.
type LessonPlan struct {
	Title  string            `json:"title"`
	Theme  string            `json:"theme"`
	Stages []LessonPlanStage `json:"stages"`
}

func (b *implBuilder) LessonPlan(t dialogue.Transcript, title string) (LessonPlan, error) {
	if len(t.Turns) < b.opts.MinTurns {
		return LessonPlan{}, &InsufficientContentError{Turns: len(t.Turns), Min: b.opts.MinTurns}
	}

	names := dialogue.DefaultNames()
	plan := LessonPlan{Title: title, Theme: ExtractTheme(title)}
	for _, s := range buildStretches(t, b.opts.Stages) {
		c := countTurns(s.turns)
		desc := fmt.Sprintf("%s本阶段共%d个话轮（老师%d，学生%d，全班%d），提问%d次。",
			s.def.Technique, len(s.turns), c.teacher, c.student, c.class, c.questions)
		if ex := excerpt(s.turns, names, b.opts.ExcerptRunes); ex != "" {
			desc += "片段：" + ex
		}
		plan.Stages = append(plan.Stages, LessonPlanStage{
			Name:        s.def.Name,
			StartMS:     s.startMS,
			EndMS:       s.endMS,
			Description: desc,
		})
	}
	return plan, nil
}

// Render writes the plan as numbered stage blocks with time labels.
func (p LessonPlan) Render() string {
	var b strings.Builder
	b.WriteString("【教案】" + p.Title + "\n")
	if p.Theme != "" {
		b.WriteString("课题：" + p.Theme + "\n")
	}
	for i, s := range p.Stages {
		minutes := float64(s.EndMS-s.StartMS) / 60000
		fmt.Fprintf(&b, "\n%d. %s %s（约%.1f分钟）\n", i+1, s.Name, dialogue.FormatRange(s.StartMS, s.EndMS), minutes)
		b.WriteString("   " + s.Description + "\n")
	}
	return b.String()
}
