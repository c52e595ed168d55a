package dialogue

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

// Names maps speaker labels to the names printed in transcripts.
type Names map[speaker.Label]string

// DefaultNames are the classroom role names used by the source material.
func DefaultNames() Names {
	return Names{
		speaker.Teacher:    "老师",
		speaker.Student:    "学生",
		speaker.WholeClass: "全班",
		speaker.Unknown:    "未知",
	}
}

// Name returns the display name, falling back to the label itself.
func (n Names) Name(l speaker.Label) string {
	if s, ok := n[l]; ok && s != "" {
		return s
	}
	return string(l)
}

// FormatTime renders milliseconds as mm:ss, or hh:mm:ss from one hour on.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	sec := (ms + 500) / 1000
	h, m, s := sec/3600, (sec%3600)/60, sec%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatRange renders a "[start-end]" annotation.
func FormatRange(startMS, endMS int64) string {
	return "[" + FormatTime(startMS) + "-" + FormatTime(endMS) + "]"
}

// FormatRaw writes one time-annotated line per cue.
func FormatRaw(cues []timeline.Cue) string {
	var b strings.Builder
	for _, c := range cues {
		if c.Text == "" {
			continue
		}
		b.WriteString(FormatRange(c.StartMS, c.EndMS))
		b.WriteString(" ")
		b.WriteString(c.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatLabeled writes one time-annotated "[speaker]: text" line per cue.
func FormatLabeled(cues []timeline.Cue, labels []speaker.Label, names Names) string {
	var b strings.Builder
	for i, c := range cues {
		if c.Text == "" || i >= len(labels) {
			continue
		}
		fmt.Fprintf(&b, "%s [%s]: %s\n", FormatRange(c.StartMS, c.EndMS), names.Name(labels[i]), c.Text)
	}
	return b.String()
}

// Format writes one "[speaker]: text" line per turn, optionally led by the
// turn's time range.
func Format(t Transcript, names Names, annotateTime bool) string {
	var b strings.Builder
	for _, tr := range t.Turns {
		if annotateTime {
			b.WriteString(FormatRange(tr.StartMS, tr.EndMS))
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "[%s]: %s\n", names.Name(tr.Speaker), tr.Text)
	}
	return b.String()
}
