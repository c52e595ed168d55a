package dialogue

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

// Assemble merges consecutive same-label cues into turns. Blank cues join the
// open turn, or the next turn when they lead the sequence, so no turn is
// empty unless every cue is blank.
func Assemble(cues []timeline.Cue, labels []speaker.Label) (Transcript, error) {
	if len(cues) != len(labels) {
		return Transcript{}, fmt.Errorf("assemble: %d cues but %d labels", len(cues), len(labels))
	}

	var turns []Turn
	var parts []string
	pendingStart := -1 // first leading blank cue not yet owned by a turn

	closeTurn := func() {
		if len(turns) > 0 {
			turns[len(turns)-1].Text = strings.Join(parts, " ")
		}
		parts = parts[:0]
	}

	for i, c := range cues {
		blank := strings.TrimSpace(c.Text) == ""

		if blank {
			if len(turns) == 0 {
				if pendingStart < 0 {
					pendingStart = i
				}
				continue
			}
			extend(&turns[len(turns)-1], c, i)
			continue
		}

		if len(turns) > 0 && turns[len(turns)-1].Speaker == labels[i] {
			extend(&turns[len(turns)-1], c, i)
			parts = append(parts, c.Text)
			continue
		}

		closeTurn()
		t := Turn{Speaker: labels[i], StartMS: c.StartMS, EndMS: c.EndMS, CueStart: i, CueEnd: i + 1}
		if pendingStart >= 0 {
			for j := pendingStart; j < i; j++ {
				extend(&t, cues[j], j)
			}
			t.CueStart = pendingStart
			pendingStart = -1
		}
		turns = append(turns, t)
		parts = append(parts, c.Text)
	}
	closeTurn()

	if pendingStart >= 0 {
		// Only blank cues: keep them as one unlabeled turn so the partition holds.
		t := Turn{Speaker: speaker.Unknown, StartMS: cues[pendingStart].StartMS, EndMS: cues[pendingStart].EndMS, CueStart: pendingStart, CueEnd: pendingStart + 1}
		for j := pendingStart + 1; j < len(cues); j++ {
			extend(&t, cues[j], j)
		}
		turns = append(turns, t)
	}

	return Transcript{Turns: turns}, nil
}

func extend(t *Turn, c timeline.Cue, i int) {
	if c.StartMS < t.StartMS {
		t.StartMS = c.StartMS
	}
	if c.EndMS > t.EndMS {
		t.EndMS = c.EndMS
	}
	if i+1 > t.CueEnd {
		t.CueEnd = i + 1
	}
	if i < t.CueStart {
		t.CueStart = i
	}
}
