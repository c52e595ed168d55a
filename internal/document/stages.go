package document

import (
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

// stretch is a run of turns attributed to one stage definition.
type stretch struct {
	def     StageDef
	startMS int64
	endMS   int64
	turns   []dialogue.Turn
}

// assignStages maps each turn to a stage index. The index never decreases
// and advances by at most one step per turn.
func assignStages(turns []dialogue.Turn, defs []StageDef) []int {
	out := make([]int, len(turns))
	cur := 0
	for i, tr := range turns {
		best, bestScore := cur, 0
		for s := cur; s < len(defs); s++ {
			score := 0
			for _, kw := range defs[s].Keywords {
				if kw != "" && strings.Contains(tr.Text, kw) {
					score++
				}
			}
			if score > bestScore {
				best, bestScore = s, score
			}
		}
		if best > cur {
			cur++
		}
		out[i] = cur
	}
	return out
}

// proportionalStages cuts turns into len(defs) runs sized by weight.
func proportionalStages(n int, defs []StageDef) []int {
	total := 0.0
	for _, d := range defs {
		if d.Weight > 0 {
			total += d.Weight
		}
	}
	out := make([]int, n)
	cum := 0.0
	cut := 0
	for s, d := range defs {
		w := d.Weight
		if w <= 0 {
			w = 0
		}
		cum += w
		end := n
		if s < len(defs)-1 {
			if total > 0 {
				end = int(float64(n) * cum / total)
			} else {
				end = n * (s + 1) / len(defs)
			}
		}
		for ; cut < end && cut < n; cut++ {
			out[cut] = s
		}
	}
	return out
}

func distinct(idx []int) int {
	seen := make(map[int]bool)
	for _, i := range idx {
		seen[i] = true
	}
	return len(seen)
}

// buildStretches groups turns into time-bounded stages covering the
// transcript span.
func buildStretches(t dialogue.Transcript, defs []StageDef) []stretch {
	idx := assignStages(t.Turns, defs)
	if distinct(idx) < len(defs) {
		idx = proportionalStages(len(t.Turns), defs)
	}

	var out []stretch
	for i, tr := range t.Turns {
		if i == 0 || idx[i] != idx[i-1] {
			out = append(out, stretch{def: defs[idx[i]], startMS: tr.StartMS})
		}
		last := &out[len(out)-1]
		last.turns = append(last.turns, tr)
	}

	spanStart, spanEnd := t.Span()
	if len(out) > 0 {
		out[0].startMS = spanStart
	}
	for i := range out {
		if i+1 < len(out) {
			out[i].endMS = out[i+1].startMS
		} else {
			out[i].endMS = spanEnd
		}
	}

	// A zero-length stage folds its turns into the stage before it.
	kept := out[:0]
	for _, s := range out {
		if s.endMS <= s.startMS && len(kept) > 0 {
			prev := &kept[len(kept)-1]
			prev.turns = append(prev.turns, s.turns...)
			prev.endMS = s.endMS
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) > 1 && kept[0].endMS <= kept[0].startMS {
		kept[1].startMS = kept[0].startMS
		kept[1].turns = append(kept[0].turns, kept[1].turns...)
		kept = kept[1:]
	}
	return kept
}

type counts struct {
	teacher, student, class, questions int
}

func countTurns(turns []dialogue.Turn) counts {
	var c counts
	for _, tr := range turns {
		switch tr.Speaker {
		case speaker.Teacher:
			c.teacher++
		case speaker.Student:
			c.student++
		case speaker.WholeClass:
			c.class++
		}
		if strings.ContainsAny(tr.Text, "?？") {
			c.questions++
		}
	}
	return c
}

// excerpt joins the first turns of a stretch up to limit runes.
func excerpt(turns []dialogue.Turn, names dialogue.Names, limit int) string {
	var parts []string
	for _, tr := range turns {
		if tr.Text == "" {
			continue
		}
		parts = append(parts, names.Name(tr.Speaker)+"："+tr.Text)
		if len(parts) == 2 {
			break
		}
	}
	r := []rune(strings.Join(parts, "；"))
	if len(r) > limit {
		return string(r[:limit]) + "……"
	}
	return string(r)
}
