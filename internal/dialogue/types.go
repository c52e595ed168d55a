package dialogue

import "github.com/nguyentantai21042004/dialogue-flow/internal/speaker"

// Turn is a maximal run of consecutive same-speaker cues.
// [CueStart, CueEnd) indexes the member cues.
type Turn struct {
	Speaker  speaker.Label `json:"speaker"`
	StartMS  int64         `json:"start_ms"`
	EndMS    int64         `json:"end_ms"`
	Text     string        `json:"text"`
	CueStart int           `json:"cue_start"`
	CueEnd   int           `json:"cue_end"`
}

// Transcript is the ordered sequence of turns.
type Transcript struct {
	Turns []Turn `json:"turns"`
}

// Span returns the earliest start and latest end over all turns.
func (t Transcript) Span() (int64, int64) {
	if len(t.Turns) == 0 {
		return 0, 0
	}
	start, end := t.Turns[0].StartMS, t.Turns[0].EndMS
	for _, tr := range t.Turns[1:] {
		if tr.StartMS < start {
			start = tr.StartMS
		}
		if tr.EndMS > end {
			end = tr.EndMS
		}
	}
	return start, end
}

// WithTexts returns a copy whose turn texts are replaced by texts.
// Speaker, time range and cue range are carried over unchanged.
func (t Transcript) WithTexts(texts []string) Transcript {
	out := Transcript{Turns: make([]Turn, len(t.Turns))}
	copy(out.Turns, t.Turns)
	for i := range out.Turns {
		if i < len(texts) {
			out.Turns[i].Text = texts[i]
		}
	}
	return out
}

// Texts returns the turn texts in order.
func (t Transcript) Texts() []string {
	out := make([]string, len(t.Turns))
	for i, tr := range t.Turns {
		out[i] = tr.Text
	}
	return out
}
