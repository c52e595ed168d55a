package timeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Load normalizes raw entries into an ordered cue sequence.
// Entries with unparsable timestamps are dropped and reported; entries with
// identical text and overlapping spans collapse into one cue whose Repeats
// counts the absorbed entries. It fails with
// *EmptyTimelineError when no cue with text remains.
func Load(entries []RawEntry) ([]Cue, Report, error) {
	var report Report
	cues := make([]Cue, 0, len(entries))

	for i, e := range entries {
		start, err := ParseTimestamp(e.Start)
		if err != nil {
			report.Dropped = append(report.Dropped, MalformedCueWarning{Index: i, Reason: "start: " + err.Error()})
			continue
		}
		end, err := ParseTimestamp(e.End)
		if err != nil {
			report.Dropped = append(report.Dropped, MalformedCueWarning{Index: i, Reason: "end: " + err.Error()})
			continue
		}
		if end < start {
			end = start
			report.Clamped++
		}
		cues = append(cues, Cue{StartMS: start, EndMS: end, Text: strings.TrimSpace(e.Text)})
	}

	// Stable so that source order decides between equal start times.
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].StartMS < cues[j].StartMS
	})

	out := make([]Cue, 0, len(cues))
	lastByText := make(map[string]int)
	hasText := false
	for _, c := range cues {
		if c.Text != "" {
			if idx, ok := lastByText[c.Text]; ok && c.StartMS <= out[idx].EndMS {
				if c.EndMS > out[idx].EndMS {
					out[idx].EndMS = c.EndMS
				}
				out[idx].Repeats++
				report.Collapsed++
				continue
			}
			lastByText[c.Text] = len(out)
			hasText = true
		}
		out = append(out, c)
	}

	if !hasText {
		return nil, report, &EmptyTimelineError{Total: len(entries), Dropped: len(report.Dropped)}
	}
	return out, report, nil
}

// ParseTimestamp converts a textual timestamp to milliseconds.
// Accepted forms: decimal seconds ("12.5"), "MM:SS.mmm", "HH:MM:SS,mmm"
// and "HH:MM:SS.mmm".
func ParseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing timestamp")
	}

	if !strings.Contains(s, ":") {
		sec, err := parseSeconds(s)
		if err != nil {
			return 0, err
		}
		return toMillis(sec), nil
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	sec, err := parseSeconds(strings.Replace(parts[len(parts)-1], ",", ".", 1))
	if err != nil || sec >= 60 {
		return 0, fmt.Errorf("invalid seconds in %q", s)
	}

	var total float64
	for _, p := range parts[:len(parts)-1] {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		total = total*60 + float64(n)
	}
	if len(parts) == 3 {
		m, _ := strconv.Atoi(parts[1])
		if m >= 60 {
			return 0, fmt.Errorf("invalid minutes in %q", s)
		}
	}

	return toMillis(total*60 + sec), nil
}

func parseSeconds(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("timestamp out of range %q", s)
	}
	return f, nil
}

func toMillis(sec float64) int64 {
	return int64(math.Round(sec * 1000))
}
