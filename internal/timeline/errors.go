package timeline

import "fmt"

// EmptyTimelineError means no usable cue survived loading.
type EmptyTimelineError struct {
	Total   int
	Dropped int
}

func (e *EmptyTimelineError) Error() string {
	if e.Total == 0 {
		return "no subtitle track found: the timeline has no entries"
	}
	return fmt.Sprintf("no subtitle track found: %d entries, %d malformed, none with text", e.Total, e.Dropped)
}

// MalformedCueWarning describes a raw entry dropped by the loader.
type MalformedCueWarning struct {
	Index  int
	Reason string
}

func (w MalformedCueWarning) Error() string {
	return fmt.Sprintf("entry %d dropped: %s", w.Index, w.Reason)
}
