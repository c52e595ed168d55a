package timeline

// RawEntry is one subtitle entry as delivered by the source feed.
// Timestamps stay textual so the loader decides what is parsable.
type RawEntry struct {
	Start string
	End   string
	Text  string
}

// Cue is one normalized subtitle entry, times in milliseconds.
type Cue struct {
	StartMS int64
	EndMS   int64
	Text    string
	// Repeats counts the overlapping duplicates collapsed into this cue.
	// A chorus often arrives as several identical overlapping entries.
	Repeats int
}

// Report records what the loader recovered from.
type Report struct {
	Dropped   []MalformedCueWarning
	Collapsed int
	Clamped   int
}
