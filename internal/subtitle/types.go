package subtitle

import "github.com/nguyentantai21042004/dialogue-flow/internal/timeline"

// Track is a decoded subtitle file with whatever metadata it carried.
type Track struct {
	VideoID string
	Title   string
	Entries []timeline.RawEntry
}
