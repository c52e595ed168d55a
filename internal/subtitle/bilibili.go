package subtitle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

type bilibiliFile struct {
	BVID  string         `json:"bvid"`
	Title string         `json:"title"`
	Body  []bilibiliLine `json:"body"`
}

type bilibiliLine struct {
	From    json.RawMessage `json:"from"`
	To      json.RawMessage `json:"to"`
	Content string          `json:"content"`
}

// DecodeBilibili reads a platform subtitle document of the form
// {"body":[{"from":1.2,"to":3.4,"content":"..."}]}.
// Timestamps are passed through as text; the timeline loader validates them.
func DecodeBilibili(r io.Reader) (Track, error) {
	var f bilibiliFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Track{}, fmt.Errorf("decode subtitle json: %w", err)
	}

	// bvid names output directories, so only a well-formed id is trusted.
	track := Track{Title: f.Title}
	if id, err := ParseVideoID(f.BVID); err == nil {
		track.VideoID = id
	}
	for _, l := range f.Body {
		track.Entries = append(track.Entries, timeline.RawEntry{
			Start: rawText(l.From),
			End:   rawText(l.To),
			Text:  l.Content,
		})
	}
	return track, nil
}

// rawText renders a JSON number or string as plain text; null and absent
// values become empty.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(raw)
}
