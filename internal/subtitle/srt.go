package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

// ParseSRT reads SubRip blocks:
//
//	1
//	00:00:00,000 --> 00:00:01,830
//	text line
//	text line
//
// Multi-line text is joined with a space. A block whose timing line lacks
// "-->" keeps the line as its start so the loader reports it.
func ParseSRT(r io.Reader) (Track, error) {
	var (
		track Track
		block []string
	)
	flush := func() {
		if len(block) > 0 {
			track.Entries = append(track.Entries, srtEntry(block))
		}
		block = block[:0]
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := sc.Err(); err != nil {
		return Track{}, fmt.Errorf("read srt: %w", err)
	}
	flush()
	return track, nil
}

func srtEntry(block []string) timeline.RawEntry {
	if len(block) > 1 && isDigitOnly(block[0]) {
		block = block[1:]
	}
	timing, text := block[0], block[1:]
	var e timeline.RawEntry
	if start, end, ok := strings.Cut(timing, "-->"); ok {
		e.Start = strings.TrimSpace(start)
		// Position hints such as "X1:40 X2:600" may trail the end time.
		if fields := strings.Fields(end); len(fields) > 0 {
			e.End = fields[0]
		}
	} else {
		e.Start = timing
	}
	e.Text = strings.Join(text, " ")
	return e
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
