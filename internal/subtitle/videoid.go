package subtitle

import (
	"fmt"
	"regexp"
)

var reVideoID = regexp.MustCompile(`BV[0-9A-Za-z]{10}`)

// ParseVideoID extracts a BV id from a bare id or a video URL.
func ParseVideoID(s string) (string, error) {
	if m := reVideoID.FindString(s); m != "" {
		return m, nil
	}
	return "", fmt.Errorf("no BV id in %q: provide a BV id or a video URL", s)
}
