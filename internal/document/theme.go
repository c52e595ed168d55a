package document

import (
	"regexp"
	"strings"
)

var (
	reBookTitle = regexp.MustCompile(`《([^》]+)》`)
	reBrackets  = regexp.MustCompile(`（[^）]*）|\([^)]*\)|【[^】]*】`)
)

// ExtractTheme derives the lesson topic from a video title.
func ExtractTheme(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return ""
	}
	if _, after, ok := strings.Cut(t, "："); ok && strings.TrimSpace(after) != "" {
		t = strings.TrimSpace(after)
	}
	if m := reBookTitle.FindStringSubmatch(t); m != nil {
		t = m[1]
	}
	t = strings.TrimSpace(reBrackets.ReplaceAllString(t, ""))
	if t == "" {
		return strings.TrimSpace(title)
	}
	return t
}
