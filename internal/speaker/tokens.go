package speaker

import (
	"strings"
	"unicode"
)

// Tokens splits text into counting units: each Han character is a token and
// each run of letters or digits is a token. Punctuation and spaces are skipped.
func Tokens(text string) []string {
	var out []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			out = append(out, strings.ToLower(word.String()))
			word.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			out = append(out, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return out
}

// IsQuestion reports whether text ends like a question.
func IsQuestion(text string, particles []string) bool {
	t := strings.TrimRightFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '?' && r != '？')
	})
	for _, p := range particles {
		if p != "" && strings.HasSuffix(t, p) {
			return true
		}
	}
	return false
}

func containsAny(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if m != "" && strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// bare strips punctuation and spaces for whole-utterance comparisons.
func bare(text string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, text))
}

func equalsAny(text string, markers []string) bool {
	b := bare(text)
	if b == "" {
		return false
	}
	for _, m := range markers {
		if b == bare(m) {
			return true
		}
	}
	return false
}
