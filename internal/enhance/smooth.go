package enhance

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
)

const (
	hanComma    = "，"
	hanPeriod   = "。"
	hanQuestion = "？"

	separators = " ，,、；;：:"
)

var collapsible = map[rune]bool{
	'，': true, '。': true, '！': true, '？': true, '、': true, '；': true,
	',': true, '!': true, '?': true, ';': true,
}

var terminals = map[rune]bool{
	'。': true, '！': true, '？': true, '…': true, '.': true, '!': true, '?': true,
}

// Enhance rewrites each turn for fluency and closes it with a terminal mark.
func (s *implSmooth) Enhance(t dialogue.Transcript) dialogue.Transcript {
	texts := make([]string, len(t.Turns))
	for i, tr := range t.Turns {
		texts[i] = s.smooth(tr.Text)
	}
	return t.WithTexts(texts)
}

func (s *implSmooth) smooth(text string) string {
	for _, c := range s.corrections {
		if c.From != "" {
			text = strings.ReplaceAll(text, c.From, c.To)
		}
	}

	text = joinFragments(strings.Fields(text))
	text = collapsePunct(text)
	text = strings.Trim(text, separators)
	text = strings.TrimLeftFunc(text, func(r rune) bool { return terminals[r] || strings.ContainsRune(separators, r) })
	if text == "" {
		return ""
	}

	if last, _ := utf8.DecodeLastRuneInString(text); !terminals[last] {
		text += s.terminal(text)
	}
	return capitalize(text)
}

// terminal picks the closing mark from the question cues and the script
// the turn ends in.
func (s *implSmooth) terminal(text string) string {
	question := false
	for _, q := range s.questionCues {
		if q != "" && strings.Contains(text, q) {
			question = true
			break
		}
	}

	last, _ := utf8.DecodeLastRuneInString(text)
	switch {
	case unicode.Is(unicode.Han, last) && question:
		return hanQuestion
	case unicode.Is(unicode.Han, last):
		return hanPeriod
	case question:
		return "?"
	}
	return "."
}

// joinFragments glues cue fragments: Han boundaries get a clause comma,
// Latin boundaries a space.
func joinFragments(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			prev, _ := utf8.DecodeLastRuneInString(fields[i-1])
			next, _ := utf8.DecodeRuneInString(f)
			switch {
			case isPunct(prev) && prev > unicode.MaxASCII:
			case isPunct(prev):
				b.WriteString(" ")
			case unicode.Is(unicode.Han, prev) || unicode.Is(unicode.Han, next):
				b.WriteString(hanComma)
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString(f)
	}
	return b.String()
}

// collapsePunct squeezes repeated marks and drops a comma swallowed by a
// following terminal ("，。" -> "。").
func collapsePunct(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if r == prev && collapsible[r] {
				continue
			}
			if (prev == '，' || prev == ',' || prev == '、') && terminals[r] {
				out[n-1] = r
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r >= 'a' && r <= 'z' {
		return string(unicode.ToUpper(r)) + s[size:]
	}
	return s
}
