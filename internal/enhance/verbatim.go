package enhance

import (
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

// stutterRun is the shortest run of one repeated Han character treated as a
// stutter. Doubled characters are ordinary words (谢谢, 看看).
const stutterRun = 3

// maxStutterWord bounds the Latin words collapsed when repeated.
const maxStutterWord = 3

// Enhance removes filler-only clauses and stutters, keeping every
// substantive word.
func (v *implVerbatim) Enhance(t dialogue.Transcript) dialogue.Transcript {
	texts := make([]string, len(t.Turns))
	for i, tr := range t.Turns {
		cleaned := v.clean(tr.Text)
		if cleaned == "" {
			cleaned = tr.Text
		}
		texts[i] = cleaned
	}
	return t.WithTexts(texts)
}

func (v *implVerbatim) clean(text string) string {
	var kept []string
	for _, field := range strings.Fields(text) {
		var b strings.Builder
		for _, clause := range splitClauses(field) {
			if v.fillerOnly(clause) {
				continue
			}
			b.WriteString(clause)
		}
		if s := collapseHanStutter(b.String()); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(collapseWordStutter(kept), " ")
}

// fillerOnly reports whether the clause carries nothing but filler tokens.
func (v *implVerbatim) fillerOnly(clause string) bool {
	core := strings.TrimRightFunc(clause, isPunct)
	if core == "" {
		return false
	}
	if _, ok := v.fillers[strings.ToLower(core)]; ok {
		return true
	}
	toks := speaker.Tokens(core)
	if len(toks) == 0 {
		return false
	}
	for _, tok := range toks {
		if _, ok := v.fillers[tok]; !ok {
			return false
		}
	}
	return true
}

// splitClauses cuts s after every run of punctuation, keeping the
// punctuation with the clause it closes.
func splitClauses(s string) []string {
	var out []string
	runes := []rune(s)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isPunct(runes[i]) {
			continue
		}
		j := i
		for j < len(runes) && isPunct(runes[j]) {
			j++
		}
		out = append(out, string(runes[start:j]))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func collapseHanStutter(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if unicode.Is(unicode.Han, runes[i]) && j-i >= stutterRun {
			b.WriteRune(runes[i])
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}
	return b.String()
}

func collapseWordStutter(fields []string) []string {
	out := fields[:0:0]
	for _, f := range fields {
		if len(out) > 0 && isShortWord(f) && strings.EqualFold(f, out[len(out)-1]) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isShortWord(s string) bool {
	if s == "" || len(s) > maxStutterWord {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
