package enhance

import "strings"

// Correction replaces a known misrecognition inside a turn.
type Correction struct {
	From string
	To   string
}

// VerbatimOptions configures the noise-removal pass.
type VerbatimOptions struct {
	Fillers []string
}

// SmoothOptions configures the readability pass.
type SmoothOptions struct {
	Corrections  []Correction
	QuestionCues []string
}

// DefaultFillers lists tokens with no semantic content in classroom speech.
func DefaultFillers() []string {
	return []string{"嗯", "呃", "额", "唔", "啊", "um", "uh", "uhm", "erm", "er", "hmm", "mm"}
}

// DefaultQuestionCues marks a closing clause as a question.
func DefaultQuestionCues() []string {
	return []string{"吗", "呢", "为什么", "怎么", "谁", "有没有", "对不对", "是不是"}
}

type implVerbatim struct {
	fillers map[string]struct{}
}

type implSmooth struct {
	corrections  []Correction
	questionCues []string
}

// NewVerbatim creates the verbatim-preserving enhancer.
func NewVerbatim(opts VerbatimOptions) Enhancer {
	fillers := make(map[string]struct{}, len(opts.Fillers))
	for _, f := range opts.Fillers {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			fillers[f] = struct{}{}
		}
	}
	return &implVerbatim{fillers: fillers}
}

// NewSmooth creates the readability enhancer.
func NewSmooth(opts SmoothOptions) Enhancer {
	return &implSmooth{
		corrections:  append([]Correction(nil), opts.Corrections...),
		questionCues: append([]string(nil), opts.QuestionCues...),
	}
}
