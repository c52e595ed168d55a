package speaker

import (
	"fmt"

	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

// AmbiguousSpeakerFallback is emitted when no rule but the fallback matched.
type AmbiguousSpeakerFallback struct {
	CueIndex  int
	Inherited Label
}

func (e AmbiguousSpeakerFallback) String() string {
	return fmt.Sprintf("cue %d: no rule matched, inherited %s", e.CueIndex, e.Inherited)
}

// Result carries one label per cue plus the rule that decided it.
type Result struct {
	Labels    []Label
	Rules     []string
	Fallbacks []AmbiguousSpeakerFallback
}

// Segmenter assigns speaker labels with an ordered rule chain.
type Segmenter struct {
	opts  Options
	rules []Rule
}

// New creates a Segmenter using the default rule chain.
func New(opts Options) *Segmenter {
	return NewWithRules(opts, DefaultRules())
}

// NewWithRules creates a Segmenter with a custom chain. The chain should end
// with a rule that always matches; cues no rule matches inherit prev.
func NewWithRules(opts Options, rules []Rule) *Segmenter {
	return &Segmenter{opts: opts.clone(), rules: append([]Rule(nil), rules...)}
}

// Segment labels every cue. The only state carried between cues is the
// preceding cue's resolved label.
func (s *Segmenter) Segment(cues []timeline.Cue) Result {
	a := Analyze(cues, s.opts)
	res := Result{
		Labels: make([]Label, len(cues)),
		Rules:  make([]string, len(cues)),
	}

	prev := Unknown
	for i := range cues {
		label, rule := s.resolve(a, i, prev)
		if rule == RuleFallback || rule == "" {
			res.Fallbacks = append(res.Fallbacks, AmbiguousSpeakerFallback{CueIndex: i, Inherited: label})
		}
		res.Labels[i] = label
		res.Rules[i] = rule
		prev = label
	}
	return res
}

func (s *Segmenter) resolve(a *Analysis, i int, prev Label) (Label, string) {
	for _, r := range s.rules {
		if label, ok := r.Apply(a, i, prev); ok {
			return label, r.Name
		}
	}
	return prev, ""
}
