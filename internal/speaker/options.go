package speaker

// Options tunes the rule chain. It is copied on construction, so callers may
// reuse or mutate their value afterwards without affecting a Segmenter.
type Options struct {
	// GapThresholdMS is the silence that starts a new turn candidate.
	GapThresholdMS int64
	// ShortUtteranceTokens: cues with fewer tokens are short.
	ShortUtteranceTokens int
	// LongUtteranceTokens: cues with at least this many tokens are long.
	LongUtteranceTokens int
	// MinDistinctRatio is the distinct/total token ratio a lecture cue needs.
	MinDistinctRatio float64
	// BurstWindowMS is the largest gap between cues of one burst.
	BurstWindowMS int64
	// MinBurstCues is the smallest cluster treated as a whole-class burst.
	MinBurstCues int
	// MinChoralCues is the smallest cluster after a vocative treated as choral.
	MinChoralCues int

	AddressMarkers     []string
	InstructionMarkers []string
	ResponseMarkers    []string
	QuestionParticles  []string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		GapThresholdMS:       2000,
		ShortUtteranceTokens: 6,
		LongUtteranceTokens:  12,
		MinDistinctRatio:     0.5,
		BurstWindowMS:        200,
		MinBurstCues:         3,
		MinChoralCues:        2,
		AddressMarkers: []string{
			"同学们", "大家", "小朋友们", "孩子们", "各位", "everyone", "class", "boys and girls",
		},
		InstructionMarkers: []string{
			"今天这节课", "上课", "我们一起", "我们来", "我请", "请你", "请坐", "开始吧",
			"大点声音", "谁能", "谁来", "为什么", "对不对", "下课",
		},
		ResponseMarkers: []string{
			"是", "是的", "对", "不对", "不是", "好", "好的", "知道", "不知道", "明白",
			"老师好", "老师再见", "yes", "no",
		},
		QuestionParticles: []string{"吗", "呢", "?", "？"},
	}
}

func (o Options) clone() Options {
	c := o
	c.AddressMarkers = append([]string(nil), o.AddressMarkers...)
	c.InstructionMarkers = append([]string(nil), o.InstructionMarkers...)
	c.ResponseMarkers = append([]string(nil), o.ResponseMarkers...)
	c.QuestionParticles = append([]string(nil), o.QuestionParticles...)
	return c
}
