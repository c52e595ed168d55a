package speaker

// Rule is one link of the chain. Apply receives the preceding cue's resolved
// label as prev (Unknown before the first cue) and reports whether it matched.
type Rule struct {
	Name  string
	Apply func(a *Analysis, i int, prev Label) (Label, bool)
}

const (
	RuleBlank       = "blank"
	RuleVocative    = "vocative"
	RuleChoral      = "choral"
	RuleInstruction = "instruction"
	RuleResponse    = "response"
	RuleGapBreak    = "gap_break"
	RuleBurst       = "burst"
	RuleLecture     = "lecture"
	RuleShortReply  = "short_reply"
	RuleFallback    = "fallback"
)

// DefaultRules returns the chain in priority order: lexical markers, the
// timing gap, length and cadence, then the fallback.
func DefaultRules() []Rule {
	return []Rule{
		{RuleBlank, blankRule},
		{RuleVocative, vocativeRule},
		{RuleChoral, choralRule},
		{RuleInstruction, instructionRule},
		{RuleResponse, responseRule},
		{RuleGapBreak, gapBreakRule},
		{RuleBurst, burstRule},
		{RuleLecture, lectureRule},
		{RuleShortReply, shortReplyRule},
		{RuleFallback, fallbackRule},
	}
}

// blankRule keeps the running label across empty cues; the assembler folds
// them into the neighbouring turn anyway.
func blankRule(a *Analysis, i int, prev Label) (Label, bool) {
	if !a.info[i].blank {
		return "", false
	}
	return prev, true
}

func vocativeRule(a *Analysis, i int, _ Label) (Label, bool) {
	if a.info[i].vocative {
		return Teacher, true
	}
	return "", false
}

// choralRule: a cluster of short near-simultaneous cues right after a plural
// address is the class answering in chorus.
func choralRule(a *Analysis, i int, _ Label) (Label, bool) {
	inf := a.info[i]
	if !inf.short || a.ClusterSize(i) < a.Opts.MinChoralCues {
		return "", false
	}
	first := inf.clusterStart
	if first == 0 || !a.info[first-1].vocative || a.Gap(first) > a.Opts.GapThresholdMS {
		return "", false
	}
	return WholeClass, true
}

func instructionRule(a *Analysis, i int, _ Label) (Label, bool) {
	if containsAny(a.Cues[i].Text, a.Opts.InstructionMarkers) {
		return Teacher, true
	}
	return "", false
}

// responseRule: a short question or stock answer directly after a long
// utterance is a single student replying.
func responseRule(a *Analysis, i int, _ Label) (Label, bool) {
	if i == 0 || !a.info[i].short || a.inBurst(i) {
		return "", false
	}
	if !a.info[i-1].long || a.Gap(i) > a.Opts.GapThresholdMS {
		return "", false
	}
	text := a.Cues[i].Text
	if IsQuestion(text, a.Opts.QuestionParticles) || equalsAny(text, a.Opts.ResponseMarkers) {
		return Student, true
	}
	return "", false
}

// gapBreakRule: after a long silence the continuation bias is dropped and a
// non-short utterance opens a new turn held by the teacher.
func gapBreakRule(a *Analysis, i int, _ Label) (Label, bool) {
	if i == 0 || a.info[i].short || a.Gap(i) <= a.Opts.GapThresholdMS {
		return "", false
	}
	return Teacher, true
}

func burstRule(a *Analysis, i int, _ Label) (Label, bool) {
	if a.inBurst(i) {
		return WholeClass, true
	}
	return "", false
}

func lectureRule(a *Analysis, i int, _ Label) (Label, bool) {
	inf := a.info[i]
	if inf.long && inf.distinct >= a.Opts.MinDistinctRatio {
		return Teacher, true
	}
	return "", false
}

func shortReplyRule(a *Analysis, i int, prev Label) (Label, bool) {
	if a.info[i].short && prev == Teacher {
		return Student, true
	}
	return "", false
}

// fallbackRule always matches: within the gap threshold this is the
// continuation bias towards the previous speaker.
func fallbackRule(_ *Analysis, _ int, prev Label) (Label, bool) {
	return prev, true
}
