package speaker

import (
	"testing"

	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

func TestRulesInIsolation(t *testing.T) {
	opts := DefaultOptions()
	cues := []timeline.Cue{
		cue(0, 5000, "曹冲先让人把大象赶到船上然后在水面的位置画了一条线"), // 0 long
		cue(5100, 5500, "对吗"),              // 1 short question after long
		cue(9000, 12000, "接下来我们要看天平了"),  // 2 medium after silence
		cue(12100, 12400, "哇"),              // 3 burst
		cue(12150, 12450, "哇哦"),             // 4 burst
		cue(12200, 12500, "好棒"),             // 5 burst
	}
	a := Analyze(cues, opts)

	tests := []struct {
		name   string
		rule   func(*Analysis, int, Label) (Label, bool)
		index  int
		prev   Label
		want   Label
		wantOK bool
	}{
		{"lecture matches long cue", lectureRule, 0, Unknown, Teacher, true},
		{"lecture skips short cue", lectureRule, 1, Teacher, "", false},
		{"response after long", responseRule, 1, Teacher, Student, true},
		{"response needs a long predecessor", responseRule, 4, WholeClass, "", false},
		{"gap break after silence", gapBreakRule, 2, Student, Teacher, true},
		{"gap break ignores close cue", gapBreakRule, 1, Teacher, "", false},
		{"burst inside cluster", burstRule, 4, WholeClass, WholeClass, true},
		{"burst outside cluster", burstRule, 2, Student, "", false},
		{"short reply after teacher", shortReplyRule, 1, Teacher, Student, true},
		{"short reply needs teacher before", shortReplyRule, 1, Student, "", false},
		{"fallback inherits", fallbackRule, 2, Student, Student, true},
		{"vocative misses", vocativeRule, 0, Unknown, "", false},
		{"instruction misses", instructionRule, 3, Unknown, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rule(a, tt.index, tt.prev)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("rule(%d) = %q,%v, want %q,%v", tt.index, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"老师好", 3},
		{"好，今天我们来学习曹冲称象这篇课文", 16},
		{"A = B, B = C", 4},
		{"Hello world 2024!", 3},
		{"，。！", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := len(Tokens(tt.text)); got != tt.want {
			t.Errorf("len(Tokens(%q)) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestIsQuestion(t *testing.T) {
	particles := DefaultOptions().QuestionParticles
	tests := []struct {
		text string
		want bool
	}{
		{"对吗", true},
		{"是不是呢。", true},
		{"Why?", true},
		{"为什么？", true},
		{"我知道了", false},
	}
	for _, tt := range tests {
		if got := IsQuestion(tt.text, particles); got != tt.want {
			t.Errorf("IsQuestion(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
