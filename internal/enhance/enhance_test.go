package enhance

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

func transcript(texts ...string) dialogue.Transcript {
	labels := []speaker.Label{speaker.Teacher, speaker.Student, speaker.WholeClass}
	var t dialogue.Transcript
	for i, s := range texts {
		t.Turns = append(t.Turns, dialogue.Turn{
			Speaker:  labels[i%len(labels)],
			StartMS:  int64(i * 1000),
			EndMS:    int64(i*1000 + 900),
			Text:     s,
			CueStart: i,
			CueEnd:   i + 1,
		})
	}
	return t
}

func TestVerbatim(t *testing.T) {
	v := NewVerbatim(VerbatimOptions{Fillers: DefaultFillers()})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"filler cue removed", "嗯 今天我们学习 啊", "今天我们学习"},
		{"filler clause removed", "嗯，我觉得是石头", "我觉得是石头"},
		{"han stutter", "我我我们一起看", "我们一起看"},
		{"doubled characters kept", "谢谢 看看", "谢谢 看看"},
		{"latin stutter", "the the cat um sat", "the cat sat"},
		{"long latin repeat kept", "water water", "water water"},
		{"filler only turn kept", "嗯", "嗯"},
		{"whitespace normalised", "  一   二 ", "一 二"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Enhance(transcript(tt.in)).Turns[0].Text
			if got != tt.want {
				t.Errorf("Enhance(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVerbatimRemovesOnlyFillers(t *testing.T) {
	fillers := DefaultFillers()
	v := NewVerbatim(VerbatimOptions{Fillers: fillers})
	in := transcript(
		"嗯 同学们 今天我们来学习 呃 曹冲称象",
		"um so we we begin",
		"啊，对，是这样",
	)
	out := v.Enhance(in)

	filler := make(map[string]bool)
	for _, f := range fillers {
		filler[f] = true
	}
	dedupe := func(toks []string) []string {
		var out []string
		for _, tok := range toks {
			if filler[tok] {
				continue
			}
			if n := len(out); n > 0 && out[n-1] == tok && isShortWord(tok) {
				continue
			}
			out = append(out, tok)
		}
		return out
	}

	for i := range in.Turns {
		want := dedupe(speaker.Tokens(in.Turns[i].Text))
		got := speaker.Tokens(out.Turns[i].Text)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("turn %d tokens = %v, want %v", i, got, want)
		}
	}
}

func TestSmooth(t *testing.T) {
	s := NewSmooth(SmoothOptions{
		Corrections:  []Correction{{From: "称像", To: "称象"}, {From: "下课是好", To: "好，下课"}},
		QuestionCues: DefaultQuestionCues(),
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"statement gets period", "好，今天我们来学习曹冲称象这篇课文", "好，今天我们来学习曹冲称象这篇课文。"},
		{"fragments joined with comma", "曹冲称像 是一个故事", "曹冲称象，是一个故事。"},
		{"question gets question mark", "为什么 可以用石头", "为什么，可以用石头？"},
		{"existing terminals kept", "好！ 对！ 是！", "好！对！是！"},
		{"repeated punctuation squeezed", "，，好的，，", "好的。"},
		{"comma before terminal dropped", "是这样，。", "是这样。"},
		{"reorder correction", "下课是好", "好，下课。"},
		{"latin sentence", "so today we learn about fractions", "So today we learn about fractions."},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Enhance(transcript(tt.in)).Turns[0].Text
			if got != tt.want {
				t.Errorf("Enhance(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnhancersPreserveTurns(t *testing.T) {
	in := transcript("嗯 上课", "老师好 老师好", "好！ 对！", "um what is this", "")
	enhancers := map[string]Enhancer{
		"verbatim": NewVerbatim(VerbatimOptions{Fillers: DefaultFillers()}),
		"smooth":   NewSmooth(SmoothOptions{QuestionCues: DefaultQuestionCues()}),
	}

	for name, e := range enhancers {
		t.Run(name, func(t *testing.T) {
			out := e.Enhance(in)
			if len(out.Turns) != len(in.Turns) {
				t.Fatalf("len(Turns) = %d, want %d", len(out.Turns), len(in.Turns))
			}
			for i := range in.Turns {
				a, b := in.Turns[i], out.Turns[i]
				b.Text = a.Text
				if a != b {
					t.Errorf("turn %d changed beyond text: %+v -> %+v", i, in.Turns[i], out.Turns[i])
				}
			}
			if strings.Join(in.Texts(), "|") == "" {
				t.Fatal("input texts unexpectedly empty")
			}
		})
	}
}
