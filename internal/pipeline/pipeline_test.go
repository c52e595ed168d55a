package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/timeline"
)

func greeting() Input {
	return Input{
		VideoID: "BV1GJ411x7h7",
		Title:   "三年级语文：《曹冲称象》",
		Entries: []timeline.RawEntry{
			{Start: "0", End: "3", Text: "好，今天我们来学习曹冲称象"},
			{Start: "3", End: "3.4", Text: "老师好"},
		},
	}
}

func TestRunGreeting(t *testing.T) {
	res, err := New(DefaultOptions(), nil).Run(context.Background(), greeting())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := map[string]string{
		ArtifactRaw:            "[00:00-00:03] 好，今天我们来学习曹冲称象\n[00:03-00:03] 老师好\n",
		ArtifactSpeakerLabeled: "[00:00-00:03] [老师]: 好，今天我们来学习曹冲称象\n[00:03-00:03] [学生]: 老师好\n",
		ArtifactVerbatim:       "[老师]: 好，今天我们来学习曹冲称象\n[学生]: 老师好\n",
		ArtifactSmooth:         "[老师]: 好，今天我们来学习曹冲称象。\n[学生]: 老师好。\n",
	}
	for name, w := range want {
		if got := res.Outputs[name]; got != w {
			t.Errorf("Outputs[%s] = %q, want %q", name, got, w)
		}
	}
	order := []string{ArtifactRaw, ArtifactSpeakerLabeled, ArtifactVerbatim, ArtifactSmooth}
	if strings.Join(res.Order, ",") != strings.Join(order, ",") {
		t.Errorf("Order = %v, want %v", res.Order, order)
	}
	if res.Manifest.RunID == "" || res.Manifest.VideoID != "BV1GJ411x7h7" {
		t.Errorf("Manifest = %+v", res.Manifest)
	}
	if len(res.Manifest.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Manifest.Warnings)
	}
}

func TestRunEmptyTimeline(t *testing.T) {
	in := Input{VideoID: "BV1GJ411x7h7", Entries: []timeline.RawEntry{
		{Start: "x", End: "1", Text: "上课"},
		{Start: "1", End: "2", Text: "   "},
	}}
	res, err := New(DefaultOptions(), nil).Run(context.Background(), in)

	var empty *timeline.EmptyTimelineError
	if !errors.As(err, &empty) {
		t.Fatalf("Run() error = %v, want EmptyTimelineError", err)
	}
	if !strings.Contains(err.Error(), "no subtitle track found") {
		t.Errorf("error = %q, want an actionable message", err)
	}
	if len(res.Outputs) != 0 || len(res.Manifest.Artifacts) != 0 {
		t.Errorf("outputs = %v, artifacts = %v, want none", res.Outputs, res.Manifest.Artifacts)
	}
	if len(res.Manifest.Warnings) != 1 {
		t.Errorf("Warnings = %v, want the dropped entry", res.Manifest.Warnings)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	in := Input{Title: "曹冲称象", Entries: []timeline.RawEntry{
		{Start: "00:00:00,000", End: "00:00:03,000", Text: "小明，你来说一说"},
		{Start: "00:00:03,200", End: "00:00:04,000", Text: "是石头"},
		{Start: "00:00:04,100", End: "00:00:04,400", Text: "对！"},
		{Start: "00:00:04,150", End: "00:00:04,500", Text: "对！"},
		{Start: "00:00:04,200", End: "00:00:04,600", Text: "是！"},
		{Start: "00:00:09,000", End: "00:00:15,000", Text: "我们来看曹冲是怎样称出大象的重量的呢"},
	}}
	opts := DefaultOptions()
	opts.Extras = Extras{ExtraLessonPlan: true, ExtraObservationNote: true}
	opts.Document.MinTurns = 1

	first, err := New(opts, nil).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := New(opts, nil).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(first.Manifest, second.Manifest) {
		t.Errorf("Manifest = %+v, then %+v", first.Manifest, second.Manifest)
	}
	if len(first.Outputs) != len(second.Outputs) {
		t.Fatalf("outputs differ in size: %d vs %d", len(first.Outputs), len(second.Outputs))
	}
	for name, content := range first.Outputs {
		if second.Outputs[name] != content {
			t.Errorf("Outputs[%s] differs between runs", name)
		}
	}
	if first.Outputs[ArtifactLessonPlan] == "" || first.Outputs[ArtifactObservationNote] == "" {
		t.Errorf("Order = %v, want both derived documents", first.Order)
	}
}

func TestRunInsufficientContentKeepsBaseOutputs(t *testing.T) {
	opts := DefaultOptions()
	opts.Extras = Extras{ExtraLessonPlan: true}

	res, err := New(opts, nil).Run(context.Background(), greeting())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := res.Outputs[ArtifactLessonPlan]; ok {
		t.Error("lesson plan produced for a two-turn transcript")
	}
	if res.Outputs[ArtifactSmooth] == "" {
		t.Error("smooth output missing")
	}
	if len(res.Manifest.Warnings) != 1 || !strings.HasPrefix(res.Manifest.Warnings[0], "skip lesson plan") {
		t.Errorf("Warnings = %v", res.Manifest.Warnings)
	}
}

type refinerFunc func(context.Context, dialogue.Transcript, PromptContract) (dialogue.Transcript, error)

func (f refinerFunc) Refine(ctx context.Context, t dialogue.Transcript, c PromptContract) (dialogue.Transcript, error) {
	return f(ctx, t, c)
}

func TestRunRefiner(t *testing.T) {
	tests := []struct {
		name        string
		refiner     refinerFunc
		wantRefined bool
	}{
		{
			name: "accepted",
			refiner: func(_ context.Context, tr dialogue.Transcript, c PromptContract) (dialogue.Transcript, error) {
				if c.Theme != "曹冲称象" || c.Instructions == "" {
					return dialogue.Transcript{}, errors.New("bad contract")
				}
				texts := tr.Texts()
				texts[0] = "好，今天我们一起学习《曹冲称象》。"
				return tr.WithTexts(texts), nil
			},
			wantRefined: true,
		},
		{
			name: "turn dropped",
			refiner: func(_ context.Context, tr dialogue.Transcript, _ PromptContract) (dialogue.Transcript, error) {
				return dialogue.Transcript{Turns: tr.Turns[:1]}, nil
			},
		},
		{
			name: "failed",
			refiner: func(context.Context, dialogue.Transcript, PromptContract) (dialogue.Transcript, error) {
				return dialogue.Transcript{}, errors.New("quota exceeded")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(DefaultOptions(), tt.refiner).Run(context.Background(), greeting())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			got, ok := res.Outputs[ArtifactRefined]
			if ok != tt.wantRefined {
				t.Fatalf("refined output present = %v, want %v", ok, tt.wantRefined)
			}
			if tt.wantRefined {
				if !strings.Contains(got, "《曹冲称象》") {
					t.Errorf("Outputs[refined] = %q", got)
				}
				return
			}
			if len(res.Manifest.Warnings) != 1 || res.Refined != nil {
				t.Errorf("Warnings = %v, Refined = %v", res.Manifest.Warnings, res.Refined)
			}
			if res.Outputs[ArtifactSmooth] == "" {
				t.Error("smooth output missing after refiner failure")
			}
		})
	}
}

func TestCheckRefined(t *testing.T) {
	orig := dialogue.Transcript{Turns: []dialogue.Turn{
		{Speaker: "Teacher", StartMS: 0, EndMS: 1000, Text: "上课", CueStart: 0, CueEnd: 1},
		{Speaker: "WholeClass", StartMS: 1000, EndMS: 2000, Text: "老师好", CueStart: 1, CueEnd: 2},
	}}
	mutate := func(f func(*dialogue.Transcript)) dialogue.Transcript {
		out := dialogue.Transcript{Turns: append([]dialogue.Turn(nil), orig.Turns...)}
		f(&out)
		return out
	}

	tests := []struct {
		name    string
		refined dialogue.Transcript
		wantErr bool
	}{
		{"text only", orig.WithTexts([]string{"上课。", "老师好！"}), false},
		{"count", dialogue.Transcript{Turns: orig.Turns[:1]}, true},
		{"speaker", mutate(func(t *dialogue.Transcript) { t.Turns[1].Speaker = "Student" }), true},
		{"time", mutate(func(t *dialogue.Transcript) { t.Turns[0].EndMS = 900 }), true},
		{"cues", mutate(func(t *dialogue.Transcript) { t.Turns[0].CueEnd = 2 }), true},
		{"empty text", orig.WithTexts([]string{"", "老师好"}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRefined(orig, tt.refined)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckRefined() error = %v, wantErr %v", err, tt.wantErr)
			}
			var cv *ContractViolationError
			if err != nil && !errors.As(err, &cv) {
				t.Errorf("error type = %T, want *ContractViolationError", err)
			}
		})
	}
}

func TestParseExtras(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"lesson-plan", []string{ExtraLessonPlan}, false},
		{" lesson-plan , observation-note ,", []string{ExtraLessonPlan, ExtraObservationNote}, false},
		{"lesson-plan,summary", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExtras(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExtras(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseExtras(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for _, name := range tt.want {
				if !got[name] {
					t.Errorf("ParseExtras(%q) missing %s", tt.in, name)
				}
			}
		})
	}
}

func TestRunID(t *testing.T) {
	base := greeting()
	edited := greeting()
	edited.Entries = append([]timeline.RawEntry(nil), edited.Entries...)
	edited.Entries[1].Text = "老师好！"
	other := greeting()
	other.VideoID = "BV1xx411c7mD"

	if RunID(base) != RunID(greeting()) {
		t.Errorf("RunID() differs for identical input")
	}
	tests := []struct {
		name string
		in   Input
	}{
		{"edited text", edited},
		{"other video", other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunID(tt.in); got == RunID(base) {
				t.Errorf("RunID() = %v, want a different id", got)
			}
		})
	}
}

func TestRunChorusOfIdenticalEntries(t *testing.T) {
	tests := []struct {
		name     string
		entries  []timeline.RawEntry
		speakers []string
	}{
		{
			name: "class reads the title after a plural address",
			entries: []timeline.RawEntry{
				{Start: "0", End: "3", Text: "同学们，一起读一遍课题"},
				{Start: "3.1", End: "3.6", Text: "曹冲称象"},
				{Start: "3.15", End: "3.7", Text: "曹冲称象"},
				{Start: "3.2", End: "3.75", Text: "曹冲称象"},
			},
			speakers: []string{"Teacher", "WholeClass"},
		},
		{
			name: "one exclamation from several voices",
			entries: []timeline.RawEntry{
				{Start: "10", End: "10.4", Text: "好！"},
				{Start: "10.05", End: "10.5", Text: "好！"},
				{Start: "10.1", End: "10.6", Text: "好！"},
			},
			speakers: []string{"WholeClass"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(DefaultOptions(), nil).Run(context.Background(), Input{Entries: tt.entries})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			var got []string
			for _, turn := range res.Labeled.Turns {
				got = append(got, string(turn.Speaker))
			}
			if !reflect.DeepEqual(got, tt.speakers) {
				t.Errorf("speakers = %v, want %v", got, tt.speakers)
			}
		})
	}
}
