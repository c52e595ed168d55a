package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/document"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

func TestSaveDocx(t *testing.T) {
	tr := dialogue.Transcript{Turns: []dialogue.Turn{
		{Speaker: speaker.Teacher, StartMS: 0, EndMS: 8000, Text: "上课。今天我们来学习曹冲称象。"},
		{Speaker: speaker.WholeClass, StartMS: 8000, EndMS: 9000, Text: "老师好。"},
		{Speaker: speaker.Teacher, StartMS: 9000, EndMS: 30000, Text: "为什么曹冲要用石头？我们来看天平。"},
		{Speaker: speaker.Student, StartMS: 30000, EndMS: 40000, Text: "因为石头和大象一样重。"},
		{Speaker: speaker.Teacher, StartMS: 40000, EndMS: 60000, Text: "小组讨论一下，然后总结。"},
	}}
	b := document.New(document.DefaultOptions())
	plan, err := b.LessonPlan(tr, "曹冲称象")
	if err != nil {
		t.Fatalf("LessonPlan() error = %v", err)
	}
	note, err := b.ObservationNote(tr, "曹冲称象")
	if err != nil {
		t.Fatalf("ObservationNote() error = %v", err)
	}

	dir := t.TempDir()
	saves := map[string]func(string) error{
		"lesson_plan.docx": func(p string) error {
			return saveLessonPlanDocx(plan, p)
		},
		"observation_note.docx": func(p string) error {
			return saveObservationNoteDocx(note, p)
		},
		"dialogue.docx": func(p string) error {
			return saveTranscriptDocx("曹冲称象", tr, dialogue.DefaultNames(), p)
		},
	}
	for name, save := range saves {
		p := filepath.Join(dir, name)
		if err := save(p); err != nil {
			t.Fatalf("save %s error = %v", name, err)
		}
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("Stat(%s) error = %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
