package document

import "github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"

// Builder derives teaching documents from a finished transcript.
type Builder interface {
	LessonPlan(t dialogue.Transcript, title string) (LessonPlan, error)
	ObservationNote(t dialogue.Transcript, title string) (ObservationNote, error)
}
