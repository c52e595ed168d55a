package document

import "fmt"

// InsufficientContentError means the transcript is too short to stage.
type InsufficientContentError struct {
	Turns int
	Min   int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("transcript too short for derived documents: %d turns, need at least %d", e.Turns, e.Min)
}
