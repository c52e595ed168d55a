package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Optional derived documents.
const (
	ExtraLessonPlan      = "lesson-plan"
	ExtraObservationNote = "observation-note"
)

// Extras is the set of requested derived documents.
type Extras map[string]bool

// ParseExtras reads a comma-separated extras list and rejects unknown names.
func ParseExtras(value string) (Extras, error) {
	out := Extras{}
	var invalid []string
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		switch name {
		case "":
		case ExtraLessonPlan, ExtraObservationNote:
			out[name] = true
		default:
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, fmt.Errorf("invalid extras %v: allowed %s, %s", invalid, ExtraLessonPlan, ExtraObservationNote)
	}
	return out, nil
}
