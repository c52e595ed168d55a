package speaker

// Label is the speaker role assigned to a cue or turn.
type Label string

const (
	Teacher    Label = "Teacher"
	Student    Label = "Student"
	WholeClass Label = "WholeClass"
	Unknown    Label = "Unknown"
)

// Valid reports whether l is one of the known roles.
func (l Label) Valid() bool {
	switch l {
	case Teacher, Student, WholeClass, Unknown:
		return true
	}
	return false
}
