package enhance

import "github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"

// Enhancer rewrites turn texts. Implementations never change turn count,
// order, speakers or time ranges.
type Enhancer interface {
	Enhance(t dialogue.Transcript) dialogue.Transcript
}
