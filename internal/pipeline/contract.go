package pipeline

import (
	"fmt"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
)

// PromptContract is what a Refiner is asked to honour.
type PromptContract struct {
	Title        string
	Theme        string
	Instructions string
}

// DefaultInstructions restricts a refiner to per-turn wording changes.
const DefaultInstructions = "只润色每个话轮的文字，使其通顺易读，保留原意和课堂口语特点。" +
	"不得增加、删除、合并或拆分话轮，不得改变说话人和顺序。"

// ContractViolationError reports how a refined transcript broke the contract.
type ContractViolationError struct {
	Turn   int
	Reason string
}

func (e *ContractViolationError) Error() string {
	if e.Turn < 0 {
		return "refined transcript rejected: " + e.Reason
	}
	return fmt.Sprintf("refined transcript rejected at turn %d: %s", e.Turn, e.Reason)
}

// CheckRefined verifies that refined differs from orig in turn text only.
func CheckRefined(orig, refined dialogue.Transcript) error {
	if len(orig.Turns) != len(refined.Turns) {
		return &ContractViolationError{Turn: -1, Reason: fmt.Sprintf("turn count changed from %d to %d", len(orig.Turns), len(refined.Turns))}
	}
	for i, o := range orig.Turns {
		r := refined.Turns[i]
		switch {
		case r.Speaker != o.Speaker:
			return &ContractViolationError{Turn: i, Reason: fmt.Sprintf("speaker changed from %s to %s", o.Speaker, r.Speaker)}
		case r.StartMS != o.StartMS || r.EndMS != o.EndMS:
			return &ContractViolationError{Turn: i, Reason: "time range changed"}
		case r.CueStart != o.CueStart || r.CueEnd != o.CueEnd:
			return &ContractViolationError{Turn: i, Reason: "cue range changed"}
		case o.Text != "" && r.Text == "":
			return &ContractViolationError{Turn: i, Reason: "text removed"}
		}
	}
	return nil
}
