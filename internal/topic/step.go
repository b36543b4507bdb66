package topic

import "github.com/suykerbuyk/vibe-digest/internal/transcript"

// toolRef records which extracted step issued a tool_use, so results that
// arrive in a later user entry can be paired back to it.
type toolRef struct {
	id   string
	step int
}

// stepExtractor holds the single "current step" slot for one assistant turn.
type stepExtractor struct {
	lang    Language
	steps   []WorkStep
	current *WorkStep
	pending []string
	refs    []toolRef
}

// ExtractSteps converts one assistant turn's content blocks into work steps.
func ExtractSteps(blocks []transcript.ContentBlock, lang Language) []WorkStep {
	steps, _ := extractSteps(blocks, lang)
	return steps
}

func extractSteps(blocks []transcript.ContentBlock, lang Language) ([]WorkStep, []toolRef) {
	x := &stepExtractor{lang: lang}
	for _, b := range blocks {
		switch b.Type {
		case "text":
			x.text(b.Text)
		case "tool_use":
			x.toolUse(b)
		case "tool_result":
			x.toolResult(b)
		}
	}
	x.push()
	return x.steps, x.refs
}

func (x *stepExtractor) text(text string) {
	action, ok := MeaningfulAction(text)
	if !ok {
		return
	}
	x.push()
	x.current = &WorkStep{Description: action, Result: InProgress()}
}

func (x *stepExtractor) toolUse(b transcript.ContentBlock) {
	if x.current == nil {
		x.current = &WorkStep{Description: phrasesFor(x.lang).placeholder, Result: InProgress()}
	}
	x.current.Details = append(x.current.Details, DescribeToolUse(b.Name, b.Input, x.lang))
	if b.ID != "" {
		x.pending = append(x.pending, b.ID)
	}
}

func (x *stepExtractor) toolResult(b transcript.ContentBlock) {
	if x.current == nil || x.current.Result.Status != StepInProgress {
		return
	}
	x.current.Result = ClassifyResult(b)
}

func (x *stepExtractor) push() {
	if x.current == nil {
		return
	}
	idx := len(x.steps)
	x.steps = append(x.steps, *x.current)
	for _, id := range x.pending {
		x.refs = append(x.refs, toolRef{id: id, step: idx})
	}
	x.current = nil
	x.pending = nil
}
