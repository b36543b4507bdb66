package topic

import (
	"slices"
	"time"

	"github.com/suykerbuyk/vibe-digest/internal/transcript"
)

// Flow reduces an ordered turn stream into topics. At most one topic is open
// at a time; closed topics are never modified again.
type Flow struct {
	opts    Options
	current *Topic
	topics  []Topic

	// pending maps tool_use IDs of the open topic to their step index.
	pending  map[string]int
	lastSeen time.Time
}

// NewFlow returns a reducer in the NoOpenTopic state.
func NewFlow(opts Options) *Flow {
	if opts.Language == "" {
		opts.Language = English
	}
	return &Flow{opts: opts}
}

// Segment runs a fresh Flow over entries and returns the finalized topics.
func Segment(entries []transcript.Entry, opts Options) []Topic {
	f := NewFlow(opts)
	for _, e := range entries {
		f.Observe(e)
	}
	return f.Finalize()
}

// Observe dispatches one transcript entry. Entries without a usable
// timestamp, and roles other than user and assistant, are ignored.
func (f *Flow) Observe(e transcript.Entry) {
	if !e.HasTime() || e.Message == nil {
		return
	}
	switch e.Type {
	case "user":
		f.observeSeen(e.Time)
		if f.opts.PairToolResults {
			f.ObserveToolResults(transcript.ToolResults(e.Message))
		}
		if text := transcript.UserText(e); text != "" {
			f.ObserveUser(text, e.Time)
		}
	case "assistant":
		f.observeSeen(e.Time)
		f.ObserveAssistant(transcript.ContentBlocks(e.Message))
	}
}

func (f *Flow) observeSeen(ts time.Time) {
	if ts.After(f.lastSeen) {
		f.lastSeen = ts
	}
}

// ObserveUser handles a user turn. A turn with a detected intent closes the
// open topic, if any, and opens a new one.
func (f *Flow) ObserveUser(text string, ts time.Time) {
	f.observeSeen(ts)
	intent, ok := ExtractIntent(text)
	if !ok {
		return
	}
	f.close(ts)
	f.current = &Topic{
		Title:      SynthesizeTitle(intent),
		UserIntent: intent,
		Outcome:    Outcome{Kind: OutcomeInProgress},
		StartedAt:  ts,
		Timestamp:  ts.Format(time.RFC3339),
	}
	f.pending = make(map[string]int)
}

// ObserveAssistant appends the steps of one assistant turn to the open topic.
// Without an open topic the turn cannot be attributed and is dropped.
func (f *Flow) ObserveAssistant(blocks []transcript.ContentBlock) {
	if f.current == nil {
		return
	}
	steps, refs := extractSteps(blocks, f.opts.Language)
	offset := len(f.current.Steps)
	f.current.Steps = append(f.current.Steps, steps...)
	for _, r := range refs {
		f.pending[r.id] = offset + r.step
	}
}

// ObserveToolResults assigns results carried by a user entry to the steps
// that issued the matching tool_use. Only steps still in progress take a
// result.
func (f *Flow) ObserveToolResults(results []transcript.ContentBlock) {
	if f.current == nil {
		return
	}
	for _, b := range results {
		idx, ok := f.pending[b.ToolUseID]
		if !ok {
			continue
		}
		delete(f.pending, b.ToolUseID)
		step := &f.current.Steps[idx]
		if step.Result.Status == StepInProgress {
			step.Result = ClassifyResult(b)
		}
	}
}

// Finalize closes the open topic, if any, and returns every closed topic in
// order. Calling it again returns the same topics.
func (f *Flow) Finalize() []Topic {
	f.close(f.lastSeen)
	return f.Topics()
}

// Topics returns the topics closed so far.
func (f *Flow) Topics() []Topic {
	return slices.Clone(f.topics)
}

// Open reports whether a topic is currently open.
func (f *Flow) Open() bool {
	return f.current != nil
}

func (f *Flow) close(ts time.Time) {
	if f.current == nil {
		return
	}
	t := *f.current
	if ts.IsZero() || ts.Before(t.StartedAt) {
		ts = t.StartedAt
	}
	t.CompletedAt = ts
	t.Outcome = AggregateOutcome(t.Steps)
	f.topics = append(f.topics, t)
	f.current = nil
	f.pending = nil
}
