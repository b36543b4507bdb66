// Package topic segments a Claude Code conversation into work topics. Each
// topic pairs one detected user intent with the assistant steps performed in
// response, a per-step verdict and an aggregate outcome. Everything here is
// deterministic and free of I/O.
package topic

import (
	"fmt"
	"time"
)

// StepStatus is the verdict of a single work step.
type StepStatus int

const (
	StepInProgress StepStatus = iota
	StepSuccess
	StepFailed
)

var stepStatusNames = [...]string{"in_progress", "success", "failed"}

func (s StepStatus) String() string {
	if int(s) < len(stepStatusNames) {
		return stepStatusNames[s]
	}
	return fmt.Sprintf("StepStatus(%d)", int(s))
}

// MarshalText renders the status by name for JSON and YAML output.
func (s StepStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StepResult is the outcome of one step: Success(msg), Failed(msg) or InProgress.
type StepResult struct {
	Status  StepStatus `json:"status" yaml:"status"`
	Message string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// Success returns a successful result.
func Success(msg string) StepResult { return StepResult{Status: StepSuccess, Message: msg} }

// Failed returns a failed result.
func Failed(msg string) StepResult { return StepResult{Status: StepFailed, Message: msg} }

// InProgress returns the result of a step still waiting for a tool result.
func InProgress() StepResult { return StepResult{Status: StepInProgress} }

// OutcomeKind classifies a topic's aggregate outcome.
type OutcomeKind int

const (
	OutcomeInProgress OutcomeKind = iota
	OutcomeCompleted
	OutcomePartiallyCompleted
	OutcomeFailed
)

var outcomeKindNames = [...]string{"in_progress", "completed", "partially_completed", "failed"}

func (k OutcomeKind) String() string {
	if int(k) < len(outcomeKindNames) {
		return outcomeKindNames[k]
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// MarshalText renders the kind by name for JSON and YAML output.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the aggregate result of a topic.
type Outcome struct {
	Kind    OutcomeKind `json:"kind" yaml:"kind"`
	Message string      `json:"message,omitempty" yaml:"message,omitempty"`
}

// WorkStep is one discrete unit of assistant work inside a topic.
type WorkStep struct {
	Description string     `json:"description" yaml:"description"`
	Details     []string   `json:"details,omitempty" yaml:"details,omitempty"`
	Result      StepResult `json:"result" yaml:"result"`
}

// Topic is a coherent unit of user intent and the work done in response.
type Topic struct {
	Title       string     `json:"title" yaml:"title"`
	UserIntent  string     `json:"user_intent" yaml:"user_intent"`
	Steps       []WorkStep `json:"steps" yaml:"steps"`
	Outcome     Outcome    `json:"outcome" yaml:"outcome"`
	StartedAt   time.Time  `json:"started_at" yaml:"started_at"`
	CompletedAt time.Time  `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Timestamp   string     `json:"timestamp" yaml:"timestamp"`
}

// Language selects the phrase tables used for step descriptions.
type Language string

const (
	English  Language = "en"
	Japanese Language = "ja"
)

// Options tunes segmentation. The zero value segments with English phrases
// and ignores tool results carried by user entries.
type Options struct {
	Language Language

	// PairToolResults attaches tool_result blocks found in user entries to the
	// step that issued the matching tool_use.
	PairToolResults bool
}
