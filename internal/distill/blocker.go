package distill

import (
	"strings"

	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

func blockers(topics []topic.Topic, th Thresholds) []Blocker {
	var out []Blocker
	for _, t := range topics {
		switch t.Outcome.Kind {
		case topic.OutcomeFailed:
			out = append(out, Blocker{
				Issue:    blockerIssue(t, th),
				Severity: failureSeverity(t, th),
				Status:   Blocked,
			})
		case topic.OutcomePartiallyCompleted:
			out = append(out, Blocker{
				Issue:    blockerIssue(t, th),
				Severity: SeverityMajor,
				Status:   InProgress,
			})
		}
	}
	return out
}

func blockerIssue(t topic.Topic, th Thresholds) string {
	intent := strings.ToLower(simplifyIntent(t.UserIntent, th.IntentWords))
	return "While " + intent + ": " + firstLine(t.Outcome.Message)
}

func failureSeverity(t topic.Topic, th Thresholds) Severity {
	failed := 0
	for _, s := range t.Steps {
		if s.Result.Status == topic.StepFailed {
			failed++
		}
	}
	switch {
	case failed >= th.CriticalFailedSteps:
		return SeverityCritical
	case failed >= th.MajorFailedSteps:
		return SeverityMajor
	default:
		return SeverityMinor
	}
}

func nextSteps(topics []topic.Topic, th Thresholds) []string {
	var out []string
	for _, t := range topics {
		if len(out) >= th.MaxNextSteps {
			break
		}
		intent := strings.ToLower(simplifyIntent(t.UserIntent, th.IntentWords))
		switch t.Outcome.Kind {
		case topic.OutcomeFailed:
			out = append(out, "Retry "+intent)
		case topic.OutcomePartiallyCompleted:
			out = append(out, "Complete remaining tasks for "+intent)
		}
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
