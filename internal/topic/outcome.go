package topic

import "fmt"

// AggregateOutcome folds step verdicts into a topic outcome. Steps still in
// progress count toward neither side.
func AggregateOutcome(steps []WorkStep) Outcome {
	var success, failed int
	for _, s := range steps {
		switch s.Result.Status {
		case StepSuccess:
			success++
		case StepFailed:
			failed++
		}
	}
	total := len(steps)
	switch {
	case failed > 0 && success == 0:
		if failed == total {
			return Outcome{Kind: OutcomeFailed, Message: "all steps failed"}
		}
		return Outcome{Kind: OutcomeFailed, Message: fmt.Sprintf("%d/%d steps failed", failed, total)}
	case failed > 0:
		return Outcome{Kind: OutcomePartiallyCompleted, Message: fmt.Sprintf("%d/%d steps completed", success, total)}
	case total > 0 && success == total:
		return Outcome{Kind: OutcomeCompleted, Message: "all steps completed successfully"}
	default:
		return Outcome{Kind: OutcomeInProgress}
	}
}
