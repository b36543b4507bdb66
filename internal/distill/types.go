// Package distill turns a project's closed topics into a human-facing
// project summary using fixed, deterministic rules.
package distill

import "fmt"

// Impact rates an activity group.
type Impact int

const (
	ImpactLow Impact = iota
	ImpactMedium
	ImpactHigh
)

func (i Impact) String() string {
	switch i {
	case ImpactLow:
		return "Low"
	case ImpactMedium:
		return "Medium"
	case ImpactHigh:
		return "High"
	}
	return fmt.Sprintf("Impact(%d)", int(i))
}

func (i Impact) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// Severity rates a blocker.
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityMajor
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "Minor"
	case SeverityMajor:
		return "Major"
	case SeverityCritical:
		return "Critical"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Resolution is the state of a blocker.
type Resolution int

const (
	Resolved Resolution = iota
	InProgress
	Blocked
)

func (r Resolution) String() string {
	switch r {
	case Resolved:
		return "Resolved"
	case InProgress:
		return "In Progress"
	case Blocked:
		return "Blocked"
	}
	return fmt.Sprintf("Resolution(%d)", int(r))
}

func (r Resolution) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Activity is one group of related topics.
type Activity struct {
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Impact      Impact `json:"impact" yaml:"impact"`
}

// Share is one category's percentage of the project's steps.
type Share struct {
	Category string  `json:"category" yaml:"category"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// WorkSummary describes where effort went.
type WorkSummary struct {
	PrimaryFocus     string     `json:"primary_focus" yaml:"primary_focus"`
	Activities       []Activity `json:"activities" yaml:"activities"`
	TimeDistribution []Share    `json:"time_distribution,omitempty" yaml:"time_distribution,omitempty"`
}

// Achievement is a notable completed piece of work.
type Achievement struct {
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"`
}

// Blocker is a failed or unfinished piece of work.
type Blocker struct {
	Issue    string     `json:"issue" yaml:"issue"`
	Severity Severity   `json:"severity" yaml:"severity"`
	Status   Resolution `json:"resolution_status" yaml:"resolution_status"`
}

// Where a summary came from.
const (
	SourceHeuristic = "heuristic"
	SourceModel     = "model"
)

// ProjectSummary has the same shape whether it was distilled here or
// decoded from a model response.
type ProjectSummary struct {
	Project      string        `json:"project" yaml:"project"`
	Title        string        `json:"title" yaml:"title"`
	Purpose      string        `json:"purpose" yaml:"purpose"`
	Work         WorkSummary   `json:"work_summary" yaml:"work_summary"`
	Achievements []Achievement `json:"key_achievements" yaml:"key_achievements"`
	Blockers     []Blocker     `json:"blockers" yaml:"blockers"`
	NextSteps    []string      `json:"next_steps" yaml:"next_steps"`
	Source       string        `json:"source" yaml:"source"`
}

// Thresholds collects the empirical constants used by the rules.
type Thresholds struct {
	// A completed topic needs more than this many steps to be an achievement.
	AchievementMinSteps int
	// Achievement tiers by step count.
	ModerateSteps    int
	SignificantSteps int
	// A group is High impact when every topic completed and the average step
	// count exceeds this.
	HighImpactAvgSteps float64
	// Achievements at or above this token similarity are duplicates.
	DedupSimilarity float64
	MaxAchievements int
	MaxNextSteps    int
	// Failed-step counts at which a failed topic's blocker escalates.
	MajorFailedSteps    int
	CriticalFailedSteps int
	// Words of the intent kept in achievement and blocker text.
	IntentWords int
}

// DefaultThresholds returns the stock rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AchievementMinSteps: 3,
		ModerateSteps:       3,
		SignificantSteps:    6,
		HighImpactAvgSteps:  5,
		DedupSimilarity:     0.7,
		MaxAchievements:     5,
		MaxNextSteps:        3,
		MajorFailedSteps:    2,
		CriticalFailedSteps: 4,
		IntentWords:         10,
	}
}
