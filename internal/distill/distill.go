package distill

import (
	"fmt"

	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

// Distill summarizes one project's closed topics. It reports false when the
// project has no topics, in which case there is nothing to summarize.
func Distill(project string, topics []topic.Topic, th Thresholds) (ProjectSummary, bool) {
	if len(topics) == 0 {
		return ProjectSummary{}, false
	}
	groups := groupTopics(topics)
	shares := timeDistribution(groups)
	return ProjectSummary{
		Project: project,
		Title:   Title(project, topics),
		Purpose: inferPurpose(topics),
		Work: WorkSummary{
			PrimaryFocus:     primaryFocus(shares),
			Activities:       activities(groups, th),
			TimeDistribution: shares,
		},
		Achievements: achievements(topics, th),
		Blockers:     blockers(topics, th),
		NextSteps:    nextSteps(topics, th),
		Source:       SourceHeuristic,
	}, true
}

// Insights is the one-line overview across all summarized projects.
func Insights(summaries []ProjectSummary) string {
	var achieved, blocked int
	for _, s := range summaries {
		achieved += len(s.Achievements)
		blocked += len(s.Blockers)
	}
	advice := "Good progress with manageable technical challenges."
	if blocked > achieved {
		advice = "Focus needed on resolving technical debt."
	}
	return fmt.Sprintf("Completed %d projects with %d key achievements and %d blockers to address. %s",
		len(summaries), achieved, blocked, advice)
}
