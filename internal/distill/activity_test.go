package distill

import (
	"testing"

	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

func TestGroup(t *testing.T) {
	withDetail := topic.WorkStep{Description: "Performing work", Details: []string{"login.go を新規作成"}, Result: ok}

	tests := []struct {
		name  string
		topic topic.Topic
		want  string
	}{
		{"feature", makeTopic("Please implement login", step("Create auth.rs", ok)), GroupFeature},
		{"bug fix", makeTopic("Fix the crash", step("Edit main.go", ok)), GroupBugFix},
		{"analysis", makeTopic("How does the parser work?", step("Read parser.go", ok)), GroupAnalysis},
		{"analysis progressive", makeTopic("How does the parser work?", step("Reading lexer.go", ok)), GroupAnalysis},
		{"ready is not read", makeTopic("How does the parser work?", step("Ready to deploy", ok)), GroupDevelopment},
		{"testing", makeTopic("Run the tests please", step("Run Go tests", ok)), GroupTesting},
		{"documentation", makeTopic("Please update the document", step("Edit README.md", ok)), GroupDocumentation},
		{"fallback", makeTopic("Please tidy things", step("Run `ls`", ok)), GroupDevelopment},
		{"details count", makeTopic("ログイン機能を実装して", withDetail), GroupFeature},
		{"no steps", makeTopic("Please implement login"), GroupDevelopment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Group(tt.topic); got != tt.want {
				t.Errorf("Group = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessImpact(t *testing.T) {
	th := DefaultThresholds()
	big := makeTopic("Please implement login", repeat(step("Create a", ok), 6)...)
	small := makeTopic("Please implement login", step("Create a", ok))
	failed := makeTopic("Please implement login", step("Create a", bad))

	tests := []struct {
		name   string
		topics []topic.Topic
		want   Impact
	}{
		{"all completed and large", []topic.Topic{big}, ImpactHigh},
		{"all completed but small", []topic.Topic{small}, ImpactMedium},
		{"half completed", []topic.Topic{small, failed}, ImpactLow},
		{"majority completed", []topic.Topic{small, small, failed}, ImpactMedium},
		{"average is fractional", []topic.Topic{big, makeTopic("x", repeat(step("Create a", ok), 5)...)}, ImpactHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assessImpact(tt.topics, th); got != tt.want {
				t.Errorf("assessImpact = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActivities_SortedByImpact(t *testing.T) {
	topics := []topic.Topic{
		makeTopic("Fix the crash", step("Edit a", bad)),
		makeTopic("Please implement login", repeat(step("Create a", ok), 6)...),
	}
	got := activities(groupTopics(topics), DefaultThresholds())
	if len(got) != 2 || got[0].Category != GroupFeature || got[0].Impact != ImpactHigh {
		t.Errorf("activities = %+v, want the High feature group first", got)
	}
}

func TestActivityDescription(t *testing.T) {
	topics := []topic.Topic{
		makeTopic("Fix the crash", step("Edit a", ok)),
		makeTopic("Fix the leak", step("Edit b", ok)),
	}
	got := activities(groupTopics(topics), DefaultThresholds())
	if len(got) != 1 || got[0].Description != "Bug Fixes and Error Resolution (2 tasks)" {
		t.Errorf("activities = %+v", got)
	}
}

func TestTimeDistribution(t *testing.T) {
	topics := []topic.Topic{
		makeTopic("Please implement login", step("Create a", ok), step("Create b", ok), step("Create c", ok)),
		makeTopic("Fix the crash", step("Edit a", ok)),
	}
	shares := timeDistribution(groupTopics(topics))
	var total float64
	for _, s := range shares {
		total += s.Percent
	}
	if total < 99.999 || total > 100.001 {
		t.Errorf("shares sum to %v, want 100", total)
	}
	if shares[0].Category != GroupFeature || shares[0].Percent != 75 {
		t.Errorf("first share = %+v, want feature at 75%%", shares[0])
	}

	empty := timeDistribution(groupTopics([]topic.Topic{makeTopic("Please implement login")}))
	if len(empty) != 1 || empty[0].Percent != 0 {
		t.Errorf("zero-step distribution = %+v, want 0%%", empty)
	}
	if got := primaryFocus(nil); got != "General Development" {
		t.Errorf("primaryFocus(nil) = %q", got)
	}
}
