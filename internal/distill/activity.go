package distill

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

// Activity group names, in predicate order.
const (
	GroupFeature       = "New Feature Implementation"
	GroupBugFix        = "Bug Fixes and Error Resolution"
	GroupAnalysis      = "Code Analysis and Research"
	GroupTesting       = "Testing and Validation"
	GroupDocumentation = "Documentation Updates"
	GroupDevelopment   = "Development Tasks"

	focusFallback = "General Development"
)

var (
	codeChangePattern = regexp.MustCompile(`(?i)\b(?:writ|wrote|edit|creat)|作成|編集|新規`)
	analysisPattern   = regexp.MustCompile(`(?i)\b(?:(?:read|reads|reading)\b|analy|search|inspect)|読み込み|分析|検索|調査`)

	implementWords = []string{"implement", "実装"}
	fixWords       = []string{"fix", "error", "bug", "修正", "エラー", "バグ"}
	testWords      = []string{"test", "テスト"}
	documentWords  = []string{"document", "readme", "ドキュメント", "文書"}
)

// topicProfile is what the grouping rules look at.
type topicProfile struct {
	intent     string
	codeChange bool
	analysis   bool
}

func profileOf(t topic.Topic) topicProfile {
	p := topicProfile{intent: strings.ToLower(t.UserIntent)}
	for _, s := range t.Steps {
		for _, text := range append([]string{s.Description}, s.Details...) {
			if codeChangePattern.MatchString(text) {
				p.codeChange = true
			}
			if analysisPattern.MatchString(text) {
				p.analysis = true
			}
		}
	}
	return p
}

type groupRule struct {
	name  string
	match func(topicProfile) bool
}

var groupRules = []groupRule{
	{GroupFeature, func(p topicProfile) bool { return p.codeChange && containsAny(p.intent, implementWords) }},
	{GroupBugFix, func(p topicProfile) bool { return p.codeChange && containsAny(p.intent, fixWords) }},
	{GroupAnalysis, func(p topicProfile) bool { return p.analysis && !p.codeChange }},
	{GroupTesting, func(p topicProfile) bool { return containsAny(p.intent, testWords) }},
	{GroupDocumentation, func(p topicProfile) bool { return containsAny(p.intent, documentWords) }},
	{GroupDevelopment, func(topicProfile) bool { return true }},
}

// Group returns the activity group a topic belongs to.
func Group(t topic.Topic) string {
	p := profileOf(t)
	for _, r := range groupRules {
		if r.match(p) {
			return r.name
		}
	}
	return GroupDevelopment
}

// group is the set of topics assigned to one name.
type group struct {
	name   string
	topics []topic.Topic
	steps  int
}

func groupTopics(topics []topic.Topic) []group {
	index := make(map[string]*group)
	for _, t := range topics {
		name := Group(t)
		g, ok := index[name]
		if !ok {
			g = &group{name: name}
			index[name] = g
		}
		g.topics = append(g.topics, t)
		g.steps += len(t.Steps)
	}
	var groups []group
	for _, r := range groupRules {
		if g, ok := index[r.name]; ok {
			groups = append(groups, *g)
		}
	}
	return groups
}

// activities lists one activity per group, most impactful first.
func activities(groups []group, th Thresholds) []Activity {
	out := make([]Activity, 0, len(groups))
	for _, g := range groups {
		out = append(out, Activity{
			Description: activityDescription(g.name, len(g.topics)),
			Category:    g.name,
			Impact:      assessImpact(g.topics, th),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Impact > out[j].Impact })
	return out
}

func activityDescription(category string, count int) string {
	if count == 1 {
		return category
	}
	return fmt.Sprintf("%s (%d tasks)", category, count)
}

func assessImpact(topics []topic.Topic, th Thresholds) Impact {
	if len(topics) == 0 {
		return ImpactLow
	}
	var completed, steps int
	for _, t := range topics {
		if t.Outcome.Kind == topic.OutcomeCompleted {
			completed++
		}
		steps += len(t.Steps)
	}
	avg := float64(steps) / float64(len(topics))
	switch {
	case completed == len(topics) && avg > th.HighImpactAvgSteps:
		return ImpactHigh
	case completed*2 > len(topics):
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// timeDistribution reports each group's share of all steps. With no steps
// every share is zero.
func timeDistribution(groups []group) []Share {
	total := 0
	for _, g := range groups {
		total += g.steps
	}
	out := make([]Share, 0, len(groups))
	for _, g := range groups {
		share := Share{Category: g.name}
		if total > 0 {
			share.Percent = float64(g.steps) / float64(total) * 100
		}
		out = append(out, share)
	}
	return out
}

func primaryFocus(shares []Share) string {
	if len(shares) == 0 {
		return focusFallback
	}
	best := shares[0]
	for _, s := range shares[1:] {
		if s.Percent > best.Percent {
			best = s
		}
	}
	return best.Category
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
