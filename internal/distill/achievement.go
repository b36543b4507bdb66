package distill

import (
	"fmt"
	"sort"
	"strings"

	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

// Achievement impact tiers, lowest first.
const (
	TierMinor       = "Minor improvement"
	TierModerate    = "Moderate enhancement"
	TierSignificant = "Significant advancement"
)

var tierRank = map[string]int{TierMinor: 0, TierModerate: 1, TierSignificant: 2}

func achievements(topics []topic.Topic, th Thresholds) []Achievement {
	var out []Achievement
	for _, t := range topics {
		if t.Outcome.Kind != topic.OutcomeCompleted || len(t.Steps) <= th.AchievementMinSteps {
			continue
		}
		out = append(out, Achievement{
			Description: achievementDescription(t, th),
			Impact:      achievementTier(len(t.Steps), th),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return tierRank[out[i].Impact] > tierRank[out[j].Impact]
	})
	out = Dedup(out, th.DedupSimilarity)
	if len(out) > th.MaxAchievements {
		out = out[:th.MaxAchievements]
	}
	return out
}

func achievementDescription(t topic.Topic, th Thresholds) string {
	intent := simplifyIntent(t.UserIntent, th.IntentWords)
	var actions []string
	seen := make(map[string]bool)
	for _, s := range t.Steps {
		if s.Result.Status != topic.StepSuccess || seen[s.Description] {
			continue
		}
		seen[s.Description] = true
		actions = append(actions, s.Description)
	}
	switch len(actions) {
	case 0:
		return intent
	case 1:
		return intent + " through " + strings.ToLower(actions[0])
	default:
		return fmt.Sprintf("%s through %d actions", intent, len(actions))
	}
}

func achievementTier(steps int, th Thresholds) string {
	switch {
	case steps >= th.SignificantSteps:
		return TierSignificant
	case steps >= th.ModerateSteps:
		return TierModerate
	default:
		return TierMinor
	}
}

// Dedup drops every achievement whose description is at least threshold
// similar to one already kept. Order is preserved.
func Dedup(in []Achievement, threshold float64) []Achievement {
	var kept []Achievement
	var keptTokens []map[string]bool
	for _, a := range in {
		tokens := tokenSet(a.Description)
		dup := false
		for _, k := range keptTokens {
			if jaccard(tokens, k) >= threshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		kept = append(kept, a)
		keptTokens = append(keptTokens, tokens)
	}
	return kept
}

// Similarity is the lowercase token overlap (intersection over union) of two
// descriptions.
func Similarity(a, b string) float64 {
	return jaccard(tokenSet(a), tokenSet(b))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// simplifyIntent keeps the first n words of an intent.
func simplifyIntent(intent string, n int) string {
	words := strings.Fields(intent)
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
