package distill

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

const (
	purposeAnalytics = "Building analytics and reporting capabilities"
	purposeUI        = "Developing user interface components"
	purposeGeneral   = "Software development and improvement"
	purposeEmpty     = "Project development and maintenance"

	themeAnalytics = "Analytics & Reporting"
	themeUI        = "UI Development"
	themeBugFix    = "Bug Fixes & Improvements"
	themeFeature   = "Feature Development"
	themeEmpty     = "Development Work"

	purposeIntents = 3
)

var (
	reportingWords = []string{"report", "analy", "レポート", "分析", "集計"}
	uiWords        = []string{"display", "interface", "画面", "表示"}
	uiPattern      = regexp.MustCompile(`\bUI\b`)

	// Tie-break order for the main theme.
	themeOrder = []string{themeAnalytics, themeUI, themeBugFix, themeFeature}

	// Path components that never name a project.
	genericPathParts = map[string]bool{"": true, "~": true, "home": true, "projects": true}
)

func mentionsReporting(intent string) bool {
	return containsAny(strings.ToLower(intent), reportingWords)
}

func mentionsUI(intent string) bool {
	return uiPattern.MatchString(intent) || containsAny(strings.ToLower(intent), uiWords)
}

func inferPurpose(topics []topic.Topic) string {
	if len(topics) == 0 {
		return purposeEmpty
	}
	initial := topics[:min(len(topics), purposeIntents)]
	for _, t := range initial {
		if mentionsReporting(t.UserIntent) {
			return purposeAnalytics
		}
	}
	for _, t := range initial {
		if mentionsUI(t.UserIntent) {
			return purposeUI
		}
	}
	return purposeGeneral
}

func themeOf(intent string) string {
	switch {
	case mentionsReporting(intent):
		return themeAnalytics
	case mentionsUI(intent):
		return themeUI
	case containsAny(strings.ToLower(intent), fixWords):
		return themeBugFix
	default:
		return themeFeature
	}
}

func mainTheme(topics []topic.Topic) string {
	if len(topics) == 0 {
		return themeEmpty
	}
	counts := make(map[string]int)
	for _, t := range topics {
		counts[themeOf(t.UserIntent)]++
	}
	best := themeOrder[0]
	for _, theme := range themeOrder[1:] {
		if counts[theme] > counts[best] {
			best = theme
		}
	}
	return best
}

// Title builds "<Readable Name> - <Main Theme>" for a project path.
func Title(project string, topics []topic.Topic) string {
	return ProjectName(project) + " - " + mainTheme(topics)
}

// ProjectName turns the last meaningful component of a project path into a
// readable name: "vibe-digest" becomes "Vibe Digest", short words are upper-cased.
func ProjectName(project string) string {
	parts := strings.FieldsFunc(project, func(r rune) bool { return r == '/' || r == '\\' })
	name := "Project"
	for i := len(parts) - 1; i >= 0; i-- {
		if !genericPathParts[parts[i]] {
			name = parts[i]
			break
		}
	}
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	for i, w := range words {
		words[i] = formatWord(w)
	}
	if len(words) == 0 {
		return "Project"
	}
	return strings.Join(words, " ")
}

func formatWord(w string) string {
	if utf8.RuneCountInString(w) <= 3 && allLetters(w) {
		return strings.ToUpper(w)
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}

func allLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
