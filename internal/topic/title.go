package topic

import "strings"

const (
	maxTitleRunes   = 30
	titleLeadRunes  = 10
	titleTrailRunes = 30
)

var (
	cjkWorkVerbs = []string{"作", "実装", "修正", "追加", "改善", "解決"}

	englishTitleVerbs = []string{
		"create", "implement", "fix", "add", "update", "build", "develop",
		"analyze", "generate", "test", "debug", "refactor", "optimize",
		"setup", "configure", "install", "deploy", "write", "design",
	}
)

// titleRule derives a title from an intent, or reports that it does not apply.
type titleRule func(intent string) (string, bool)

var titleRules = []titleRule{cjkClauseTitle, englishVerbTitle}

// SynthesizeTitle derives a short title from a normalized intent. The result
// never exceeds 30 characters plus an ellipsis.
func SynthesizeTitle(intent string) string {
	for _, rule := range titleRules {
		if title, ok := rule(intent); ok {
			return title
		}
	}
	return truncateRunes(intent, maxTitleRunes)
}

// cjkClauseTitle keeps the first clause of an intent that names a CJK work verb.
func cjkClauseTitle(intent string) (string, bool) {
	if !containsAny(intent, cjkWorkVerbs) {
		return "", false
	}
	clause := strings.TrimSpace(splitAny(intent, "。、\n")[0])
	if clause == "" {
		return "", false
	}
	return truncateRunes(clause, maxTitleRunes), true
}

// englishVerbTitle windows the intent around the first English work verb.
func englishVerbTitle(intent string) (string, bool) {
	runes := []rune(intent)
	lower := lowerRunes(runes)
	for _, verb := range englishTitleVerbs {
		v := []rune(verb)
		pos := indexWordStart(lower, v)
		if pos < 0 {
			continue
		}
		start := max(0, pos-titleLeadRunes)
		end := min(len(runes), pos+len(v)+titleTrailRunes)
		window := string(runes[start:end])
		if i := strings.IndexAny(window, ".!?"); i >= 0 {
			window = window[:i]
		}
		window = strings.TrimSpace(window)
		if window == "" {
			continue
		}
		return truncateRunes(window, maxTitleRunes), true
	}
	return "", false
}
