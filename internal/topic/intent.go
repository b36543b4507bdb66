package topic

import (
	"regexp"
	"strings"
)

const maxIntentRunes = 50

var (
	requestPhrasePattern = regexp.MustCompile(`(?i)\b(?:please|help|can you|could you|would you)\b`)

	intentVerbPattern = regexp.MustCompile(`(?i)\b(?:` +
		`creat(?:e|es|ed|ing)|implement(?:s|ed|ing|ation)?|fix(?:es|ed|ing)?|` +
		`add(?:s|ed|ing)?|updat(?:e|es|ed|ing)|refactor(?:s|ed|ing)?|` +
		`writ(?:e|es|ing)|wrote|written)\b`)

	japaneseIntentPhrases = []string{
		"してください", "して欲しい", "してほしい", "したい", "お願い",
		"作って", "直して", "実装", "追加して", "修正して",
	}
)

// intentSentenceSeps are the sentence terminators used to normalize an intent.
const intentSentenceSeps = ".。!！"

// ExtractIntent reports whether a user turn expresses an actionable request
// and, if so, returns it normalized to its first sentence.
func ExtractIntent(text string) (string, bool) {
	if !hasIntentTrigger(text) {
		return "", false
	}
	return normalizeIntent(text), true
}

func hasIntentTrigger(text string) bool {
	if strings.ContainsAny(text, "?？") {
		return true
	}
	if requestPhrasePattern.MatchString(text) || intentVerbPattern.MatchString(text) {
		return true
	}
	return containsAny(text, japaneseIntentPhrases)
}

func normalizeIntent(text string) string {
	for _, sentence := range splitAny(text, intentSentenceSeps) {
		if s := collapseSpaces(sentence); s != "" {
			return truncateRunes(s, maxIntentRunes)
		}
	}
	return truncateRunes(collapseSpaces(text), maxIntentRunes)
}
