package topic

import (
	"strings"
	"unicode"
)

const ellipsis = "..."

// truncateRunes cuts s to max characters and appends an ellipsis when
// anything was dropped. Trailing punctuation is kept as-is.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}

func runeLen(s string) int {
	return len([]rune(s))
}

// splitAny splits s on every rune in seps, keeping empty fields.
func splitAny(s string, seps string) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if strings.ContainsRune(seps, r) {
			parts = append(parts, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(parts, s[start:])
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func lowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexWordStart returns the rune index of the first occurrence of needle in
// hay that begins a word, or -1.
func indexWordStart(hay, needle []rune) int {
	for i := 0; i+len(needle) <= len(hay); i++ {
		if i > 0 && isWordRune(hay[i-1]) {
			continue
		}
		match := true
		for j, r := range needle {
			if hay[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
