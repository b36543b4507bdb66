package sanitize

import (
	"regexp"
	"strings"
)

// Wrapper tags Claude Code puts around slash commands, shell escapes and
// hook output. Their bodies are kept.
var wrapperTagPattern = regexp.MustCompile(
	`</?(?:command-(?:name|message|args|output)|local-command-(?:stdout|stderr)|` +
		`bash-(?:input|stdout|stderr)|user-prompt-submit-hook|task-(?:id|notification)|` +
		`persisted-output|tool-use-id|skill-name|plugin-id)(?:\s[^>]*)?/?>`,
)

// Injected context whose body is never user-authored.
var injectedBlockPattern = regexp.MustCompile(
	`(?s)<(?:system-reminder|local-command-caveat|thinking)(?:\s[^>]*)?>.*?</(?:system-reminder|local-command-caveat|thinking)>`,
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// Clean prepares user text for intent detection: injected blocks are dropped
// with their bodies, wrapper tags and terminal escapes are removed, and the
// result is trimmed.
func Clean(text string) string {
	text = injectedBlockPattern.ReplaceAllString(text, "")
	text = ansiPattern.ReplaceAllString(text, "")
	text = wrapperTagPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
