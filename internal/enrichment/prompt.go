package enrichment

import (
	"fmt"
	"strings"
)

const (
	maxUserChars   = 12000
	maxActionChars = 12000
	maxActions     = 200
)

const responseSchema = `{
  "project_title": "A meaningful project title (not a file path)",
  "project_purpose": "The main purpose of this project",
  "main_activities": [
    {
      "category": "Development/Testing/Configuration/Documentation/Bug Fixes/etc",
      "description": "What was actually done (human-readable)",
      "impact": "critical, major, moderate or minor",
      "technical_details": "Optional technical context"
    }
  ],
  "achievements": ["List of concrete accomplishments"],
  "challenges": ["List of issues or blockers encountered"],
  "insights": "Key insights or patterns noticed"
}`

const systemPrompt = `You analyze Claude Code conversation logs for one software project and produce a structured JSON work summary.

Respond with valid JSON only. No markdown, no explanation. Schema:
` + responseSchema + `

Rules:
- Merge activities of the same category into a single entry.
- achievements: concrete outcomes only, past tense.
- challenges: problems that blocked or slowed the work. Omit if none.`

var languageInstructions = map[string]string{
	"en": "Use English for all text fields.",
	"ja": "すべてのテキストフィールドは日本語で記述してください。",
}

func languageInstruction(lang string) string {
	if s, ok := languageInstructions[lang]; ok {
		return s
	}
	return languageInstructions["en"]
}

// BuildPrompt renders the full prompt sent to the summarizer command.
func BuildPrompt(data ConversationData, lang string) string {
	var b strings.Builder

	b.WriteString(systemPrompt)
	b.WriteString("\n- ")
	b.WriteString(languageInstruction(lang))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("## Project\n%s\n", data.Project))
	if len(data.Timestamps) > 0 {
		b.WriteString(fmt.Sprintf("- Topics: %d\n", len(data.UserMessages)))
		b.WriteString(fmt.Sprintf("- First: %s\n", data.Timestamps[0]))
		b.WriteString(fmt.Sprintf("- Last: %s\n", data.Timestamps[len(data.Timestamps)-1]))
	}

	b.WriteString("\n## User Requests\n")
	b.WriteString(truncate(strings.Join(data.UserMessages, "\n---\n"), maxUserChars))

	actions := data.AssistantActions
	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	b.WriteString("\n\n## Assistant Actions\n")
	b.WriteString(truncate(strings.Join(actions, "\n"), maxActionChars))
	if len(data.AssistantActions) > maxActions {
		b.WriteString(fmt.Sprintf("\n... and %d more", len(data.AssistantActions)-maxActions))
	}
	b.WriteString("\n")

	return b.String()
}

func truncate(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	// Try to break at a newline before the limit
	truncated := strings.ToValidUTF8(text[:maxChars], "")
	if idx := strings.LastIndex(truncated, "\n"); idx > maxChars/2 {
		truncated = truncated[:idx]
	}

	return truncated + "\n[...truncated]"
}
