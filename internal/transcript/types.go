package transcript

import "time"

// Entry represents a single line in a Claude Code JSONL log. Only the fields
// the digest reads are decoded.
type Entry struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`

	// Timestamp is the raw ISO-8601 value. Time holds the parsed form and is
	// zero when the value is missing or unparseable.
	Timestamp string    `json:"timestamp"`
	Time      time.Time `json:"-"`

	Message *Message `json:"message,omitempty"`

	// IsMeta marks system-injected messages (e.g., CLAUDE.md, context reminders).
	IsMeta bool `json:"isMeta,omitempty"`

	CostUSD float64 `json:"costUSD,omitempty"`
}

// HasTime reports whether the entry carried a parseable timestamp.
func (e Entry) HasTime() bool {
	return !e.Time.IsZero()
}

// Message is the inner message object on user/assistant entries.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string or []ContentBlock
}

// ContentBlock represents one block in a content array.
type ContentBlock struct {
	Type      string      `json:"type"`
	Text      string      `json:"text,omitempty"`
	Thinking  string      `json:"thinking,omitempty"`
	ID        string      `json:"id,omitempty"`          // tool_use id
	Name      string      `json:"name,omitempty"`        // tool name
	Input     interface{} `json:"input,omitempty"`       // tool input
	ToolUseID string      `json:"tool_use_id,omitempty"` // tool_result
	Content   interface{} `json:"content,omitempty"`     // tool_result content (string, array or object)
	Output    interface{} `json:"output,omitempty"`      // tool_result payload in older logs
	IsError   bool        `json:"is_error,omitempty"`
}

// Stats holds aggregated statistics for one or more parsed logs.
type Stats struct {
	Sessions          map[string]bool
	UserMessages      int
	AssistantMessages int
	ToolUses          int
	CostUSD           float64
	StartTime         time.Time
	EndTime           time.Time
	ToolCounts        map[string]int
}

// Transcript holds the fully parsed result of a JSONL log.
type Transcript struct {
	Entries []Entry
}
