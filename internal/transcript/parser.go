package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/suykerbuyk/vibe-digest/internal/archive"
	"github.com/suykerbuyk/vibe-digest/internal/sanitize"
)

// ParseFile reads and parses a Claude Code JSONL log file. Files ending in
// .jsonl.zst are decompressed transparently.
func ParseFile(path string) (*Transcript, error) {
	return ParseFS(afero.NewOsFs(), path)
}

// ParseFS is ParseFile on an arbitrary filesystem.
func ParseFS(fs afero.Fs, path string) (*Transcript, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	r, err := archive.Reader(f, path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer r.Close()

	return Parse(r)
}

// Parse reads a JSONL log from a reader.
func Parse(r io.Reader) (*Transcript, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// Skip unparseable lines rather than failing the whole transcript
			continue
		}

		// Skip non-conversation types
		if entry.Type == "file-history-snapshot" || entry.Type == "progress" {
			continue
		}

		entry.Time = ParseTimestamp(entry.Timestamp)
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}

	return &Transcript{Entries: entries}, nil
}

// ParseTimestamp parses an ISO-8601 timestamp, returning the zero time when
// the value is empty or malformed.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

// ContentBlocks extracts typed content blocks from a message.
// Handles both string content and array content.
func ContentBlocks(msg *Message) []ContentBlock {
	if msg == nil {
		return nil
	}

	switch c := msg.Content.(type) {
	case string:
		return []ContentBlock{{Type: "text", Text: c}}
	case []ContentBlock:
		return c
	case []interface{}:
		var blocks []ContentBlock
		for _, item := range c {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			b, err := json.Marshal(m)
			if err != nil {
				continue
			}
			var block ContentBlock
			if err := json.Unmarshal(b, &block); err != nil {
				continue
			}
			blocks = append(blocks, block)
		}
		return blocks
	}
	return nil
}

// ToolUses extracts all tool_use blocks from a message.
func ToolUses(msg *Message) []ContentBlock {
	return blocksOfType(msg, "tool_use")
}

// ToolResults extracts all tool_result blocks from a message.
func ToolResults(msg *Message) []ContentBlock {
	return blocksOfType(msg, "tool_result")
}

func blocksOfType(msg *Message, typ string) []ContentBlock {
	var out []ContentBlock
	for _, b := range ContentBlocks(msg) {
		if b.Type == typ {
			out = append(out, b)
		}
	}
	return out
}

// UserText returns the user-authored text of an entry: plain string content or
// the first text block of an array, with Claude Code wrapper tags removed.
// Tool-result-only and meta entries yield "".
func UserText(e Entry) string {
	if e.Message == nil || e.IsMeta {
		return ""
	}
	var text string
	if s, ok := e.Message.Content.(string); ok {
		text = s
	} else {
		for _, b := range ContentBlocks(e.Message) {
			if b.Type == "text" && b.Text != "" {
				text = b.Text
				break
			}
		}
	}
	text = sanitize.Clean(text)
	if isNoise(strings.ToLower(text)) {
		return ""
	}
	return text
}

// isNoise detects injected messages that never carry a user request.
func isNoise(lower string) bool {
	if strings.HasPrefix(lower, "/") {
		return true
	}
	if strings.HasPrefix(lower, "caveat:") {
		return true
	}
	return false
}
