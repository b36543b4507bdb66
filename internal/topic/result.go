package topic

import (
	"strings"

	"github.com/suykerbuyk/vibe-digest/internal/transcript"
)

const (
	resultDone    = "done"
	resultGeneric = "an error occurred"
)

var failureMarkers = []string{"error", "Error", "failed", "Failed"}

// ClassifyResult turns a tool_result block into a step verdict. The payload is
// the block's content, falling back to its output field.
func ClassifyResult(b transcript.ContentBlock) StepResult {
	payload := b.Content
	if payload == nil {
		payload = b.Output
	}
	res := classifyPayload(payload)
	if b.IsError && res.Status != StepFailed {
		if line := firstLine(payloadText(payload)); line != "" {
			return Failed(line)
		}
		return Failed(resultGeneric)
	}
	return res
}

func classifyPayload(payload interface{}) StepResult {
	switch v := payload.(type) {
	case string:
		return classifyText(v)
	case []interface{}:
		if text := payloadText(v); text != "" {
			return classifyText(text)
		}
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok && hasErrorKey(m) {
				return Failed(resultGeneric)
			}
		}
	case map[string]interface{}:
		if hasErrorKey(v) {
			return Failed(resultGeneric)
		}
	}
	return Success(resultDone)
}

func classifyText(text string) StepResult {
	if !containsAny(text, failureMarkers) {
		return Success(resultDone)
	}
	for _, line := range strings.Split(text, "\n") {
		if containsAny(line, failureMarkers) {
			return Failed(strings.TrimSpace(line))
		}
	}
	return Failed(resultGeneric)
}

// payloadText flattens a string or an array of text blocks.
func payloadText(payload interface{}) string {
	switch v := payload.(type) {
	case string:
		return v
	case []interface{}:
		var parts []string
		for _, item := range v {
			switch it := item.(type) {
			case string:
				parts = append(parts, it)
			case map[string]interface{}:
				if s, ok := it["text"].(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func hasErrorKey(m map[string]interface{}) bool {
	_, ok := m["error"]
	return ok
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
