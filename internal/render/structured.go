package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/suykerbuyk/vibe-digest/internal/report"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Write renders r to w in the given format.
func Write(w io.Writer, format string, r *report.Report) error {
	switch format {
	case FormatMarkdown, "":
		_, err := io.WriteString(w, Markdown(r))
		return err
	case FormatJSON:
		return JSON(w, r)
	case FormatYAML:
		return YAML(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
