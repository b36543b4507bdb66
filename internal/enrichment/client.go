package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suykerbuyk/vibe-digest/internal/config"
	"github.com/suykerbuyk/vibe-digest/internal/distill"
)

// ErrDisabled is returned by NewCommand when no summarizer is configured.
var ErrDisabled = errors.New("summarizer disabled")

const fallbackFocus = "General Development"

// CommandSummarizer runs a local command with the prompt on stdin and reads
// a JSON summary from stdout.
type CommandSummarizer struct {
	Command  []string
	Timeout  time.Duration
	Language string
	Logger   *zap.Logger
}

// NewCommand builds a summarizer from config. It returns ErrDisabled when
// the summarizer is off or has no command.
func NewCommand(cfg config.SummarizerConfig, lang string, logger *zap.Logger) (*CommandSummarizer, error) {
	if !cfg.Enabled || len(cfg.Command) == 0 {
		return nil, ErrDisabled
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandSummarizer{
		Command:  cfg.Command,
		Timeout:  cfg.Timeout(),
		Language: lang,
		Logger:   logger,
	}, nil
}

// Summarize implements Summarizer.
func (c *CommandSummarizer) Summarize(ctx context.Context, data ConversationData) (distill.ProjectSummary, error) {
	if len(c.Command) == 0 {
		return distill.ProjectSummary{}, ErrDisabled
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Command[0], c.Command[1:]...)
	cmd.Stdin = strings.NewReader(BuildPrompt(data, c.Language))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	c.logger().Debug("summarizer finished",
		zap.String("project", data.Project),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("stdout_bytes", stdout.Len()))
	if err != nil {
		if ctx.Err() != nil {
			return distill.ProjectSummary{}, fmt.Errorf("run summarizer: %w", ctx.Err())
		}
		return distill.ProjectSummary{}, fmt.Errorf("run summarizer: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseResponse(data.Project, stdout.Bytes())
}

func (c *CommandSummarizer) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func parseResponse(project string, body []byte) (distill.ProjectSummary, error) {
	content := strings.TrimSpace(string(body))

	var envelope chatResponse
	if err := json.Unmarshal([]byte(content), &envelope); err == nil {
		if envelope.Error != nil {
			return distill.ProjectSummary{}, fmt.Errorf("API error: %s", envelope.Error.Message)
		}
		if len(envelope.Choices) > 0 {
			content = strings.TrimSpace(envelope.Choices[0].Message.Content)
		}
	}

	var a analysisJSON
	if err := json.Unmarshal([]byte(stripFences(content)), &a); err != nil {
		return distill.ProjectSummary{}, fmt.Errorf("unmarshal summary JSON: %w", err)
	}
	if strings.TrimSpace(a.ProjectTitle) == "" {
		return distill.ProjectSummary{}, fmt.Errorf("summary JSON missing project_title")
	}

	return toSummary(project, a), nil
}

// stripFences removes a surrounding ```json ... ``` block.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}

func toSummary(project string, a analysisJSON) distill.ProjectSummary {
	s := distill.ProjectSummary{
		Project:   project,
		Title:     a.ProjectTitle,
		Purpose:   a.ProjectPurpose,
		NextSteps: []string{},
		Source:    distill.SourceModel,
	}

	s.Work.PrimaryFocus = fallbackFocus
	if len(a.MainActivities) > 0 && a.MainActivities[0].Category != "" {
		s.Work.PrimaryFocus = a.MainActivities[0].Category
	}
	for _, act := range a.MainActivities {
		s.Work.Activities = append(s.Work.Activities, distill.Activity{
			Description: act.Description,
			Category:    act.Category,
			Impact:      parseImpact(act.Impact),
		})
	}
	for _, desc := range a.Achievements {
		s.Achievements = append(s.Achievements, distill.Achievement{
			Description: desc,
			Impact:      "Completed successfully",
		})
	}
	for _, issue := range a.Challenges {
		s.Blockers = append(s.Blockers, distill.Blocker{
			Issue:    issue,
			Severity: distill.SeverityMajor,
			Status:   distill.InProgress,
		})
	}
	return s
}

func parseImpact(text string) distill.Impact {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "critical"), strings.Contains(lower, "major"):
		return distill.ImpactHigh
	case strings.Contains(lower, "moderate"):
		return distill.ImpactMedium
	default:
		return distill.ImpactLow
	}
}
