package render

import (
	"fmt"
	"strings"

	"github.com/suykerbuyk/vibe-digest/internal/distill"
	"github.com/suykerbuyk/vibe-digest/internal/report"
)

// Markdown renders a full work report as a markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	// Frontmatter
	b.WriteString("---\n")
	b.WriteString("type: work-report\n")
	b.WriteString(fmt.Sprintf("period: \"%s\"\n", escapeYAML(r.Period)))
	b.WriteString(fmt.Sprintf("projects: %d\n", len(r.Projects)))
	b.WriteString(fmt.Sprintf("sessions: %d\n", r.Metrics.Sessions))
	b.WriteString(fmt.Sprintf("messages: %d\n", r.Metrics.Messages))
	b.WriteString(fmt.Sprintf("cost_usd: %.2f\n", r.Metrics.CostUSD))
	b.WriteString(fmt.Sprintf("tool_uses: %d\n", r.Metrics.ToolUses))
	b.WriteString("---\n\n")

	b.WriteString(fmt.Sprintf("# Work Report: %s\n\n", r.Period))

	if r.Insights != "" {
		b.WriteString("## Overview\n\n")
		b.WriteString(r.Insights + "\n\n")
	}

	b.WriteString("## Metrics\n\n")
	b.WriteString(fmt.Sprintf("- Sessions: %d\n", r.Metrics.Sessions))
	b.WriteString(fmt.Sprintf("- Messages: %d\n", r.Metrics.Messages))
	b.WriteString(fmt.Sprintf("- Cost: $%.2f\n", r.Metrics.CostUSD))
	writeToolUses(&b, r.Metrics)
	if m := r.Metrics; !m.FirstActivity.IsZero() {
		b.WriteString(fmt.Sprintf("- Active: %s to %s\n",
			m.FirstActivity.Format(activityLayout), m.LastActivity.Format(activityLayout)))
	}
	b.WriteString("\n")

	if len(r.Projects) == 0 {
		b.WriteString("_No activity in this period._\n")
		return b.String()
	}

	for _, p := range r.Projects {
		writeProject(&b, p)
	}

	return b.String()
}

const activityLayout = "2006-01-02 15:04 MST"

func writeToolUses(b *strings.Builder, m report.Metrics) {
	b.WriteString(fmt.Sprintf("- Tool uses: %d", m.ToolUses))
	if len(m.Tools) > 0 {
		names := make([]string, len(m.Tools))
		for i, t := range m.Tools {
			names[i] = fmt.Sprintf("%s %d", t.Name, t.Count)
		}
		b.WriteString(" (" + strings.Join(names, ", ") + ")")
	}
	b.WriteString("\n")
}

func writeProject(b *strings.Builder, p distill.ProjectSummary) {
	b.WriteString(fmt.Sprintf("## %s\n\n", p.Title))
	b.WriteString(fmt.Sprintf("`%s`", p.Project))
	if p.Source == distill.SourceModel {
		b.WriteString(" (model summary)")
	}
	b.WriteString("\n\n")

	if p.Purpose != "" {
		b.WriteString(fmt.Sprintf("**Purpose:** %s\n\n", p.Purpose))
	}
	if p.Work.PrimaryFocus != "" {
		b.WriteString(fmt.Sprintf("**Primary focus:** %s\n\n", p.Work.PrimaryFocus))
	}

	if len(p.Work.Activities) > 0 {
		b.WriteString("### Activities\n\n")
		for _, a := range p.Work.Activities {
			b.WriteString(fmt.Sprintf("- **%s** (%s impact): %s\n", a.Category, a.Impact, a.Description))
		}
		b.WriteString("\n")
	}

	if len(p.Work.TimeDistribution) > 0 {
		b.WriteString("### Time Distribution\n\n")
		b.WriteString("| Category | Share |\n")
		b.WriteString("|----------|-------|\n")
		for _, s := range p.Work.TimeDistribution {
			b.WriteString(fmt.Sprintf("| %s | %.1f%% |\n", s.Category, s.Percent))
		}
		b.WriteString("\n")
	}

	if len(p.Achievements) > 0 {
		b.WriteString("### Key Achievements\n\n")
		for _, a := range p.Achievements {
			if a.Impact != "" {
				b.WriteString(fmt.Sprintf("- %s (%s)\n", a.Description, a.Impact))
			} else {
				b.WriteString(fmt.Sprintf("- %s\n", a.Description))
			}
		}
		b.WriteString("\n")
	}

	if len(p.Blockers) > 0 {
		b.WriteString("### Blockers\n\n")
		for _, bl := range p.Blockers {
			b.WriteString(fmt.Sprintf("- [%s] %s (%s)\n", bl.Severity, bl.Issue, bl.Status))
		}
		b.WriteString("\n")
	}

	if len(p.NextSteps) > 0 {
		b.WriteString("### Next Steps\n\n")
		for _, s := range p.NextSteps {
			b.WriteString(fmt.Sprintf("- [ ] %s\n", s))
		}
		b.WriteString("\n")
	}
}

func escapeYAML(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
