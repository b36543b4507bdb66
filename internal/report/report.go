package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suykerbuyk/vibe-digest/internal/discover"
	"github.com/suykerbuyk/vibe-digest/internal/distill"
	"github.com/suykerbuyk/vibe-digest/internal/enrichment"
	"github.com/suykerbuyk/vibe-digest/internal/topic"
	"github.com/suykerbuyk/vibe-digest/internal/transcript"
)

// ErrNoLogDir is returned when the log directory does not exist.
var ErrNoLogDir = errors.New("log directory not found")

// Options controls a report run.
type Options struct {
	LogDir     string
	Range      DateRange
	Parallel   int
	Topic      topic.Options
	Thresholds distill.Thresholds

	// Summarizer, when set, is tried first for every project. Any error
	// falls back to heuristic distillation.
	Summarizer enrichment.Summarizer
	Logger     *zap.Logger
}

// maxToolsListed caps Metrics.Tools.
const maxToolsListed = 5

// Metrics are session totals over every entry inside the date range.
type Metrics struct {
	Sessions int         `json:"sessions" yaml:"sessions"`
	Messages int         `json:"messages" yaml:"messages"`
	CostUSD  float64     `json:"cost_usd" yaml:"cost_usd"`
	ToolUses int         `json:"tool_uses" yaml:"tool_uses"`
	Tools    []ToolCount `json:"tools,omitempty" yaml:"tools,omitempty"`

	// FirstActivity and LastActivity bound the timestamped entries counted.
	FirstActivity time.Time `json:"first_activity,omitzero" yaml:"first_activity,omitempty"`
	LastActivity  time.Time `json:"last_activity,omitzero" yaml:"last_activity,omitempty"`
}

// ToolCount is how often one tool was called.
type ToolCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Report is the distilled result over all projects.
type Report struct {
	Period   string                   `json:"period" yaml:"period"`
	Projects []distill.ProjectSummary `json:"projects" yaml:"projects"`
	Insights string                   `json:"insights" yaml:"insights"`
	Metrics  Metrics                  `json:"metrics" yaml:"metrics"`
}

type projectResult struct {
	summary distill.ProjectSummary
	ok      bool
	stats   transcript.Stats
}

// Run discovers projects under opts.LogDir and distills each one,
// opts.Parallel at a time. Projects appear in discovery order; projects
// without topics in the range are omitted.
func Run(ctx context.Context, fs afero.Fs, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Thresholds == (distill.Thresholds{}) {
		opts.Thresholds = distill.DefaultThresholds()
	}

	if _, err := fs.Stat(opts.LogDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoLogDir, opts.LogDir)
		}
		return nil, fmt.Errorf("stat log dir: %w", err)
	}

	projects, err := discover.Projects(fs, opts.LogDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered projects", zap.Int("count", len(projects)), zap.String("log_dir", opts.LogDir))

	results := make([]projectResult, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallel, 1))
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			res, err := processProject(gctx, fs, p, opts, logger)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Period: opts.Range.Label(), Projects: []distill.ProjectSummary{}}
	var total transcript.Stats
	for _, res := range results {
		total.Merge(res.stats)
		if res.ok {
			rep.Projects = append(rep.Projects, res.summary)
		}
	}
	rep.Insights = distill.Insights(rep.Projects)
	rep.Metrics = Metrics{
		Sessions:      len(total.Sessions),
		Messages:      total.Messages(),
		CostUSD:       total.CostUSD,
		ToolUses:      total.ToolUses,
		Tools:         topTools(total.ToolCounts, maxToolsListed),
		FirstActivity: total.StartTime,
		LastActivity:  total.EndTime,
	}
	return rep, nil
}

// topTools returns the n most used tools, ties broken by name.
func topTools(counts map[string]int, n int) []ToolCount {
	tools := make([]ToolCount, 0, len(counts))
	for name, c := range counts {
		tools = append(tools, ToolCount{Name: name, Count: c})
	}
	sort.Slice(tools, func(i, j int) bool {
		if tools[i].Count != tools[j].Count {
			return tools[i].Count > tools[j].Count
		}
		return tools[i].Name < tools[j].Name
	})
	if len(tools) > n {
		tools = tools[:n]
	}
	return tools
}

func processProject(ctx context.Context, fs afero.Fs, p discover.Project, opts Options, logger *zap.Logger) (projectResult, error) {
	if err := ctx.Err(); err != nil {
		return projectResult{}, err
	}

	log := logger.With(zap.String("project", p.Name))
	topics, stats := loadTopics(fs, p, opts, log)

	var res projectResult
	res.stats = stats
	if len(topics) == 0 {
		return res, nil
	}

	if opts.Summarizer != nil {
		summary, err := opts.Summarizer.Summarize(ctx, enrichment.Flatten(p.Name, topics))
		if err == nil {
			res.summary, res.ok = summary, true
			return res, nil
		}
		if ctx.Err() != nil {
			return projectResult{}, ctx.Err()
		}
		log.Warn("model summary failed, using heuristic distillation", zap.Error(err))
	}

	res.summary, res.ok = distill.Distill(p.Name, topics, opts.Thresholds)
	log.Debug("distilled project", zap.Int("topics", len(topics)), zap.String("source", res.summary.Source))
	return res, nil
}

// loadTopics replays every in-range entry of the project's logs through one
// conversation flow. Unreadable logs are skipped with a warning.
func loadTopics(fs afero.Fs, p discover.Project, opts Options, log *zap.Logger) ([]topic.Topic, transcript.Stats) {
	flow := topic.NewFlow(opts.Topic)
	var stats transcript.Stats

	for _, path := range p.Logs {
		t, err := transcript.ParseFS(fs, path)
		if err != nil {
			log.Warn("skipping unreadable log", zap.String("path", path), zap.Error(err))
			continue
		}
		for _, e := range t.Entries {
			if !e.HasTime() || !opts.Range.Contains(e.Time) {
				continue
			}
			stats.Add(e)
			flow.Observe(e)
		}
	}

	return flow.Finalize(), stats
}
