package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/suykerbuyk/vibe-digest/internal/distill"
)

const appName = "vibe-digest"

// Config holds all vibe-digest configuration.
type Config struct {
	LogDir string `toml:"log_dir"`

	Output     OutputConfig     `toml:"output"`
	Processing ProcessingConfig `toml:"processing"`
	Distill    DistillConfig    `toml:"distill"`
	Summarizer SummarizerConfig `toml:"summarizer"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

type ProcessingConfig struct {
	Parallel        int    `toml:"parallel"`
	Language        string `toml:"language"`
	PairToolResults bool   `toml:"pair_tool_results"`
}

// DistillConfig overrides the distillation rule constants.
type DistillConfig struct {
	AchievementMinSteps int     `toml:"achievement_min_steps"`
	HighImpactAvgSteps  float64 `toml:"high_impact_avg_steps"`
	DedupSimilarity     float64 `toml:"dedup_similarity"`
	MaxAchievements     int     `toml:"max_achievements"`
	MaxNextSteps        int     `toml:"max_next_steps"`
}

// SummarizerConfig describes the optional local command that produces
// model-written project summaries.
type SummarizerConfig struct {
	Enabled        bool     `toml:"enabled"`
	Command        []string `toml:"command"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Limits for processing.parallel.
const (
	MinParallel = 1
	MaxParallel = 10
)

var (
	validFormats   = map[string]bool{"markdown": true, "json": true, "yaml": true}
	validLanguages = map[string]bool{"en": true, "ja": true}
)

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	th := distill.DefaultThresholds()
	return Config{
		LogDir: "~/.claude/projects",
		Output: OutputConfig{
			Format: "markdown",
		},
		Processing: ProcessingConfig{
			Parallel:        4,
			Language:        "en",
			PairToolResults: true,
		},
		Distill: DistillConfig{
			AchievementMinSteps: th.AchievementMinSteps,
			HighImpactAvgSteps:  th.HighImpactAvgSteps,
			DedupSimilarity:     th.DedupSimilarity,
			MaxAchievements:     th.MaxAchievements,
			MaxNextSteps:        th.MaxNextSteps,
		},
		Summarizer: SummarizerConfig{
			Enabled:        false,
			TimeoutSeconds: 60,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	cfg.LogDir = ExpandHome(cfg.LogDir)
	cfg.Output.Path = ExpandHome(cfg.Output.Path)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that flags and files can both set.
func (c Config) Validate() error {
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format %q (want markdown, json or yaml)", c.Output.Format)
	}
	if !validLanguages[c.Processing.Language] {
		return fmt.Errorf("invalid language %q (want en or ja)", c.Processing.Language)
	}
	if c.Processing.Parallel < MinParallel || c.Processing.Parallel > MaxParallel {
		return fmt.Errorf("invalid parallel %d (want %d-%d)", c.Processing.Parallel, MinParallel, MaxParallel)
	}
	if c.Summarizer.Enabled && len(c.Summarizer.Command) == 0 {
		return fmt.Errorf("summarizer enabled without a command")
	}
	return nil
}

// Thresholds merges the [distill] overrides into the stock constants.
// Zero values keep the default.
func (c Config) Thresholds() distill.Thresholds {
	th := distill.DefaultThresholds()
	d := c.Distill
	if d.AchievementMinSteps > 0 {
		th.AchievementMinSteps = d.AchievementMinSteps
	}
	if d.HighImpactAvgSteps > 0 {
		th.HighImpactAvgSteps = d.HighImpactAvgSteps
	}
	if d.DedupSimilarity > 0 {
		th.DedupSimilarity = d.DedupSimilarity
	}
	if d.MaxAchievements > 0 {
		th.MaxAchievements = d.MaxAchievements
	}
	if d.MaxNextSteps > 0 {
		th.MaxNextSteps = d.MaxNextSteps
	}
	return th
}

// Timeout returns the summarizer command timeout.
func (s SummarizerConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, appName, "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	return paths
}

// ExpandHome resolves a leading "~/" against the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
