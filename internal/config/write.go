package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the vibe-digest config directory path.
// Uses $XDG_CONFIG_HOME/vibe-digest if set, otherwise ~/.config/vibe-digest.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// WriteDefault writes a commented default config.toml reading logs from
// logDir. Returns the config file path and whether it was created; an
// existing file is left alone.
func WriteDefault(logDir string) (string, bool, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create config dir: %w", err)
	}

	def := DefaultConfig()
	content := fmt.Sprintf(`# Directory holding one subdirectory of Claude Code logs per project.
log_dir = %q

[output]
# markdown, json or yaml
format = %q
# Empty writes to stdout.
path = ""

[processing]
# Projects distilled concurrently (1-10).
parallel = %d
# Tool-phrase language: en or ja.
language = %q
pair_tool_results = %t

[distill]
achievement_min_steps = %d
high_impact_avg_steps = %.1f
dedup_similarity = %.2f
max_achievements = %d
max_next_steps = %d

[summarizer]
# A local command that reads a prompt on stdin and prints JSON on stdout.
enabled = false
command = []
timeout_seconds = %d
`, CompressHome(logDir), def.Output.Format, def.Processing.Parallel,
		def.Processing.Language, def.Processing.PairToolResults,
		def.Distill.AchievementMinSteps, def.Distill.HighImpactAvgSteps,
		def.Distill.DedupSimilarity, def.Distill.MaxAchievements,
		def.Distill.MaxNextSteps, def.Summarizer.TimeoutSeconds)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", false, fmt.Errorf("write config: %w", err)
	}

	return path, true, nil
}

// CompressHome replaces $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
