package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suykerbuyk/vibe-digest/internal/archive"
	"github.com/suykerbuyk/vibe-digest/internal/config"
	"github.com/suykerbuyk/vibe-digest/internal/discover"
	"github.com/suykerbuyk/vibe-digest/internal/enrichment"
	"github.com/suykerbuyk/vibe-digest/internal/render"
	"github.com/suykerbuyk/vibe-digest/internal/report"
	"github.com/suykerbuyk/vibe-digest/internal/topic"
	"github.com/suykerbuyk/vibe-digest/internal/transcript"
	"github.com/suykerbuyk/vibe-digest/internal/watch"
)

var (
	// report flags
	dateFilter report.Filter
	format     string
	outputPath string
	parallel   int
	language   string
	noModel    bool
	watchLogs  bool

	topicsFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Distill a work report from all projects",
	Long: `Reads every project directory under the log dir, segments each
project's conversations into topics and prints a work report.

Without a date flag the report covers today.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var topicsCmd = &cobra.Command{
	Use:   "topics <file.jsonl | session-id>",
	Short: "Print the topics of a single log",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopics,
}

var compressCmd = &cobra.Command{
	Use:   "compress <file.jsonl>",
	Short: "Write a zstd-compressed copy of a log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := archive.Compress(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created: %s\n", dest)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := logDir
		if dir == "" {
			dir = config.DefaultConfig().LogDir
		}
		path, created, err := config.WriteDefault(config.ExpandHome(dir))
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created: %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "exists: %s\n", path)
		}
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&dateFilter.Date, "date", "", "single day (YYYY-MM-DD)")
	f.StringVar(&dateFilter.From, "from", "", "first day of the range (YYYY-MM-DD)")
	f.StringVar(&dateFilter.To, "to", "", "last day of the range (YYYY-MM-DD)")
	f.BoolVar(&dateFilter.Weekly, "weekly", false, "this week, Monday to Sunday")
	f.BoolVar(&dateFilter.Monthly, "monthly", false, "this month")
	f.BoolVar(&dateFilter.All, "all", false, "every logged day")
	f.StringVarP(&format, "format", "f", "", "markdown, json or yaml (overrides config)")
	f.StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	f.IntVarP(&parallel, "parallel", "p", 0, "projects distilled concurrently (overrides config)")
	f.BoolVar(&noModel, "no-model", false, "skip the configured summarizer")
	f.BoolVarP(&watchLogs, "watch", "w", false, "rebuild the report whenever logs change")
	reportCmd.MarkFlagsMutuallyExclusive("date", "from")
	reportCmd.MarkFlagsMutuallyExclusive("date", "to")
	reportCmd.MarkFlagsMutuallyExclusive("weekly", "monthly", "all", "date")

	for _, c := range []*cobra.Command{reportCmd, topicsCmd} {
		c.Flags().StringVar(&language, "lang", "", "step phrase language: en or ja (overrides config)")
	}
	topicsCmd.Flags().StringVarP(&topicsFormat, "format", "f", "json", "json or yaml")

	configCmd.AddCommand(configInitCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if logDir != "" {
		cfg.LogDir = config.ExpandHome(logDir)
	}
	if cmd.Name() == "report" {
		if format != "" {
			cfg.Output.Format = format
		}
		if outputPath != "" {
			cfg.Output.Path = config.ExpandHome(outputPath)
		}
		if cmd.Flags().Changed("parallel") {
			cfg.Processing.Parallel = parallel
		}
	}
	if language != "" {
		cfg.Processing.Language = language
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func topicOptions(cfg config.Config) topic.Options {
	return topic.Options{
		Language:        topic.Language(cfg.Processing.Language),
		PairToolResults: cfg.Processing.PairToolResults,
	}
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := dateFilter.Resolve(time.Now()); err != nil {
		return err
	}

	opts := report.Options{
		LogDir:     cfg.LogDir,
		Parallel:   cfg.Processing.Parallel,
		Topic:      topicOptions(cfg),
		Thresholds: cfg.Thresholds(),
		Logger:     logger,
	}
	if !noModel {
		s, err := enrichment.NewCommand(cfg.Summarizer, cfg.Processing.Language, logger)
		switch {
		case err == nil:
			opts.Summarizer = s
		case !errors.Is(err, enrichment.ErrDisabled):
			return err
		}
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	fs := afero.NewOsFs()
	emit := func(ctx context.Context) error {
		// Resolved per run so a long watch follows the calendar.
		period, err := dateFilter.Resolve(time.Now())
		if err != nil {
			return err
		}
		opts.Range = period
		return writeReport(ctx, cmd, fs, cfg, opts)
	}

	if err := emit(ctx); err != nil {
		return err
	}
	if !watchLogs {
		return nil
	}
	logger.Info("watching for log changes", zap.String("log_dir", cfg.LogDir))
	return watch.Logs(ctx, cfg.LogDir, watch.DefaultQuiet, logger, emit)
}

func writeReport(ctx context.Context, cmd *cobra.Command, fs afero.Fs, cfg config.Config, opts report.Options) error {
	rep, err := report.Run(ctx, fs, opts)
	if err != nil {
		if errors.Is(err, report.ErrNoLogDir) {
			return fmt.Errorf("%w (set log_dir in config or pass --log-dir)", err)
		}
		return err
	}

	if cfg.Output.Path == "" {
		return render.Write(cmd.OutOrStdout(), cfg.Output.Format, rep)
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, cfg.Output.Format, rep); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, cfg.Output.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote: %s\n", cfg.Output.Path)
	}
	return nil
}

func runTopics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	path := args[0]
	if _, err := fs.Stat(path); err != nil {
		found, ferr := discover.FindBySessionID(fs, cfg.LogDir, path)
		if ferr != nil {
			return fmt.Errorf("no log file or session %q", path)
		}
		path = found
	}

	t, err := transcript.ParseFS(fs, path)
	if err != nil {
		return err
	}
	topics := topic.Segment(t.Entries, topicOptions(cfg))

	switch topicsFormat {
	case render.FormatYAML:
		return render.YAML(cmd.OutOrStdout(), topics)
	case render.FormatJSON, "":
		return render.JSON(cmd.OutOrStdout(), topics)
	default:
		return fmt.Errorf("unknown topics format %q (want json or yaml)", topicsFormat)
	}
}
