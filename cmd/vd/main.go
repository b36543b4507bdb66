package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

var (
	// Global flags
	verbose bool
	quiet   bool
	logDir  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vd",
	Short: "vibe-digest: work reports from Claude Code logs",
	Long: `vd reads Claude Code conversation logs, splits each project's history
into topics, and distills them into a work report with activities,
achievements, blockers and next steps.

Configuration: ~/.config/vibe-digest/config.toml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		switch {
		case verbose:
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		case quiet:
			config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vd v%s (vibe-digest)\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Claude Code projects directory (overrides config)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(reportCmd, topicsCmd, compressCmd, configCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vd: %v\n", err)
		os.Exit(1)
	}
}
