// Package main provides the CLI entrypoint for flashbar.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/flashbar/internal/config"
	"github.com/jmylchreest/flashbar/internal/feed"
	"github.com/jmylchreest/flashbar/internal/tui"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// devBuild is "true" in development builds; it lowers the admission
	// threshold for dashboard-origin events from Info to Debug.
	devBuild = "false"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		demo       bool
		dev        bool
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "flashbar",
	Short: "Transient notification bar for terminal event streams",
	Long: `flashbar turns a stream of log/status events into a single transient
notification bar: the most severe recent message is shown for a short display
window, less urgent chatter is dropped, and the bar decays to an idle or tip
message when nothing is pending.

Pipe JSON lines ({"content": "...", "severity": "error"}) or plain text into
flashbar, or run with --demo to watch a synthetic feed.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/flashbar/config.toml)")

	rootCmd.Flags().BoolVar(&globalOpts.demo, "demo", false,
		"Feed the bar from a synthetic event generator instead of stdin")
	rootCmd.Flags().BoolVar(&globalOpts.dev, "dev", devBuild == "true",
		"Admit dashboard-origin events at Debug instead of Info")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// runTUI launches the bar with the configured feed sources.
func runTUI(cmd *cobra.Command, args []string) error {
	broker := feed.NewBroker()
	defer broker.Close()

	var sources []feed.Source
	switch {
	case globalOpts.demo:
		sources = append(sources, feed.NewGenerator(broker, 0))
	case stdinIsPipe():
		// BubbleTea falls back to /dev/tty for key input when stdin is a
		// pipe, so the feed and the keyboard do not fight over it.
		sources = append(sources, feed.NewStdinSource(broker))
	default:
		logger.Debug("no feed attached; bar will stay idle")
	}

	configPath := globalOpts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}

	return tui.Run(tui.RunOptions{
		Config:     cfg,
		ConfigPath: configPath,
		Broker:     broker,
		Sources:    sources,
		DevBuild:   globalOpts.dev,
	})
}

// stdinIsPipe reports whether stdin carries piped data rather than a terminal.
func stdinIsPipe() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
