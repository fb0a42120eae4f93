package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/themecss"
)

var rootCmd = &cobra.Command{
	Use:   "themecss",
	Short: "Check and evaluate widget stylesheets",
	Long: `Parse stylesheets with context-scoped variables blocks, report problems,
and compute the styling properties a widget would receive.
Rules apply in document order: a later matching rule always wins.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	f := rootCmd.PersistentFlags()
	f.StringP("stylesheet", "s", "theme.css", "Stylesheet to load")
	f.StringSlice("context", nil, "Context tags selecting variables blocks (default: detected os and appearance)")
	f.String("appearance", "", "Appearance tag added to the detected context: light|dark")
	f.String("log-level", "normal", "Log level: none|normal|debug")
	f.Bool("quiet", false, "Suppress all output (exit code only)")
	f.Bool("color", false, "Force color output")
	f.String("config", defaultConfigPath, "Config file path")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger for a subcommand.
func setup(cmd *cobra.Command) (settings, *zap.Logger, error) {
	if err := loadConfig(cmd); err != nil {
		return settings{}, nil, err
	}
	s := buildSettings()
	level := s.LogLevel
	if s.Quiet {
		level = "none"
	}
	log, err := newLogger(level, s.Color)
	if err != nil {
		return settings{}, nil, err
	}
	return s, log, nil
}

// loadStylesheet parses the configured stylesheet with the configured context.
// Diagnostics are logged as warnings.
func loadStylesheet(s settings, log *zap.Logger) (*themecss.Rules, error) {
	rules, err := themecss.NewParser(log).ParseFile(s.Stylesheet, s.Context)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}
	return rules, nil
}
