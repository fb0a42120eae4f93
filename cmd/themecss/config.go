package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/internal/scan"
)

const defaultConfigPath = ".themecss.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (THEMECSS_* prefix)
	if err := k.Load(env.Provider("THEMECSS_", ".", func(s string) string {
		// THEMECSS_CHECK_STRICT -> check.strict
		// THEMECSS_STYLESHEET -> stylesheet
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "THEMECSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// settings is the resolved configuration shared by all subcommands.
type settings struct {
	Stylesheet   string
	Context      []string
	LogLevel     string
	Color        bool
	Quiet        bool
	CheckPaths   []string
	Strict       bool
	PrintLines   bool
	OutputFormat themecss.OutputFormat
}

// buildSettings constructs the resolved settings from koanf state.
func buildSettings() settings {
	s := settings{
		Stylesheet:   getStringWithFallback("stylesheet", "stylesheet", "theme.css"),
		LogLevel:     getStringWithFallback("log-level", "log-level", "normal"),
		Color:        getBoolWithFallback("color", "color", false),
		Quiet:        getBoolWithFallback("quiet", "quiet", false),
		Strict:       getBoolWithFallback("strict", "check.strict", false),
		PrintLines:   getBoolWithFallback("print-lines", "check.print-lines", true),
		OutputFormat: themecss.DetermineOutputFormat(getStringWithFallback("output-format", "solve.output-format", "text")),
	}

	// An explicit context replaces the detected system context
	if ctx := getStringsWithFallback("context", "context", nil); len(ctx) > 0 {
		s.Context = ctx
	} else {
		s.Context = themecss.SystemContext(getStringWithFallback("appearance", "appearance", ""))
	}

	s.CheckPaths = getStringsWithFallback("paths", "check.paths", scan.DefaultPatterns)

	return s
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
// Environment values arrive as a single string and are split on commas.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	for _, key := range []string{flagKey, configKey} {
		if !k.Exists(key) {
			continue
		}
		if v := k.Strings(key); len(v) > 0 {
			return splitList(v)
		}
		if v := k.String(key); v != "" {
			return splitList([]string{v})
		}
	}
	return defaultVal
}

// splitList splits comma-separated entries and drops empty ones.
func splitList(values []string) []string {
	var result []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
