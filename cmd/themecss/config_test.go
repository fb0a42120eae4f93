package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/internal/scan"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".themecss.yaml")
	configContent := `
stylesheet: styles/app.css
context: [macos, dark]
log-level: debug

check:
  strict: true
  paths:
    - "styles/**/*.css"

solve:
  output-format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "styles/app.css", k.String("stylesheet"))
	assert.Equal(t, "debug", k.String("log-level"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, "json", k.String("solve.output-format"))

	s := buildSettings()
	assert.Equal(t, "styles/app.css", s.Stylesheet)
	assert.Equal(t, []string{"macos", "dark"}, s.Context)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Strict)
	assert.Equal(t, []string{"styles/**/*.css"}, s.CheckPaths)
	assert.Equal(t, themecss.OutputJSON, s.OutputFormat)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.themecss.yaml"))

	s := buildSettings()
	assert.Equal(t, "theme.css", s.Stylesheet)
	assert.Equal(t, themecss.SystemContext(""), s.Context)
	assert.Equal(t, "normal", s.LogLevel)
	assert.False(t, s.Strict)
	assert.True(t, s.PrintLines)
	assert.Equal(t, scan.DefaultPatterns, s.CheckPaths)
	assert.Equal(t, themecss.OutputText, s.OutputFormat)
}

func TestAppearanceExtendsSystemContext(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".themecss.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("appearance: dark\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, []string{themecss.OSName(), themecss.Dark}, buildSettings().Context)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".themecss.yaml")
	configContent := `
stylesheet: from-file.css
check:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("THEMECSS_STYLESHEET", "from-env.css")
	t.Setenv("THEMECSS_CHECK_STRICT", "true")
	t.Setenv("THEMECSS_CONTEXT", "linux, light")

	require.NoError(t, loadConfigFromPath(configPath))

	s := buildSettings()
	assert.Equal(t, "from-env.css", s.Stylesheet)
	assert.True(t, s.Strict)
	assert.Equal(t, []string{"linux", "light"}, s.Context)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(defaultConfigPath, []byte("stylesheet: from-file.css\ncheck:\n  strict: true\n"), 0644))

	cmd := checkCmd
	require.NoError(t, cmd.ParseFlags([]string{"--print-lines=false"}))
	require.NoError(t, loadConfig(cmd))

	s := buildSettings()
	assert.Equal(t, "from-file.css", s.Stylesheet)
	assert.True(t, s.Strict, "unset flags do not mask the config file")
	assert.False(t, s.PrintLines)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "single", input: []string{"macos"}, want: []string{"macos"}},
		{name: "comma separated", input: []string{"macos, dark"}, want: []string{"macos", "dark"}},
		{name: "empty entries", input: []string{"", "a,,b", " "}, want: []string{"a", "b"}},
		{name: "nothing", input: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.input))
		})
	}
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(defaultConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stylesheet: theme.css")
	assert.Contains(t, string(data), "check:")
	assert.Contains(t, string(data), "solve:")

	// The generated file loads cleanly
	resetKoanf()
	require.NoError(t, loadConfigFromPath(defaultConfigPath))
	s := buildSettings()
	assert.Equal(t, "theme.css", s.Stylesheet)
	assert.Equal(t, []string{"**/*.css"}, s.CheckPaths)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(defaultConfigPath, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(defaultConfigPath, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(defaultConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stylesheet: theme.css")
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set, should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set, should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"none", "normal", "debug", ""} {
		log, err := newLogger(level, false)
		require.NoError(t, err, level)
		assert.NotNil(t, log)
	}
	_, err := newLogger("loud", false)
	assert.Error(t, err)
}
