package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/element"
)

const testTheme = `
variables { accent: #336699; }
variables.dark { accent: #000; }

label { color: var(accent); font-size: 12; }
label.title { font-size: 20; }
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "styles/good.css", testTheme)
	writeFile(t, "styles/warn.css", "label {\n  colour: red;\n}\n")
	writeFile(t, "styles/app.min.css", "label {")

	s := settings{Context: []string{"linux"}, PrintLines: true}

	var buf bytes.Buffer
	require.NoError(t, runCheck(&buf, s, []string{"styles/**/*.css"}, zap.NewNop()))
	out := buf.String()
	assert.Contains(t, out, filepath.Join("styles", "warn.css")+":2:3: unknown property: colour (unknown-property)\n")
	assert.Contains(t, out, "\t  ^\n")
	assert.Contains(t, out, "1 diagnostic:\n* unknown-property: 1\n")

	// Strict mode fails on any diagnostic
	s.Strict = true
	buf.Reset()
	assert.ErrorIs(t, runCheck(&buf, s, []string{"styles/**/*.css"}, zap.NewNop()), errIssuesFound)

	// Strict mode passes a clean file
	buf.Reset()
	require.NoError(t, runCheck(&buf, s, []string{"styles/good.css"}, zap.NewNop()))
	assert.Contains(t, buf.String(), "1 stylesheet checked, no issues")
}

func TestRunCheckFatal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "a.css", "label { font-size: 1;")
	writeFile(t, "b.css", testTheme)

	var buf bytes.Buffer
	err := runCheck(&buf, settings{}, []string{"*.css"}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, themecss.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "1 of 2 stylesheets failed to parse")
	assert.Contains(t, buf.String(), "error: a.css:1:7:")

	buf.Reset()
	err = runCheck(&buf, settings{}, []string{"missing/*.css"}, zap.NewNop())
	assert.ErrorContains(t, err, "no stylesheets match")
}

func TestSolveQuery(t *testing.T) {
	rules, err := themecss.Parse(testTheme, []string{"dark"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, solveQuery(&buf, nil, rules, "window > label.title", themecss.OutputJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 20.0, got["font-size"])
	assert.Equal(t, "#000000", got["color"])

	buf.Reset()
	assert.ErrorIs(t, solveQuery(&buf, nil, rules, ".title", themecss.OutputText), element.ErrInvalidQuery)
}

func TestSolveHTML(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	writeFile(t, page, `<html><body><label class="title">A</label><label>B</label></body></html>`)

	rules, err := themecss.Parse(testTheme, []string{"linux"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, solveHTML(&buf, nil, rules, page, "body > label", themecss.OutputYAML))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# label.title\nfont-size: 20\n"), out)
	assert.Contains(t, out, "---\n# label\nfont-size: 12\n")
	assert.Equal(t, 2, strings.Count(out, "color: '#336699'")+strings.Count(out, "color: \"#336699\""))

	buf.Reset()
	assert.ErrorContains(t, solveHTML(&buf, nil, rules, page, "div", themecss.OutputText), "no element")
	assert.Error(t, solveHTML(&buf, nil, rules, filepath.Join(dir, "nope.html"), "label", themecss.OutputText))
}

func TestWriteVariables(t *testing.T) {
	rules, err := themecss.Parse(`variables { b: 2; a: 1; } variables.dark { a: 3; }`, []string{"dark"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeVariables(&buf, rules))
	assert.Equal(t, "a  3\nb  2\n", buf.String())
}

func TestRunWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.css")
	writeFile(t, path, `label { font-size: 3; }`)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	s := settings{Stylesheet: path, OutputFormat: themecss.OutputText}
	require.NoError(t, runWatch(ctx, &buf, s, element.Label(), zap.NewNop()))
	assert.Contains(t, buf.String(), "font-size            3\n")

	s.Stylesheet = filepath.Join(dir, "missing.css")
	assert.Error(t, runWatch(context.Background(), &buf, s, element.Label(), zap.NewNop()))
}

func TestSolveQueryGrouped(t *testing.T) {
	rules, err := themecss.Parse(testTheme, []string{"linux"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, solveQuery(&buf, nil, rules, "label", outputGroupedText))
	assert.True(t, strings.HasPrefix(buf.String(), "TYPOGRAPHY\n"), buf.String())
	assert.Contains(t, buf.String(), "VISUAL\n")
}

func TestSolveQueryExplain(t *testing.T) {
	rules, err := themecss.Parse(testTheme, []string{"linux"})
	require.NoError(t, err)

	var out, explain bytes.Buffer
	require.NoError(t, solveQuery(&out, &explain, rules, "label.title", themecss.OutputJSON))
	assert.Equal(t, "matched rules:\n"+
		"  5:1  label        (2 properties)\n"+
		"  6:1  label.title  (1 properties)\n", explain.String())
	assert.True(t, json.Valid(out.Bytes()))

	explain.Reset()
	require.NoError(t, solveQuery(&out, &explain, rules, "panel", themecss.OutputJSON))
	assert.Equal(t, "matched rules: none\n", explain.String())
}
