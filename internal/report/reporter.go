// Package report prints stylesheet diagnostics for the command line tool.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/themecss"
)

// Config controls reporter output.
type Config struct {
	UseColors  bool // Force colors on
	PrintLines bool // Print the offending source line with a caret
}

// FileResult is the outcome of checking one stylesheet.
type FileResult struct {
	Path        string
	Source      string
	Diagnostics []themecss.Diagnostic
	Err         error // Fatal parse error, if any
}

// Reporter handles formatting and outputting check results
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  shouldUseColors(config),
		printLines: config.PrintLines,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config Config) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// NO_COLOR disables auto-detection
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintResult prints the fatal error or the diagnostics of one file.
func (r *Reporter) PrintResult(result FileResult) {
	if result.Err != nil {
		r.printError(result)
		return
	}

	// Sort diagnostics by line, then column
	diags := append([]themecss.Diagnostic(nil), result.Diagnostics...)
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Pos.Line != diags[j].Pos.Line {
			return diags[i].Pos.Line < diags[j].Pos.Line
		}
		return diags[i].Pos.Column < diags[j].Pos.Column
	})

	lines := strings.Split(result.Source, "\n")
	for _, d := range diags {
		r.printDiagnostic(result.Path, lines, d)
	}
}

// printDiagnostic formats a single diagnostic as file:line:col: message (kind)
func (r *Reporter) printDiagnostic(path string, lines []string, d themecss.Diagnostic) {
	location := fmt.Sprintf("%s:%d:%d:", path, d.Pos.Line, d.Pos.Column)
	kindSuffix := fmt.Sprintf(" (%s)", d.Kind)

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		d.Message,
		RenderStyle(StyleGray, kindSuffix, r.useColors))

	if r.printLines && d.Pos.Line > 0 && d.Pos.Line <= len(lines) {
		line := strings.TrimRight(lines[d.Pos.Line-1], "\r")
		fmt.Fprintf(r.w, "\t%s\n", line)
		caret := buildCaretIndicator(line, d.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

func (r *Reporter) printError(result FileResult) {
	msg := result.Err.Error()
	var perr *themecss.ParseError
	if errors.As(result.Err, &perr) && perr.Path == "" {
		msg = result.Path + ": " + msg
	}
	fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleRed, "error:", r.useColors), msg)
}

// buildCaretIndicator creates the "^" indicator aligned with the column
// Handles tabs vs spaces so the caret lines up under the source line.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Column is counted in runes
	runes := []rune(sourceLine)
	prefixLen := column - 1
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}

	var padding strings.Builder
	for _, ch := range runes[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the diagnostic count summary
func (r *Reporter) PrintSummary(results []FileResult) {
	var failed, total int
	kindCounts := make(map[themecss.DiagnosticKind]int)
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		total += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			kindCounts[d.Kind]++
		}
	}

	fmt.Fprintln(r.w, "")

	if failed == 0 && total == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen,
			fmt.Sprintf("%s checked, no issues", pluralizeCount(len(results), "stylesheet", "stylesheets")), r.useColors))
		return
	}

	if failed > 0 {
		fmt.Fprintf(r.w, "%s (%s failed to parse):\n",
			pluralizeCount(total, "diagnostic", "diagnostics"),
			pluralizeCount(failed, "stylesheet", "stylesheets"))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(total, "diagnostic", "diagnostics"))
	}

	// Kind breakdown in a stable order
	kinds := make([]string, 0, len(kindCounts))
	for kind := range kindCounts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(r.w, "* %s: %d\n", kind, kindCounts[themecss.DiagnosticKind(kind)])
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
