package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/internal/report"
	"github.com/yacobolo/themecss/internal/scan"
)

// errIssuesFound is returned in strict mode when any diagnostic was reported.
var errIssuesFound = errors.New("diagnostics reported in strict mode")

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Report problems in stylesheets",
	Long: `Parse every stylesheet matching the given glob patterns and report
unknown properties, invalid values, unresolved variables and syntax problems.
Fatal parse errors always fail; with --strict any diagnostic fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		patterns := s.CheckPaths
		if len(args) > 0 {
			patterns = args
		}
		out := io.Writer(os.Stdout)
		if s.Quiet {
			out = io.Discard
		}
		return runCheck(out, s, patterns, log)
	},
}

func init() {
	f := checkCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any diagnostic (CI mode)")
	f.Bool("print-lines", true, "Show source lines with diagnostics")
}

// runCheck parses every matching stylesheet and reports the results to w.
func runCheck(w io.Writer, s settings, patterns []string, log *zap.Logger) error {
	scanner := scan.New(".gitignore")
	files, stats, err := scanner.Expand(patterns)
	if err != nil {
		return fmt.Errorf("expanding patterns: %w", err)
	}
	log.Debug("Stylesheets discovered",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))
	if len(files) == 0 {
		return fmt.Errorf("no stylesheets match %v", patterns)
	}

	parser := themecss.NewParser(log)
	parser.SetSink(themecss.Discard)

	rep := report.NewReporter(w, report.Config{UseColors: s.Color, PrintLines: s.PrintLines})

	var (
		results []report.FileResult
		errs    error
		total   int
	)
	for _, path := range files {
		name := path
		if filepath.IsAbs(path) {
			name = scan.RelativePath(path)
		}
		result := report.FileResult{Path: name}
		rules, err := parser.ParseFile(path, s.Context)
		if err != nil {
			result.Err = err
			errs = multierr.Append(errs, err)
		} else {
			result.Source = rules.Source()
			result.Diagnostics = rules.Diagnostics()
			total += len(result.Diagnostics)
		}
		rep.PrintResult(result)
		results = append(results, result)
	}
	rep.PrintSummary(results)

	if errs != nil {
		return fmt.Errorf("%d of %d stylesheets failed to parse: %w", len(multierr.Errors(errs)), len(files), errs)
	}
	if s.Strict && total > 0 {
		return errIssuesFound
	}
	return nil
}
