package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/element"
	"github.com/yacobolo/themecss/internal/selector"
)

var solveCmd = &cobra.Command{
	Use:   "solve QUERY",
	Short: "Print the computed properties of a widget",
	Long: `Compute the properties a widget receives from the stylesheet.

QUERY describes the widget and its ancestors, for example
  themecss solve "window > vbox label#title.big:hover"

With --html, QUERY is a selector and every matching element of the
HTML document is solved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		rules, err := loadStylesheet(s, log)
		if err != nil {
			return err
		}
		out := io.Writer(os.Stdout)
		if s.Quiet {
			out = io.Discard
		}

		format := s.OutputFormat
		if group, _ := cmd.Flags().GetBool("group"); group && format == themecss.OutputText {
			format = outputGroupedText
		}
		// Matched rules go next to text output and to stderr otherwise
		var explain io.Writer
		if on, _ := cmd.Flags().GetBool("explain"); on && !s.Quiet {
			explain = os.Stderr
			if format == themecss.OutputText || format == outputGroupedText {
				explain = out
			}
		}

		htmlPath, _ := cmd.Flags().GetString("html")
		if htmlPath != "" {
			return solveHTML(out, explain, rules, htmlPath, args[0], format)
		}
		return solveQuery(out, explain, rules, args[0], format)
	},
}

func init() {
	f := solveCmd.Flags()
	f.String("output-format", "", "Output format: text|json|yaml (default: text)")
	f.String("html", "", "HTML document whose matching elements are solved")
	f.Bool("group", false, "Group text output by property category")
	f.Bool("explain", false, "List the rules matching each element in document order")
}

// outputGroupedText is the text format split into category sections.
const outputGroupedText themecss.OutputFormat = "grouped"

// writeProperties writes props in format.
func writeProperties(w io.Writer, props themecss.ComputedProperties, format themecss.OutputFormat) error {
	if format == outputGroupedText {
		return themecss.WriteTextGrouped(w, props)
	}
	return themecss.WriteOutput(w, props, format)
}

// solveQuery builds a widget from query and writes its computed properties.
// A non-nil explain receives the matched rules first.
func solveQuery(w, explain io.Writer, rules *themecss.Rules, query string, format themecss.OutputFormat) error {
	e, err := element.Parse(query)
	if err != nil {
		return err
	}
	if err := writeMatches(explain, rules, e); err != nil {
		return err
	}
	return writeProperties(w, e.Compute(rules), format)
}

// writeMatches lists the rules matching e, one `line:col selector (n properties)`
// row each. It does nothing when w is nil.
func writeMatches(w io.Writer, rules *themecss.Rules, e themecss.Element) error {
	if w == nil {
		return nil
	}
	matched := rules.Match(e)
	if len(matched) == 0 {
		_, err := fmt.Fprintln(w, "matched rules: none")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "matched rules:")
	for _, r := range matched {
		fmt.Fprintf(tw, "  %d:%d\t%s\t(%d properties)\n", r.Pos.Line, r.Pos.Column, r.Selector, r.Properties.Len())
	}
	return tw.Flush()
}

// solveHTML writes the computed properties of every element in the HTML
// document at path that matches the selector query.
func solveHTML(w, explain io.Writer, rules *themecss.Rules, path, query string, format themecss.OutputFormat) error {
	sel, err := selector.Parse(query)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening html document: %w", err)
	}
	defer f.Close()

	elements, err := element.ParseHTML(f)
	if err != nil {
		return fmt.Errorf("parsing html document %s: %w", path, err)
	}

	var matched int
	for _, e := range elements {
		if !sel.Matches(e) {
			continue
		}
		if err := writeHeader(w, e.String(), matched, format); err != nil {
			return err
		}
		if err := writeMatches(explain, rules, e); err != nil {
			return err
		}
		if err := writeProperties(w, rules.Solve(e), format); err != nil {
			return err
		}
		matched++
	}
	if matched == 0 {
		return fmt.Errorf("no element in %s matches %q", path, query)
	}
	return nil
}

// writeHeader separates the output of consecutive elements.
func writeHeader(w io.Writer, name string, index int, format themecss.OutputFormat) error {
	var err error
	switch format {
	case themecss.OutputYAML:
		if index > 0 {
			_, err = fmt.Fprintln(w, "---")
		}
		if err == nil {
			_, err = fmt.Fprintf(w, "# %s\n", name)
		}
	case themecss.OutputJSON:
		// Consecutive JSON documents need no separator.
	default:
		if index > 0 {
			_, err = fmt.Fprintln(w)
		}
		if err == nil {
			_, err = fmt.Fprintf(w, "%s\n", name)
		}
	}
	return err
}
