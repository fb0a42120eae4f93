package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yacobolo/themecss"
)

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "Print the variables visible in the configured context",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		rules, err := loadStylesheet(s, log)
		if err != nil {
			return err
		}
		if s.Quiet {
			return nil
		}
		return writeVariables(os.Stdout, rules)
	},
}

// writeVariables prints name and value pairs sorted by name.
func writeVariables(w io.Writer, rules *themecss.Rules) error {
	vars := rules.Variables()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, vars[name])
	}
	return tw.Flush()
}
