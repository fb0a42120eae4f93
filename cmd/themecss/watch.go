package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/themecss"
	"github.com/yacobolo/themecss/element"
)

var watchCmd = &cobra.Command{
	Use:   "watch QUERY",
	Short: "Re-solve a widget every time the stylesheet changes",
	Long: `Watch the stylesheet and print the computed properties of the widget
described by QUERY after every successful reload. A stylesheet that fails
to parse keeps the previous rules. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		e, err := element.Parse(args[0])
		if err != nil {
			return err
		}
		out := io.Writer(os.Stdout)
		if s.Quiet {
			out = io.Discard
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, out, s, e, log)
	},
}

func init() {
	watchCmd.Flags().String("output-format", "", "Output format: text|json|yaml (default: text)")
}

// runWatch loads the stylesheet once, prints the widget, and then reprints it
// on every reload until ctx is done.
func runWatch(ctx context.Context, w io.Writer, s settings, e *element.Element, log *zap.Logger) error {
	store := themecss.NewStore(nil)
	watcher := themecss.NewWatcher(s.Stylesheet, s.Context, store, themecss.NewParser(log), log)

	var reloads int
	watcher.OnReload(func(rules *themecss.Rules) {
		if reloads > 0 {
			fmt.Fprintln(w)
		}
		reloads++
		if err := themecss.WriteOutput(w, rules.Solve(e), s.OutputFormat); err != nil {
			log.Error("Unable to write computed properties", zap.Error(err))
		}
	})

	if err := watcher.Reload(); err != nil {
		return fmt.Errorf("loading stylesheet: %w", err)
	}
	return watcher.Run(ctx)
}
