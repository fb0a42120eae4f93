package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/themecss"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/themecss
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of themecss",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "themecss %s (%s)\n", version, themecss.OSName())
	},
}
