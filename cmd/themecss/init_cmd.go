package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .themecss.yaml config file",
	Long:  `Create a .themecss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# themecss configuration

# Shared settings
stylesheet: theme.css
# context: [macos, dark]   # overrides the detected os and appearance
appearance: ""             # light | dark
log-level: normal          # none | normal | debug
color: false
quiet: false

# Checking settings
check:
  paths:
    - "**/*.css"
  strict: false
  print-lines: true

# Solving settings
solve:
  output-format: text      # text | json | yaml
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
