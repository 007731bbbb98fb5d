package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bioprep/airgen/internal/config"
)

//go:embed templates/airgen.yaml
var configTemplate []byte

// NewInitCmd creates the init command, which writes an annotated
// configuration file template.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file template",
		Long: `Create an annotated .airgen configuration file in the current
directory. The file documents every setting and its default; the
surface command picks it up automatically.`,
		Example: `  airgen init
  airgen init --output ~/.airgen
  airgen init --force`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "Where to write the configuration file")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")

	return cmd
}

// runInitCmd handles the init command execution.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, configTemplate, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
	return nil
}
