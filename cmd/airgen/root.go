// Package main provides the entry point for the airgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for airgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airgen",
		Short: "Docking restraint generator for virtual surfaces",
		Long: `airgen builds a parametric virtual surface over a protein structure and
converts residue selections into ambiguous distance restraints against
that surface. Each selection yields one independent restraint plan,
written as a CNS-style restraint table.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSurfaceCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
