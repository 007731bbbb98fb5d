package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bioprep/airgen/internal/config"
	"github.com/bioprep/airgen/internal/database"
)

// NewHistoryCmd creates the history command, listing past restraint
// generation runs recorded in the local database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past restraint generation runs",
		Long: `Show runs recorded in the local history database, newest first.
Each surface invocation is recorded automatically unless --no-history
was given.`,
		Example: `  airgen history
  airgen history --limit 5
  airgen history --pdb complex.pdb --plans`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to show (0 = all)")
	cmd.Flags().String("pdb", "", "Only show runs for this structure file")
	cmd.Flags().Bool("plans", false, "Also list each run's plans")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data dir)")

	return cmd
}

// runHistoryCmd handles the history command execution.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	pdbPath, _ := cmd.Flags().GetString("pdb")
	showPlans, _ := cmd.Flags().GetBool("plans")
	dbDir, _ := cmd.Flags().GetString("db-dir")
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Never create the database here: an empty history is a normal
	// state, not a reason to scaffold files. Anything other than a
	// missing file (permissions, corruption) is a real error.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet. Run 'airgen surface' to record one.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Read-only access

	runs, err := db.ListRuns(cmd.Context(), pdbPath, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, run := range runs {
		fmt.Fprintf(out, "run %d  %s\n", run.ID, run.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))
		fmt.Fprintf(out, "  structure: %s\n", run.PDBPath)
		fmt.Fprintf(out, "  plans: %d  beads: %d  policy: %s  standoff: %g\n",
			run.PlanCount, run.BeadCount, run.Params.Policy, run.Params.Standoff)

		if showPlans {
			plans, err := db.GetRunPlans(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			for _, p := range plans {
				fmt.Fprintf(out, "    plan %d: residues %s (%d restraints)\n",
					p.PlanIndex, joinSelection(p.Selection), p.RestraintCount)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

// joinSelection formats a stored selection as the comma list the user
// originally typed.
func joinSelection(residues []int) string {
	parts := make([]string, len(residues))
	for i, n := range residues {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ",")
}
