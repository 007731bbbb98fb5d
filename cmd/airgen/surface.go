package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bioprep/airgen/internal/config"
	"github.com/bioprep/airgen/internal/database"
	"github.com/bioprep/airgen/internal/geometry"
	"github.com/bioprep/airgen/internal/log"
	"github.com/bioprep/airgen/internal/model"
	"github.com/bioprep/airgen/internal/pdb"
	"github.com/bioprep/airgen/internal/plan"
	"github.com/bioprep/airgen/internal/report"
	"github.com/bioprep/airgen/internal/surface"
)

// NewSurfaceCmd creates the surface command, the main entry point for
// restraint generation.
func NewSurfaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "surface --pdb <file> --residues <n,n,...> [group ...]",
		Aliases: []string{"z-surface-restraints"},
		Short:   "Generate ambiguous surface restraints for a structure",
		Long: `Generate ambiguous distance restraints between residue selections and a
virtual surface plane positioned over the structure.

The plane is oriented by the anchor residues: its normal is the
direction the anchor cloud is flattest in, and it floats one standoff
above the anchor centroid. Each --residues group becomes one
independent restraint plan written to <prefix>_<N>.tbl; the bead
pseudo-atoms the tables refer to are written to <prefix>_beads.pdb.
Positional arguments are treated as additional selection groups.`,
		Example: `  airgen surface --pdb complex.pdb --residues 19,83,145
  airgen surface --pdb complex.pdb --residues 19,83 --residues 98,101 -o docking
  airgen surface --pdb complex.pdb --residues 19,83 98,101,126
  airgen surface --pdb complex.pdb --residues 19,83 --policy topk --top-k 5 --json`,
		RunE: runSurfaceCmd,
	}

	cmd.Flags().StringP("pdb", "p", "", "Input structure in PDB format (required)")
	cmd.Flags().StringArrayP("residues", "r", nil, "Comma-separated residue numbers; repeat for multiple plans (required)")
	cmd.Flags().StringP("output", "o", config.DefaultOutputPrefix, "Output file prefix")
	cmd.Flags().Float64("x-size", config.DefaultXSize, "Surface plane extent along its X axis (Angstrom)")
	cmd.Flags().Float64("y-size", config.DefaultYSize, "Surface plane extent along its Y axis (Angstrom)")
	cmd.Flags().Float64("spacing", config.DefaultSpacing, "Bead spacing on the plane (Angstrom)")
	cmd.Flags().Float64("standoff", config.DefaultStandoff, "Plane offset above the anchor centroid (Angstrom)")
	cmd.Flags().String("policy", string(model.PolicyRadius), "Bead selection policy: radius, nearest, or topk")
	cmd.Flags().Float64("radius", config.DefaultRadius, "Proximity radius for the radius policy (Angstrom)")
	cmd.Flags().Int("top-k", config.DefaultTopK, "Bead count for the topk policy")
	cmd.Flags().Float64("tolerance", config.DefaultTolerance, "Slack added to the nearest-bead distance for the upper bound (Angstrom)")
	cmd.Flags().String("anchor", config.AnchorSelections, "Frame anchor: selections or structure")
	cmd.Flags().Int("concurrency", 0, "Max selections processed in parallel (0 = CPU count)")
	cmd.Flags().Bool("json", false, "Also print the full result as JSON to stdout")
	cmd.Flags().Bool("markdown", false, "Also write a Markdown run summary to <prefix>_summary.md")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .airgen in cwd or home)")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data dir)")

	return cmd
}

// runSurfaceCmd handles the surface command execution.
func runSurfaceCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	setupLogger(cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Ctrl+C / SIGTERM cancels the run cleanly instead of leaving a
	// partial plan set behind.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runSurface(ctx, cmd, cfg)
}

// buildConfig assembles the run configuration: defaults, then the
// config file, then explicitly set flags. Flags the user did not touch
// never override the file. Positional args become selection groups
// after the --residues groups.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	if found := config.FindConfigFile(configPath); found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		if err := cf.ApplyTo(cfg); err != nil {
			return nil, err
		}
		slog.Debug("config file loaded", "path", found)
	} else if configPath != "" {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	flags := cmd.Flags()

	cfg.PDBPath, err = flags.GetString("pdb")
	if err != nil {
		return nil, err
	}
	cfg.SelectionGroups, err = flags.GetStringArray("residues")
	if err != nil {
		return nil, err
	}
	cfg.SelectionGroups = append(cfg.SelectionGroups, args...)

	if flags.Changed("output") {
		cfg.OutputPrefix, _ = flags.GetString("output")
	}
	if flags.Changed("x-size") {
		cfg.XSize, _ = flags.GetFloat64("x-size")
	}
	if flags.Changed("y-size") {
		cfg.YSize, _ = flags.GetFloat64("y-size")
	}
	if flags.Changed("spacing") {
		cfg.Spacing, _ = flags.GetFloat64("spacing")
	}
	if flags.Changed("standoff") {
		cfg.Standoff, _ = flags.GetFloat64("standoff")
	}
	if flags.Changed("policy") {
		raw, _ := flags.GetString("policy")
		policy, err := model.ParsePolicy(raw)
		if err != nil {
			return nil, err
		}
		cfg.Policy = policy
	}
	if flags.Changed("radius") {
		cfg.Radius, _ = flags.GetFloat64("radius")
	}
	if flags.Changed("top-k") {
		cfg.TopK, _ = flags.GetInt("top-k")
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance, _ = flags.GetFloat64("tolerance")
	}
	if flags.Changed("anchor") {
		cfg.Anchor, _ = flags.GetString("anchor")
	}
	if flags.Changed("concurrency") {
		if n, _ := flags.GetInt("concurrency"); n > 0 {
			cfg.Concurrency = n
		}
	}

	cfg.JSONReport, _ = flags.GetBool("json")
	if md, _ := flags.GetBool("markdown"); md {
		cfg.MarkdownSummary = cfg.OutputPrefix + "_summary.md"
	}

	noHistory, _ := flags.GetBool("no-history")
	cfg.SaveToDB = !noHistory
	cfg.DBDir, _ = flags.GetString("db-dir")
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")

	return cfg, nil
}

// setupLogger installs the default slog logger. Debug level when
// verbose; oversized attribute values (bead ID lists mostly) are
// elided either way.
func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	inner := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(log.NewTruncatingHandler(inner)))
}

// runSurface executes the restraint generation pipeline: parse inputs,
// derive the frame, build the grid, generate one plan per selection,
// and write the outputs.
func runSurface(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	start := time.Now()

	// Surface parameters fail before any file I/O.
	surfaceParams := surface.Params{
		XSize:    cfg.XSize,
		YSize:    cfg.YSize,
		Spacing:  cfg.Spacing,
		Standoff: cfg.Standoff,
	}
	if err := surfaceParams.Validate(); err != nil {
		return err
	}

	selections, err := model.ParseSelections(cfg.SelectionGroups)
	if err != nil {
		return err
	}

	structure, err := pdb.Read(cfg.PDBPath)
	if err != nil {
		return err
	}
	slog.Info("structure parsed", "path", cfg.PDBPath, "residues", structure.Len())

	if err := validateSelections(selections, structure); err != nil {
		return err
	}

	anchors, err := anchorCoords(cfg, selections, structure)
	if err != nil {
		return err
	}

	// The world-axis fallback only applies in structure anchor mode;
	// a degenerate user selection is an input error, not something to
	// paper over.
	frame, err := geometry.ComputeFrame(anchors, cfg.Anchor == config.AnchorStructure)
	if err != nil {
		return err
	}
	slog.Debug("reference frame derived",
		"origin", frame.Origin, "normal", frame.Normal, "anchors", frame.AnchorCount)

	grid, err := surface.Build(frame, surfaceParams)
	if err != nil {
		return err
	}
	slog.Info("surface built", "beads", grid.Len(), "nx", grid.NX, "ny", grid.NY)

	assembler := plan.NewAssembler(plan.Options{
		Policy:    cfg.Policy,
		Radius:    cfg.Radius,
		TopK:      cfg.TopK,
		Tolerance: cfg.Tolerance,
	}, plan.WithConcurrency(cfg.Concurrency))

	plans, err := assembler.Assemble(ctx, selections, structure, grid)
	if err != nil {
		return err
	}

	result := &model.RunResult{
		PDBPath:     cfg.PDBPath,
		GeneratedAt: time.Now(),
		Params: model.RunParams{
			XSize:     cfg.XSize,
			YSize:     cfg.YSize,
			Spacing:   cfg.Spacing,
			Standoff:  cfg.Standoff,
			Policy:    cfg.Policy,
			Radius:    cfg.Radius,
			TopK:      cfg.TopK,
			Tolerance: cfg.Tolerance,
			Anchor:    cfg.Anchor,
		},
		Frame: frame,
		Grid:  grid,
		Plans: plans,
	}

	if err := writeOutputs(cmd, cfg, result); err != nil {
		return err
	}

	if cfg.SaveToDB {
		saveHistory(ctx, cfg, result)
	}

	slog.Info("restraints generated",
		"plans", len(result.Plans),
		"restraints", result.TotalRestraints(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// validateSelections checks that every selected residue exists in the
// structure before any geometry runs.
func validateSelections(selections []model.ResidueSelection, structure *model.Structure) error {
	for _, sel := range selections {
		for _, n := range sel.Residues {
			if _, ok := structure.Residue(n); !ok {
				return &model.UnknownResidueError{
					Selection: sel.Index,
					Residue:   n,
					Path:      structure.Path,
				}
			}
		}
	}
	return nil
}

// anchorCoords resolves the anchor residues to representative
// coordinates according to the anchor mode.
func anchorCoords(cfg *config.Config, selections []model.ResidueSelection, structure *model.Structure) ([]model.Vec3, error) {
	var numbers []int
	switch cfg.Anchor {
	case config.AnchorStructure:
		numbers = structure.Residues()
	default:
		numbers = model.AnchorUnion(selections)
	}

	coords := make([]model.Vec3, 0, len(numbers))
	for _, n := range numbers {
		c, ok := structure.ResidueCoord(n)
		if !ok {
			// Selections were validated already; only reachable for
			// a structure with zero residues, which pdb rejects.
			return nil, fmt.Errorf("residue %d has no coordinates in %s", n, structure.Path)
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// writeOutputs emits the restraint tables, the bead PDB, and the
// optional JSON and Markdown reports.
func writeOutputs(cmd *cobra.Command, cfg *config.Config, result *model.RunResult) error {
	for i := range result.Plans {
		p := &result.Plans[i]
		path := fmt.Sprintf("%s_%d.tbl", cfg.OutputPrefix, p.Index)
		if err := writeFile(path, func(f *os.File) error {
			_, err := report.NewTblWriter(f).WritePlan(p, result.Grid)
			return err
		}); err != nil {
			return err
		}
		slog.Debug("restraint table written", "path", path, "restraints", p.Len())
	}

	beadsPath := cfg.OutputPrefix + "_beads.pdb"
	if err := writeFile(beadsPath, func(f *os.File) error {
		_, err := report.WriteBeadsPDB(f, result.Grid)
		return err
	}); err != nil {
		return err
	}
	slog.Debug("bead coordinates written", "path", beadsPath, "beads", result.Grid.Len())

	if cfg.JSONReport {
		if _, err := report.NewJSONWriter(cmd.OutOrStdout()).Write(result); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
	}

	if cfg.MarkdownSummary != "" {
		if err := writeFile(cfg.MarkdownSummary, func(f *os.File) error {
			_, err := report.NewMarkdownWriter(f).Write(result)
			return err
		}); err != nil {
			return err
		}
		slog.Debug("summary written", "path", cfg.MarkdownSummary)
	}

	return nil
}

// writeFile creates path, runs write against it, and closes it,
// reporting the first error.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path) //nolint:gosec // Output path derives from the user's prefix
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// saveHistory records the run in the history database. History is
// best-effort: a failure is logged, never fatal, because the restraint
// files on disk are the real deliverable.
func saveHistory(ctx context.Context, cfg *config.Config, result *model.RunResult) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		slog.Warn("history database unavailable", "dir", cfg.DBDir, "error", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close history database", "error", err)
		}
	}()

	runID, err := db.SaveRun(ctx, result)
	if err != nil {
		slog.Warn("failed to record run history", "error", err)
		return
	}
	slog.Debug("run recorded", "run_id", runID)
}
