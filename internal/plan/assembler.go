package plan

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bioprep/airgen/internal/model"
)

// Assembler fans plan generation out over the selections and collects
// the results in selection order. It is the single place the
// one-selection-one-plan multiplicity contract is enforced.
type Assembler struct {
	opts        Options
	concurrency int
	logger      *slog.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithConcurrency caps the number of selections generated in
// parallel. Values below 1 are treated as 1.
func WithConcurrency(n int) AssemblerOption {
	return func(a *Assembler) {
		if n < 1 {
			n = 1
		}
		a.concurrency = n
	}
}

// WithLogger sets the logger used for progress output.
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler creates an Assembler with the given generation options.
func NewAssembler(opts Options, assemblerOpts ...AssemblerOption) *Assembler {
	a := &Assembler{
		opts:        opts,
		concurrency: 1,
		logger:      slog.Default(),
	}
	for _, opt := range assemblerOpts {
		opt(a)
	}
	return a
}

// Assemble generates one plan per selection against the shared
// read-only structure and grid, preserving selection order in the
// result regardless of completion order.
//
// Each selection runs in its own errgroup goroutine; results land in
// a pre-allocated slot keyed by selection index, so no ordering is
// recovered from arrival order. Any failing selection cancels the
// group and Assemble returns that error with no plans: emitting an
// internally inconsistent subset of plans would be worse than
// failing outright.
func (a *Assembler) Assemble(ctx context.Context, selections []model.ResidueSelection, structure *model.Structure, grid *model.SurfaceGrid) ([]model.RestraintPlan, error) {
	plans := make([]model.RestraintPlan, len(selections))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, sel := range selections {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p, err := Generate(sel, structure, grid, a.opts)
			if err != nil {
				return err
			}

			a.logger.Debug("plan generated",
				"selection", sel.Index,
				"residues", len(sel.Residues),
				"restraints", p.Len(),
			)

			// Slot i belongs to this goroutine alone; no lock needed.
			plans[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return plans, nil
}
