package config

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/bioprep/airgen/internal/model"
)

// Default configuration values. The surface dimensions follow the
// original toolkit's convention of a plane comfortably larger than a
// typical protein; the restraint constants are documented choices
// (see DESIGN.md) since the source material leaves them open.
const (
	// DefaultXSize and DefaultYSize are the surface plane extents
	// in Angstroms. 100 A on a side covers proteins up to roughly
	// 900 residues with margin to spare.
	DefaultXSize = 100.0
	DefaultYSize = 100.0

	// DefaultSpacing is the bead pitch in Angstroms. 10 A gives a
	// 10x10 grid at the default extents: coarse enough to keep
	// restraint files small, fine enough that every surface-facing
	// residue has a bead within the default radius.
	DefaultSpacing = 10.0

	// DefaultStandoff separates the surface plane from the anchor
	// centroid along the frame normal. 20 A clears the side chains
	// of any globular protein while staying within ambiguous
	// restraint range of the surface-facing residues.
	DefaultStandoff = 20.0

	// DefaultRadius is the proximity radius for PolicyRadius.
	// Beads within 10 A of a residue's representative coordinate
	// join its ambiguous partner set.
	DefaultRadius = 10.0

	// DefaultTopK is the partner count for PolicyTopK.
	DefaultTopK = 3

	// DefaultTolerance is added to the observed nearest-bead
	// distance to form the restraint's upper bound. 2 A absorbs
	// side-chain flexibility during docking.
	DefaultTolerance = 2.0

	// DefaultOutputPrefix names the per-plan restraint files when
	// --output is not given: surface_restraints_1.tbl, ...
	DefaultOutputPrefix = "surface_restraints"

	// AppName is the application name used for XDG directory paths.
	AppName = "airgen"
)

// Anchor modes for the reference frame.
const (
	// AnchorSelections anchors the frame on the union of all
	// selected residues. Degenerate unions are a hard error.
	AnchorSelections = "selections"

	// AnchorStructure anchors the frame on every residue of the
	// structure, and enables the world-axis fallback for
	// degenerate clouds.
	AnchorStructure = "structure"
)

// Config holds all options for one airgen invocation. A single flat
// struct, populated once after CLI parsing and treated as read-only
// afterwards.
type Config struct {
	// PDBPath is the structure input file. Required.
	PDBPath string

	// SelectionGroups are the raw --residues groups in command-line
	// order, e.g. ["19,83,145", "98,101,126"]. Each group becomes
	// one restraint plan.
	SelectionGroups []string

	// OutputPrefix is the base name for per-plan restraint files;
	// plan N is written to <prefix>_<N>.tbl.
	OutputPrefix string

	// XSize, YSize, Spacing and Standoff are the surface grid
	// dimensions in Angstroms.
	XSize    float64
	YSize    float64
	Spacing  float64
	Standoff float64

	// Policy selects bead partners per residue; Radius and TopK
	// parameterize the radius and topk policies.
	Policy model.Policy
	Radius float64
	TopK   int

	// Tolerance is added to the observed nearest-bead distance to
	// form each restraint's upper bound.
	Tolerance float64

	// Anchor is AnchorSelections or AnchorStructure.
	Anchor string

	// Concurrency caps the number of selections processed in
	// parallel. Defaults to GOMAXPROCS-equivalent CPU count.
	Concurrency int

	// JSONReport additionally writes the full plan set as JSON to
	// stdout, alongside the restraint tables.
	JSONReport bool

	// MarkdownSummary, when non-empty, is the path of a Markdown
	// run summary written alongside the restraint files.
	MarkdownSummary string

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// ConfigFilePath is an explicit .airgen config file path. When
	// empty, the current directory and then the home directory are
	// searched.
	ConfigFilePath string

	// SaveToDB records the run in the history database under DBDir.
	SaveToDB bool

	// DBDir is the directory holding the run-history database.
	DBDir string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be wrong; this
// constructor also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		OutputPrefix: DefaultOutputPrefix,
		XSize:        DefaultXSize,
		YSize:        DefaultYSize,
		Spacing:      DefaultSpacing,
		Standoff:     DefaultStandoff,
		Policy:       model.PolicyRadius,
		Radius:       DefaultRadius,
		TopK:         DefaultTopK,
		Tolerance:    DefaultTolerance,
		Anchor:       AnchorSelections,
		Concurrency:  runtime.NumCPU(),
	}
}

// XDGDataDir returns the XDG data directory for airgen.
// On Linux: ~/.local/share/airgen.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for airgen.
// On Linux: ~/.config/airgen.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the non-surface configuration and returns the first
// problem found. Surface dimensions are validated separately by the
// surface builder so the error carries the parameter name in the form
// the spec of that component requires.
func (c *Config) Validate() error {
	if c.PDBPath == "" {
		return ErrNoPDB
	}
	if len(c.SelectionGroups) == 0 {
		return ErrNoSelections
	}
	if c.OutputPrefix == "" {
		return ErrNoOutputPrefix
	}
	if c.Policy == model.PolicyTopK && c.TopK <= 0 {
		return ErrInvalidTopK
	}
	if c.Policy == model.PolicyRadius && c.Radius <= 0 {
		return ErrInvalidRadius
	}
	if c.Tolerance < 0 {
		return ErrInvalidTolerance
	}
	if c.Anchor != AnchorSelections && c.Anchor != AnchorStructure {
		return ErrInvalidAnchor
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}
