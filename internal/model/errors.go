package model

import "fmt"

// Domain errors carry enough context (selection index, offending
// residue, parameter name) for the user to correct the input. None
// of them is retried or recovered silently: a failing selection
// aborts the whole invocation so a partially valid multi-selection
// run never writes an inconsistent plan set.

// UnknownResidueError reports a selection naming a residue that does
// not exist in the structure.
type UnknownResidueError struct {
	// Selection is the 1-based index of the offending selection.
	Selection int

	// Residue is the residue number that has no match.
	Residue int

	// Path is the structure file the residue was looked up in.
	Path string
}

// Error implements the error interface.
func (e *UnknownResidueError) Error() string {
	return fmt.Sprintf("selection %d: residue %d not found in %s", e.Selection, e.Residue, e.Path)
}

// DegenerateGeometryError reports that the anchor points cannot
// define a surface normal: fewer than 3 points, or all points
// collinear, with no fallback axis configured.
type DegenerateGeometryError struct {
	// Points is the number of distinct anchor points available.
	Points int

	// Reason describes the degeneracy ("too few points",
	// "collinear points").
	Reason string
}

// Error implements the error interface.
func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("cannot derive surface normal from %d anchor points: %s", e.Points, e.Reason)
}

// InvalidSurfaceConfigError reports a non-positive surface parameter.
type InvalidSurfaceConfigError struct {
	// Param is the offending parameter name ("spacing", "x-size",
	// "y-size", "standoff").
	Param string

	// Value is the rejected value.
	Value float64
}

// Error implements the error interface.
func (e *InvalidSurfaceConfigError) Error() string {
	return fmt.Sprintf("invalid surface configuration: %s must be positive, got %g", e.Param, e.Value)
}

// EmptySelectionError reports a selection group with zero residues.
// A plan with no restraints is not a meaningful output, so this is a
// hard error rather than an empty plan.
type EmptySelectionError struct {
	// Selection is the 1-based index of the empty group.
	Selection int
}

// Error implements the error interface.
func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("selection %d is empty: each --residues group needs at least one residue", e.Selection)
}
