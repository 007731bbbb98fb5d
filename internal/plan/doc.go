// Package plan turns residue selections into restraint plans: one
// independent plan per selection, each mapping its residues to
// qualifying surface beads as ambiguous distance restraints.
//
// Generation reads only shared immutable state (structure, frame,
// grid), so selections are processed concurrently with errgroup and
// collected by selection index. A failure in any selection aborts the
// whole invocation; a partial plan set is never returned.
package plan
