package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bioprep/airgen/internal/model"
)

// BeadSegID is the segment identifier given to the synthetic surface
// beads in restraint selections and in the bead PDB file. Docking
// engines load the bead pseudo-atoms under this segid.
const BeadSegID = "SURF"

// beadAtomName returns the pseudo-atom name of a bead. PDB atom names
// are at most 4 characters, which caps usable bead IDs at 999; the
// surface builder rejects grids past that size, so every ID reaching
// this point fits the field.
func beadAtomName(id int) string {
	return fmt.Sprintf("B%03d", id)
}

// TblWriter serializes one restraint plan as CNS-style ambiguous
// distance restraints: one assign statement per residue, with the
// candidate beads as an or-joined selection. The statement form is
//
//	assign (resid N) ((name Bxxx and segid SURF) or ...) d d 0.0
//
// where d is the upper bound, giving effective bounds [0, d].
type TblWriter struct {
	baseWriter
}

// NewTblWriter creates a TblWriter that outputs to w.
func NewTblWriter(w io.Writer) *TblWriter {
	return &TblWriter{baseWriter: newBaseWriter(w)}
}

// WritePlan outputs one plan's restraints. The grid provides bead
// coordinates for the per-restraint comments; restraint ordering
// follows the plan's entry order exactly.
func (w *TblWriter) WritePlan(p *model.RestraintPlan, grid *model.SurfaceGrid) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "! Ambiguous surface restraints, plan %d\n", p.Index)
	fmt.Fprintf(&b, "! Selection: %s\n", joinInts(p.Selection.Residues))
	fmt.Fprintf(&b, "! Beads: segid %s, %d on a %g x %g plane (spacing %g, standoff %g)\n",
		BeadSegID, grid.Len(), grid.XSize, grid.YSize, grid.Spacing, grid.Standoff)
	b.WriteString("!\n")

	for _, entry := range p.Entries {
		fmt.Fprintf(&b, "! residue %d: %d candidate bead(s), nearest %.3f\n",
			entry.Residue, len(entry.BeadIDs), entry.NearestDist)

		fmt.Fprintf(&b, "assign (resid %d)\n", entry.Residue)
		b.WriteString("       (\n")
		for i, id := range entry.BeadIDs {
			bead, ok := grid.Bead(id)
			if !ok {
				return 0, fmt.Errorf("plan %d: restraint for residue %d references unknown bead %d",
					p.Index, entry.Residue, id)
			}
			prefix := "        "
			if i > 0 {
				prefix = "     or "
			}
			fmt.Fprintf(&b, "%s(name %s and segid %s) ! at %8.3f %8.3f %8.3f\n",
				prefix, beadAtomName(id), BeadSegID,
				bead.Position.X, bead.Position.Y, bead.Position.Z)
		}
		b.WriteString("       )\n")
		fmt.Fprintf(&b, "       %.3f %.3f 0.000\n\n", entry.Upper, entry.Upper-entry.Lower)
	}

	return io.WriteString(w.output, b.String())
}

// WriteBeadsPDB outputs the surface beads as HETATM pseudo-atom
// records under BeadSegID, so the restraint tables have coordinates
// to resolve against.
func WriteBeadsPDB(w io.Writer, grid *model.SurfaceGrid) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "REMARK   surface beads: %dx%d grid, spacing %g, standoff %g\n",
		grid.NX, grid.NY, grid.Spacing, grid.Standoff)

	for _, bead := range grid.Beads {
		// Fixed PDB columns; residue number reuses the bead ID so
		// either name or resid selects the bead.
		fmt.Fprintf(&b, "HETATM%5d %-4s SHA S%4d    %8.3f%8.3f%8.3f  1.00  0.00      %-4s\n",
			bead.ID, beadAtomName(bead.ID), bead.ID,
			bead.Position.X, bead.Position.Y, bead.Position.Z, BeadSegID)
	}
	b.WriteString("END\n")

	return io.WriteString(w, b.String())
}

// joinInts formats residue numbers as a comma-separated list.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
