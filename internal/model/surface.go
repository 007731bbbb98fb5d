package model

// ReferenceFrame orients the virtual surface relative to the
// structure. It is computed exactly once per invocation and shared,
// read-only, by every plan: selections never perturb surface
// placement, which keeps plans geometrically comparable.
type ReferenceFrame struct {
	// Origin is the centroid of the anchor coordinates.
	Origin Vec3 `json:"origin"`

	// Normal is the unit vector perpendicular to the surface plane.
	Normal Vec3 `json:"normal"`

	// AnchorCount is the number of anchor points the frame was
	// derived from.
	AnchorCount int `json:"anchor_count"`
}

// Bead is one synthetic surface point. Beads are not atoms of the
// real structure; they become pseudo-atoms in the serialized
// restraints.
type Bead struct {
	// ID is the bead's stable identifier: its row-major position
	// in the grid, starting at 1.
	ID int `json:"id"`

	// Position is the bead's location in world coordinates.
	Position Vec3 `json:"position"`
}

// SurfaceGrid is the rectangular grid of beads lying on the plane
// through Origin + Standoff*Normal. It is immutable once built and
// shared read-only across all plans in the invocation.
type SurfaceGrid struct {
	// Frame is the reference frame the grid was built in.
	Frame ReferenceFrame `json:"frame"`

	// XSize and YSize are the plane extents in Angstroms.
	XSize float64 `json:"x_size"`
	YSize float64 `json:"y_size"`

	// Spacing is the bead pitch along both local axes.
	Spacing float64 `json:"spacing"`

	// Standoff is the offset of the plane from the frame origin
	// along the normal.
	Standoff float64 `json:"standoff"`

	// NX and NY are the bead counts along the two local axes.
	// len(Beads) == NX*NY.
	NX int `json:"nx"`
	NY int `json:"ny"`

	// Beads holds the beads in row-major order (all beads of the
	// first row along the local X axis, then the second row, ...).
	// The ordering is deterministic so bead IDs are stable across
	// runs with identical parameters.
	Beads []Bead `json:"beads"`
}

// Bead returns the bead with the given ID, or false when the ID is
// out of range. IDs are 1-based.
func (g *SurfaceGrid) Bead(id int) (Bead, bool) {
	if id < 1 || id > len(g.Beads) {
		return Bead{}, false
	}
	return g.Beads[id-1], true
}

// Len returns the number of beads in the grid.
func (g *SurfaceGrid) Len() int {
	return len(g.Beads)
}
