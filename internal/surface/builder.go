package surface

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/bioprep/airgen/internal/model"
)

// MaxBeads caps the grid size. Bead IDs are serialized as 4-character
// PDB pseudo-atom names (B001..B999), so a grid past 999 beads could
// not be written; rejecting it here fails the run before any geometry
// is computed against an unserializable surface.
const MaxBeads = 999

// Params holds the surface dimensions. All values are in Angstroms
// and must be positive.
type Params struct {
	// XSize and YSize are the plane extents.
	XSize float64
	YSize float64

	// Spacing is the bead pitch along both local axes.
	Spacing float64

	// Standoff is the plane's offset from the frame origin along
	// the frame normal.
	Standoff float64
}

// Validate checks the parameters and returns an
// InvalidSurfaceConfigError naming the first offending one.
func (p Params) Validate() error {
	switch {
	case p.XSize <= 0:
		return &model.InvalidSurfaceConfigError{Param: "x-size", Value: p.XSize}
	case p.YSize <= 0:
		return &model.InvalidSurfaceConfigError{Param: "y-size", Value: p.YSize}
	case p.Spacing <= 0:
		return &model.InvalidSurfaceConfigError{Param: "spacing", Value: p.Spacing}
	case p.Standoff <= 0:
		return &model.InvalidSurfaceConfigError{Param: "standoff", Value: p.Standoff}
	}
	return nil
}

// Build constructs the bead grid in the plane through
// frame.Origin + Standoff*frame.Normal, spanning
// [-XSize/2, +XSize/2] x [-YSize/2, +YSize/2] in the plane's local
// basis with one bead every Spacing units.
//
// Beads are laid out row-major: the full first row along the local X
// axis, then the next row, and so on. Bead IDs are 1-based positions
// in that ordering. Bead count is ceil(XSize/Spacing) *
// ceil(YSize/Spacing), so the count never increases as spacing grows.
// Grids larger than MaxBeads are rejected: their IDs would not fit
// the pseudo-atom naming scheme of the serialized restraints.
//
// A spacing larger than the smaller extent is legal (the grid
// collapses toward a single bead) but almost always a configuration
// slip, so it is logged as a warning rather than rejected.
func Build(frame model.ReferenceFrame, p Params) (*model.SurfaceGrid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Spacing > math.Min(p.XSize, p.YSize) {
		slog.Warn("surface spacing exceeds plane extent; grid degenerates toward a single bead",
			"spacing", p.Spacing,
			"xSize", p.XSize,
			"ySize", p.YSize,
		)
	}

	u, v := localBasis(frame.Normal)
	center := frame.Origin.Add(frame.Normal.Scale(p.Standoff))

	nx := int(math.Ceil(p.XSize / p.Spacing))
	ny := int(math.Ceil(p.YSize / p.Spacing))
	if nx*ny > MaxBeads {
		return nil, fmt.Errorf("surface grid needs %d beads (%dx%d), more than the %d addressable as pseudo-atoms: increase spacing or shrink the plane",
			nx*ny, nx, ny, MaxBeads)
	}

	grid := &model.SurfaceGrid{
		Frame:    frame,
		XSize:    p.XSize,
		YSize:    p.YSize,
		Spacing:  p.Spacing,
		Standoff: p.Standoff,
		NX:       nx,
		NY:       ny,
		Beads:    make([]model.Bead, 0, nx*ny),
	}

	for j := 0; j < ny; j++ {
		dy := -p.YSize/2 + float64(j)*p.Spacing
		for i := 0; i < nx; i++ {
			dx := -p.XSize/2 + float64(i)*p.Spacing
			pos := center.Add(u.Scale(dx)).Add(v.Scale(dy))
			grid.Beads = append(grid.Beads, model.Bead{
				ID:       len(grid.Beads) + 1,
				Position: pos,
			})
		}
	}

	return grid, nil
}

// localBasis returns two orthonormal vectors spanning the plane
// perpendicular to the (unit) normal. The construction is
// deterministic: the world axis least aligned with the normal seeds
// the first basis vector, so identical frames always produce
// identical grids.
func localBasis(normal model.Vec3) (u, v model.Vec3) {
	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)

	seed := model.Vec3{X: 1}
	switch {
	case ay <= ax && ay <= az:
		seed = model.Vec3{Y: 1}
	case az <= ax && az <= ay:
		seed = model.Vec3{Z: 1}
	}

	u = seed.Cross(normal).Unit()
	v = normal.Cross(u)
	return u, v
}
