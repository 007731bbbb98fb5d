package plan

import (
	"sort"

	"github.com/bioprep/airgen/internal/model"
)

// Options parameterizes restraint generation.
type Options struct {
	// Policy selects bead partners per residue.
	Policy model.Policy

	// Radius is the proximity radius for model.PolicyRadius.
	Radius float64

	// TopK is the partner count for model.PolicyTopK.
	TopK int

	// Tolerance is added to the observed nearest-bead distance to
	// form each restraint's upper bound. The lower bound is 0.
	Tolerance float64
}

// Generate produces the restraint plan for one selection. Entries
// follow selection order exactly; the ordering is user-visible in the
// serialized restraints and is never sorted by residue number.
//
// A residue absent from the structure fails the whole plan with
// UnknownResidueError. No entry is silently skipped.
func Generate(sel model.ResidueSelection, structure *model.Structure, grid *model.SurfaceGrid, opts Options) (model.RestraintPlan, error) {
	if len(sel.Residues) == 0 {
		return model.RestraintPlan{}, &model.EmptySelectionError{Selection: sel.Index}
	}

	p := model.RestraintPlan{
		Index:     sel.Index,
		Selection: sel,
		Entries:   make([]model.RestraintEntry, 0, len(sel.Residues)),
	}

	for _, residue := range sel.Residues {
		coord, ok := structure.ResidueCoord(residue)
		if !ok {
			return model.RestraintPlan{}, &model.UnknownResidueError{
				Selection: sel.Index,
				Residue:   residue,
				Path:      structure.Path,
			}
		}

		entry := makeEntry(residue, coord, grid, opts)
		p.Entries = append(p.Entries, entry)
	}

	return p, nil
}

// beadDist pairs a bead with its distance to the residue coordinate.
type beadDist struct {
	id   int
	dist float64
}

// makeEntry selects the partner beads for one residue and derives the
// distance bounds.
func makeEntry(residue int, coord model.Vec3, grid *model.SurfaceGrid, opts Options) model.RestraintEntry {
	dists := make([]beadDist, len(grid.Beads))
	nearest := 0
	for i, bead := range grid.Beads {
		dists[i] = beadDist{id: bead.ID, dist: coord.Dist(bead.Position)}
		if dists[i].dist < dists[nearest].dist {
			nearest = i
		}
	}
	nearestDist := dists[nearest].dist

	var partners []beadDist
	switch opts.Policy {
	case model.PolicyNearest:
		partners = []beadDist{dists[nearest]}

	case model.PolicyTopK:
		k := opts.TopK
		if k > len(dists) {
			k = len(dists)
		}
		sorted := make([]beadDist, len(dists))
		copy(sorted, dists)
		// Ties broken on bead ID so identical inputs always pick
		// identical partner sets.
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].dist != sorted[j].dist {
				return sorted[i].dist < sorted[j].dist
			}
			return sorted[i].id < sorted[j].id
		})
		partners = sorted[:k]

	default: // model.PolicyRadius
		for _, bd := range dists {
			if bd.dist <= opts.Radius {
				partners = append(partners, bd)
			}
		}
		// No bead inside the radius: fall back to the single
		// nearest bead so the entry is never empty.
		if len(partners) == 0 {
			partners = []beadDist{dists[nearest]}
		}
	}

	ids := make([]int, len(partners))
	for i, bd := range partners {
		ids[i] = bd.id
	}
	sort.Ints(ids)

	return model.RestraintEntry{
		Residue:     residue,
		BeadIDs:     ids,
		Lower:       0,
		Upper:       nearestDist + opts.Tolerance,
		NearestDist: nearestDist,
	}
}
