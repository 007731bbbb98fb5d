package model

// RestraintEntry is one ambiguous distance restraint: the residue is
// restrained to any one of the candidate beads, satisfied when at
// least one bead falls within the distance bounds. The bead set plus
// a single pair of bounds is the whole restraint; it is never
// expanded into individual point-to-point constraints.
type RestraintEntry struct {
	// Residue is the restrained residue's sequence number.
	Residue int `json:"residue"`

	// BeadIDs are the candidate partner beads, in ascending bead
	// order. Any one of them satisfies the restraint.
	BeadIDs []int `json:"bead_ids"`

	// Lower and Upper are the distance bounds in Angstroms.
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`

	// NearestDist is the observed distance from the residue's
	// representative coordinate to its nearest bead. Kept for the
	// run summary; the bounds are derived from it.
	NearestDist float64 `json:"nearest_dist"`
}

// RestraintPlan is the complete restraint set generated from exactly
// one residue selection. Plans are independent: N selections produce
// N plans, each owned exclusively by the invocation result.
type RestraintPlan struct {
	// Index is the 1-based plan number, equal to the originating
	// selection's command-line position. It names the output file.
	Index int `json:"index"`

	// Selection is the residue selection this plan was generated
	// from.
	Selection ResidueSelection `json:"selection"`

	// Entries holds one restraint per selected residue, in
	// selection order. The ordering is user-visible in the
	// serialized output and is never sorted.
	Entries []RestraintEntry `json:"entries"`
}

// Len returns the number of restraint entries in the plan.
// It always equals the number of residues in the originating
// selection; no entry is ever silently skipped.
func (p *RestraintPlan) Len() int {
	return len(p.Entries)
}
