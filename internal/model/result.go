package model

import "time"

// RunParams records the knobs a run was generated with, for
// reproducibility in summaries and the history database.
type RunParams struct {
	XSize     float64 `json:"x_size"`
	YSize     float64 `json:"y_size"`
	Spacing   float64 `json:"spacing"`
	Standoff  float64 `json:"standoff"`
	Policy    Policy  `json:"policy"`
	Radius    float64 `json:"radius"`
	TopK      int     `json:"top_k"`
	Tolerance float64 `json:"tolerance"`
	Anchor    string  `json:"anchor"`
}

// RunResult is the complete output of one invocation: the shared
// frame and grid plus one plan per selection, in selection order.
type RunResult struct {
	// PDBPath is the structure the restraints were generated for.
	PDBPath string `json:"pdb_path"`

	// GeneratedAt is the run timestamp.
	GeneratedAt time.Time `json:"generated_at"`

	// Params are the generation parameters.
	Params RunParams `json:"params"`

	// Frame is the invocation's single reference frame.
	Frame ReferenceFrame `json:"frame"`

	// Grid is the shared surface grid.
	Grid *SurfaceGrid `json:"grid"`

	// Plans holds one restraint plan per selection, ordered by
	// selection index.
	Plans []RestraintPlan `json:"plans"`
}

// TotalRestraints returns the restraint entry count across all plans.
func (r *RunResult) TotalRestraints() int {
	total := 0
	for i := range r.Plans {
		total += r.Plans[i].Len()
	}
	return total
}
