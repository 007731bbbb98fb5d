package model

import "fmt"

// Policy selects how partner beads are chosen for each restrained
// residue. The source data gives no single right answer, so the
// policy is configurable with PolicyRadius as the documented default.
type Policy string

const (
	// PolicyRadius restrains the residue to every bead within the
	// proximity radius, falling back to the single nearest bead
	// when the radius captures none. The fallback guarantees no
	// entry is ever empty.
	PolicyRadius Policy = "radius"

	// PolicyNearest restrains the residue to its single nearest
	// bead.
	PolicyNearest Policy = "nearest"

	// PolicyTopK restrains the residue to its K nearest beads.
	PolicyTopK Policy = "topk"
)

// ParsePolicy converts a user-supplied policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRadius, PolicyNearest, PolicyTopK:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown bead selection policy %q (valid: radius, nearest, topk)", s)
}

// String returns the policy name.
func (p Policy) String() string {
	return string(p)
}
