package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ResidueSelection is one user-supplied group of residue numbers, a
// hypothesis about an interaction epitope. Order is the order the
// user wrote and is preserved through to the generated restraints.
// Independent selections are never merged; each yields its own plan.
type ResidueSelection struct {
	// Index is the 1-based position of this selection on the
	// command line. It names the plan and its output file.
	Index int `json:"index"`

	// Residues are the residue numbers in input order, unique
	// within the selection.
	Residues []int `json:"residues"`
}

// ParseSelection parses one comma-separated residue group such as
// "19,83,145". The 1-based index identifies the group in error
// messages and in the resulting selection.
//
// Duplicate residue numbers within a group are rejected: a duplicate
// almost always means a typo in the epitope list, and silently
// deduplicating would hide it.
func ParseSelection(index int, group string) (ResidueSelection, error) {
	sel := ResidueSelection{Index: index}

	seen := make(map[int]bool)
	for _, field := range strings.Split(group, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return ResidueSelection{}, fmt.Errorf("selection %d: invalid residue number %q", index, field)
		}
		if seen[n] {
			return ResidueSelection{}, fmt.Errorf("selection %d: duplicate residue number %d", index, n)
		}
		seen[n] = true
		sel.Residues = append(sel.Residues, n)
	}

	if len(sel.Residues) == 0 {
		return ResidueSelection{}, &EmptySelectionError{Selection: index}
	}
	return sel, nil
}

// ParseSelections parses all residue groups in command-line order,
// assigning 1-based indices.
func ParseSelections(groups []string) ([]ResidueSelection, error) {
	selections := make([]ResidueSelection, 0, len(groups))
	for i, group := range groups {
		sel, err := ParseSelection(i+1, group)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	return selections, nil
}

// AnchorUnion returns the union of residue numbers across all
// selections, in first-appearance order. The reference frame anchors
// on this union so that every selection sees the same surface.
func AnchorUnion(selections []ResidueSelection) []int {
	seen := make(map[int]bool)
	var union []int
	for _, sel := range selections {
		for _, n := range sel.Residues {
			if seen[n] {
				continue
			}
			seen[n] = true
			union = append(union, n)
		}
	}
	return union
}
