package model

import (
	"errors"
	"testing"
)

// TestParseSelection tests parsing of single residue groups.
func TestParseSelection(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		group    string
		expected []int
		wantErr  bool
	}{
		{"simple group", "19,83,145", []int{19, 83, 145}, false},
		{"input order preserved", "145,19,83", []int{145, 19, 83}, false},
		{"single residue", "42", []int{42}, false},
		{"spaces tolerated", " 19 , 83 ", []int{19, 83}, false},
		{"trailing comma tolerated", "19,83,", []int{19, 83}, false},
		{"negative numbers allowed", "-1,5", []int{-1, 5}, false},
		{"duplicate rejected", "19,83,19", nil, true},
		{"non-numeric rejected", "19,ala", nil, true},
		{"empty group rejected", "", nil, true},
		{"only commas rejected", ",,,", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sel, err := ParseSelection(1, tc.group)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sel.Residues) != len(tc.expected) {
				t.Fatalf("got %d residues, expected %d", len(sel.Residues), len(tc.expected))
			}
			for i, n := range tc.expected {
				if sel.Residues[i] != n {
					t.Errorf("residue %d: got %d, expected %d", i, sel.Residues[i], n)
				}
			}
		})
	}
}

// TestParseSelectionEmptyError tests that an empty group surfaces as
// EmptySelectionError with the right selection index.
func TestParseSelectionEmptyError(t *testing.T) {
	t.Parallel()

	_, err := ParseSelection(3, "")
	var emptyErr *EmptySelectionError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptySelectionError, got %v", err)
	}
	if emptyErr.Selection != 3 {
		t.Errorf("got selection index %d, expected 3", emptyErr.Selection)
	}
}

// TestParseSelections tests multi-group parsing and index assignment.
func TestParseSelections(t *testing.T) {
	t.Parallel()

	selections, err := ParseSelections([]string{"19,83,145", "98,101,126"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selections) != 2 {
		t.Fatalf("got %d selections, expected 2", len(selections))
	}
	if selections[0].Index != 1 || selections[1].Index != 2 {
		t.Errorf("indices: got %d and %d, expected 1 and 2",
			selections[0].Index, selections[1].Index)
	}

	// One bad group fails the whole parse.
	if _, err := ParseSelections([]string{"19,83", "bad"}); err == nil {
		t.Error("expected error for invalid second group")
	}
}

// TestAnchorUnion tests that the union preserves first-appearance
// order and drops cross-selection duplicates.
func TestAnchorUnion(t *testing.T) {
	t.Parallel()

	selections := []ResidueSelection{
		{Index: 1, Residues: []int{145, 19, 83}},
		{Index: 2, Residues: []int{98, 19, 101}},
	}

	union := AnchorUnion(selections)
	expected := []int{145, 19, 83, 98, 101}
	if len(union) != len(expected) {
		t.Fatalf("got %d residues, expected %d", len(union), len(expected))
	}
	for i, n := range expected {
		if union[i] != n {
			t.Errorf("position %d: got %d, expected %d", i, union[i], n)
		}
	}
}
