package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// atomLine formats one ATOM record with correct fixed columns.
func atomLine(serial int, name, resName string, resSeq int, x, y, z float64) string {
	paddedName := name
	if len(name) < 4 {
		paddedName = fmt.Sprintf(" %-3s", name)
	}
	return fmt.Sprintf("ATOM  %5d %4s %3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f           C",
		serial, paddedName, resName, resSeq, x, y, z, 1.0, 20.0)
}

// writeTestPDB writes a five-residue CA-only structure lying in the
// z=0 plane, so the derived surface normal points along +Z.
func writeTestPDB(t *testing.T, dir string) string {
	t.Helper()

	lines := []string{
		atomLine(1, "CA", "ALA", 10, 0, 0, 0),
		atomLine(2, "CA", "ALA", 20, 20, 0, 0),
		atomLine(3, "CA", "ALA", 30, 0, 20, 0),
		atomLine(4, "CA", "ALA", 40, 20, 20, 0),
		atomLine(5, "CA", "ALA", 50, 10, 10, 0),
		"END",
	}
	path := filepath.Join(dir, "test.pdb")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// executeCommand runs the CLI with the given arguments and returns
// captured stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// TestSurfaceEndToEnd tests a complete run: two selections against a
// planar structure, restraint tables and bead coordinates on disk.
func TestSurfaceEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdbPath := writeTestPDB(t, dir)
	prefix := filepath.Join(dir, "out")

	_, err := executeCommand(t,
		"surface",
		"--pdb", pdbPath,
		"--residues", "10,20,30",
		"--residues", "40,50",
		"--output", prefix,
		"--x-size", "40", "--y-size", "40", "--spacing", "20",
		"--no-history",
	)
	if err != nil {
		t.Fatalf("surface command failed: %v", err)
	}

	for _, plan := range []int{1, 2} {
		data, err := os.ReadFile(fmt.Sprintf("%s_%d.tbl", prefix, plan))
		if err != nil {
			t.Fatalf("missing restraint table for plan %d: %v", plan, err)
		}
		content := string(data)
		if !strings.Contains(content, "segid SURF") {
			t.Errorf("plan %d: restraints should reference the bead segid:\n%s", plan, content)
		}
	}

	tbl1, err := os.ReadFile(prefix + "_1.tbl")
	if err != nil {
		t.Fatal(err)
	}
	for _, residue := range []string{"assign (resid 10)", "assign (resid 20)", "assign (resid 30)"} {
		if !strings.Contains(string(tbl1), residue) {
			t.Errorf("plan 1 missing %q", residue)
		}
	}
	if strings.Contains(string(tbl1), "assign (resid 40)") {
		t.Error("plan 1 should not contain plan 2's residues")
	}

	beads, err := os.ReadFile(prefix + "_beads.pdb")
	if err != nil {
		t.Fatalf("missing bead coordinates: %v", err)
	}
	if !strings.Contains(string(beads), "HETATM") || !strings.HasSuffix(string(beads), "END\n") {
		t.Errorf("bead file malformed:\n%s", beads)
	}
}

// TestSurfacePositionalGroups tests that bare arguments become
// additional selection groups after the --residues groups.
func TestSurfacePositionalGroups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdbPath := writeTestPDB(t, dir)
	prefix := filepath.Join(dir, "out")

	_, err := executeCommand(t,
		"surface",
		"--pdb", pdbPath,
		"--residues", "10,20,30",
		"--output", prefix,
		"--no-history",
		"40,50",
	)
	if err != nil {
		t.Fatalf("surface command failed: %v", err)
	}

	tbl2, err := os.ReadFile(prefix + "_2.tbl")
	if err != nil {
		t.Fatalf("positional group should yield a second plan: %v", err)
	}
	if !strings.Contains(string(tbl2), "assign (resid 40)") {
		t.Errorf("plan 2 should restrain the positional group:\n%s", tbl2)
	}
}

// TestSurfaceJSONReport tests the machine-readable output.
func TestSurfaceJSONReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdbPath := writeTestPDB(t, dir)

	out, err := executeCommand(t,
		"surface",
		"--pdb", pdbPath,
		"--residues", "10,20,30,40",
		"--output", filepath.Join(dir, "out"),
		"--json",
		"--no-history",
	)
	if err != nil {
		t.Fatalf("surface command failed: %v", err)
	}

	var result struct {
		PDBPath string `json:"pdb_path"`
		Plans   []struct {
			Index int `json:"index"`
		} `json:"plans"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, out)
	}
	if result.PDBPath != pdbPath {
		t.Errorf("got pdb_path %q, expected %q", result.PDBPath, pdbPath)
	}
	if len(result.Plans) != 1 || result.Plans[0].Index != 1 {
		t.Errorf("unexpected plans: %+v", result.Plans)
	}
}

// TestSurfaceMarkdownSummary tests the optional run summary.
func TestSurfaceMarkdownSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdbPath := writeTestPDB(t, dir)
	prefix := filepath.Join(dir, "out")

	_, err := executeCommand(t,
		"surface",
		"--pdb", pdbPath,
		"--residues", "10,20,30",
		"--output", prefix,
		"--markdown",
		"--no-history",
	)
	if err != nil {
		t.Fatalf("surface command failed: %v", err)
	}

	data, err := os.ReadFile(prefix + "_summary.md")
	if err != nil {
		t.Fatalf("missing summary: %v", err)
	}
	for _, expected := range []string{"# Surface Restraint Summary", "## Plan 1"} {
		if !strings.Contains(string(data), expected) {
			t.Errorf("summary missing %q:\n%s", expected, data)
		}
	}
}

// TestSurfaceUnknownResidue tests that a selection naming an absent
// residue fails the whole run before any output is written.
func TestSurfaceUnknownResidue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdbPath := writeTestPDB(t, dir)
	prefix := filepath.Join(dir, "out")

	_, err := executeCommand(t,
		"surface",
		"--pdb", pdbPath,
		"--residues", "10,20,30",
		"--residues", "999",
		"--output", prefix,
		"--no-history",
	)
	if err == nil {
		t.Fatal("expected error for unknown residue")
	}
	if !strings.Contains(err.Error(), "999") {
		t.Errorf("error should name the residue: %v", err)
	}

	if _, statErr := os.Stat(prefix + "_1.tbl"); !os.IsNotExist(statErr) {
		t.Error("no restraint table should be written for a failed run")
	}
}

// TestSurfaceInputValidation tests flag-level rejections.
func TestSurfaceInputValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdbPath := writeTestPDB(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing pdb",
			args: []string{"surface", "--residues", "10"},
		},
		{
			name: "missing selections",
			args: []string{"surface", "--pdb", pdbPath},
		},
		{
			name: "bad policy",
			args: []string{"surface", "--pdb", pdbPath, "--residues", "10", "--policy", "bogus"},
		},
		{
			name: "non-numeric residue",
			args: []string{"surface", "--pdb", pdbPath, "--residues", "10,abc"},
		},
		{
			name: "negative spacing",
			args: []string{"surface", "--pdb", pdbPath, "--residues", "10", "--spacing", "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append(tt.args, "--output", filepath.Join(t.TempDir(), "out"), "--no-history")
			if _, err := executeCommand(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestSurfaceRecordsHistory tests that a run lands in the history
// database and that the history command reports it.
func TestSurfaceRecordsHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdbPath := writeTestPDB(t, dir)
	dbDir := filepath.Join(dir, "db")

	_, err := executeCommand(t,
		"surface",
		"--pdb", pdbPath,
		"--residues", "10,20,30",
		"--output", filepath.Join(dir, "out"),
		"--db-dir", dbDir,
	)
	if err != nil {
		t.Fatalf("surface command failed: %v", err)
	}

	out, err := executeCommand(t, "history", "--db-dir", dbDir, "--plans")
	if err != nil {
		t.Fatalf("history command failed: %v", err)
	}
	if !strings.Contains(out, pdbPath) {
		t.Errorf("history should list the structure path:\n%s", out)
	}
	if !strings.Contains(out, "residues 10,20,30") {
		t.Errorf("history should list the plan selection:\n%s", out)
	}
}
