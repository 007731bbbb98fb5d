package main

import (
	"strings"
	"testing"
)

// TestRootHelp tests that the root command lists its subcommands.
func TestRootHelp(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, sub := range []string{"surface", "history", "init", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help missing subcommand %q:\n%s", sub, out)
		}
	}
}

// TestRootUnknownCommand tests rejection of unknown subcommands.
func TestRootUnknownCommand(t *testing.T) {
	t.Parallel()

	if _, err := executeCommand(t, "nonsense"); err == nil {
		t.Error("expected error for unknown subcommand")
	}
}

// TestSurfaceAlias tests that the historical command name still
// resolves.
func TestSurfaceAlias(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "z-surface-restraints", "--help")
	if err != nil {
		t.Fatalf("alias help failed: %v", err)
	}
	if !strings.Contains(out, "--residues") {
		t.Errorf("alias should resolve to the surface command:\n%s", out)
	}
}
