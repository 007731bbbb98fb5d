package main

import (
	"strings"
	"testing"
)

// TestVersionCmd tests the version output format.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, expected := range []string{"airgen ", "commit ", "built "} {
		if !strings.Contains(out, expected) {
			t.Errorf("version output missing %q:\n%s", expected, out)
		}
	}
}

// TestGetVersionFallback tests the fallback when no ldflags are set.
func TestGetVersionFallback(t *testing.T) {
	t.Parallel()

	if v := getVersion(); v == "" {
		t.Error("getVersion should never be empty")
	}
	if c := getCommit(); c == "" {
		t.Error("getCommit should never be empty")
	}
	if d := getDate(); d == "" {
		t.Error("getDate should never be empty")
	}
}
