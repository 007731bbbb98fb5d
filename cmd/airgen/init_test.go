package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bioprep/airgen/internal/config"
)

// TestInitCmd tests template creation and overwrite protection.
func TestInitCmd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".airgen")

	out, err := executeCommand(t, "init", "--output", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("init should report the created path:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, section := range []string{"surface:", "restraints:", "output:"} {
		if !strings.Contains(string(data), section) {
			t.Errorf("template missing section %q", section)
		}
	}

	// Existing file is protected.
	if _, err := executeCommand(t, "init", "--output", path); err == nil {
		t.Error("expected error when file exists")
	}

	// --force overwrites.
	if _, err := executeCommand(t, "init", "--output", path, "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

// TestInitTemplateIsLoadable tests that the generated template parses
// back through the config loader and reproduces the defaults.
func TestInitTemplateIsLoadable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".airgen")
	if _, err := executeCommand(t, "init", "--output", path); err != nil {
		t.Fatal(err)
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("template should be valid YAML: %v", err)
	}

	cfg := config.NewConfig()
	if err := cf.ApplyTo(cfg); err != nil {
		t.Fatalf("template should apply cleanly: %v", err)
	}
	if cfg.Spacing != config.DefaultSpacing {
		t.Errorf("template should carry the default spacing, got %g", cfg.Spacing)
	}
	if cfg.Standoff != config.DefaultStandoff {
		t.Errorf("template should carry the default standoff, got %g", cfg.Standoff)
	}

	// The embedded template must stay structurally valid YAML even if
	// the comments change.
	var raw map[string]any
	if err := yaml.Unmarshal(configTemplate, &raw); err != nil {
		t.Fatalf("embedded template is not valid YAML: %v", err)
	}
}
