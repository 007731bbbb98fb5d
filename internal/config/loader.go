package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bioprep/airgen/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".airgen"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide whether that is fatal based on whether the
// user asked for the file explicitly.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk configuration. Every field is optional; zero
// values leave the corresponding Config default untouched, so a file
// only has to name what it changes.
type File struct {
	// Surface overrides the grid dimensions.
	Surface struct {
		XSize    float64 `yaml:"x_size"`
		YSize    float64 `yaml:"y_size"`
		Spacing  float64 `yaml:"spacing"`
		Standoff float64 `yaml:"standoff"`
	} `yaml:"surface"`

	// Restraints overrides the bead selection policy and bounds.
	Restraints struct {
		Policy    string  `yaml:"policy"`
		Radius    float64 `yaml:"radius"`
		TopK      int     `yaml:"top_k"`
		Tolerance float64 `yaml:"tolerance"`
	} `yaml:"restraints"`

	// Output overrides the restraint file prefix.
	Output struct {
		Prefix string `yaml:"prefix"`
	} `yaml:"output"`
}

// LoadConfigFile loads a .airgen YAML file. A missing file returns
// ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// ApplyTo copies the file's non-zero settings onto the Config.
// CLI flags the user actually set are applied after this, so the
// precedence is defaults < config file < explicit flags.
func (f *File) ApplyTo(cfg *Config) error {
	if f.Surface.XSize > 0 {
		cfg.XSize = f.Surface.XSize
	}
	if f.Surface.YSize > 0 {
		cfg.YSize = f.Surface.YSize
	}
	if f.Surface.Spacing > 0 {
		cfg.Spacing = f.Surface.Spacing
	}
	if f.Surface.Standoff > 0 {
		cfg.Standoff = f.Surface.Standoff
	}

	if f.Restraints.Policy != "" {
		policy, err := model.ParsePolicy(f.Restraints.Policy)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		cfg.Policy = policy
	}
	if f.Restraints.Radius > 0 {
		cfg.Radius = f.Restraints.Radius
	}
	if f.Restraints.TopK > 0 {
		cfg.TopK = f.Restraints.TopK
	}
	if f.Restraints.Tolerance > 0 {
		cfg.Tolerance = f.Restraints.Tolerance
	}

	if f.Output.Prefix != "" {
		cfg.OutputPrefix = f.Output.Prefix
	}
	return nil
}

// FindConfigFile searches for the configuration file:
// an explicit path wins, then .airgen in the current directory, then
// .airgen in the home directory. Returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
