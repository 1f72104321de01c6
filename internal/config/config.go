// Package config loads project-level overrides for the graph and labeler
// pipelines from a depviz.yml file at the project root.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from depviz.yml. Every
// field is optional; a zero-value ProjectConfig leaves every pipeline default
// untouched.
type ProjectConfig struct {
	// OutputDir is where exported JSON/diagnostic artifacts are written.
	OutputDir string `yaml:"outputDir,omitempty"`

	// ExcludeDirs appends additional directory names to the default
	// File Discovery skip set.
	ExcludeDirs []string `yaml:"excludeDirs,omitempty"`

	// Resolutions overrides the default Louvain resolution sweep.
	Resolutions []float64 `yaml:"resolutions,omitempty"`

	// MaxLevels overrides the default Louvain level cap (clamped 1..20).
	MaxLevels int `yaml:"maxLevels,omitempty"`

	Verbose bool `yaml:"verbose,omitempty"`
}

// Load attempts to read depviz.yml or depviz.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"depviz.yml", "depviz.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
