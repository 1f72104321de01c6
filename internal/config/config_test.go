package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_ParsesDepvizYML(t *testing.T) {
	dir := t.TempDir()
	content := `
outputDir: dist/depviz
excludeDirs: [vendor, coverage]
resolutions: [0.5, 1.0, 1.5]
maxLevels: 5
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "depviz.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "dist/depviz", cfg.OutputDir)
	assert.Equal(t, []string{"vendor", "coverage"}, cfg.ExcludeDirs)
	assert.Equal(t, []float64{0.5, 1.0, 1.5}, cfg.Resolutions)
	assert.Equal(t, 5, cfg.MaxLevels)
	assert.True(t, cfg.Verbose)
}

func TestLoad_PrefersYmlOverYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "depviz.yml"), []byte("outputDir: from-yml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "depviz.yaml"), []byte("outputDir: from-yaml\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yml", cfg.OutputDir)
}
