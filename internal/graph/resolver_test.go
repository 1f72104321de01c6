package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_RelativeExtensionProbing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.ts"), []byte("export const x = 1;"), 0o644))
	main := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(main, []byte("import './user';"), 0o644))

	r := NewResolver(dir)
	resolved, ok := r.Resolve("./user", main)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "user.ts"), resolved)
}

func TestResolver_DirectoryIndex(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "widgets")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "index.ts"), []byte("export const w = 1;"), 0o644))
	main := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(main, []byte("import './widgets';"), 0o644))

	r := NewResolver(dir)
	resolved, ok := r.Resolve("./widgets", main)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(sub, "index.ts"), resolved)
}

func TestResolver_FailedResolutionDropped(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(main, []byte("import './missing';"), 0o644))

	r := NewResolver(dir)
	_, ok := r.Resolve("./missing", main)
	assert.False(t, ok)
}

func TestResolver_TsconfigPathAlias(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "app", "widget.ts"), []byte("export const w = 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte(`{
  "compilerOptions": {
    "baseUrl": ".",
    "paths": { "@app/*": ["src/app/*"] }
  }
}`), 0o644))

	main := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(main, []byte("import '@app/widget';"), 0o644))

	r := NewResolver(dir)
	resolved, ok := r.Resolve("@app/widget", main)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "src", "app", "widget.ts"), resolved)
}

func TestIsBare(t *testing.T) {
	assert.True(t, IsBare("lodash"))
	assert.True(t, IsBare("@scope/pkg"))
	assert.False(t, IsBare("./local"))
	assert.False(t, IsBare("../local"))
	assert.False(t, IsBare("/abs"))
}
