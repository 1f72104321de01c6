package graph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFile_ResolvesRelativeImport(t *testing.T) {
	dir := fixture("ts_import_pair")
	resolver := NewResolver(dir)

	imports, err := extractFile(resolver, filepath.Join(dir, "main.ts"))
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.True(t, imports[0].Resolved)
	assert.Equal(t, filepath.Clean(filepath.Join(dir, "user.ts")), imports[0].ResolvedPath)
}

func TestExtractFile_NoImports(t *testing.T) {
	dir := fixture("ts_singletons")
	resolver := NewResolver(dir)

	imports, err := extractFile(resolver, filepath.Join(dir, "w.ts"))
	require.NoError(t, err)
	assert.Empty(t, imports)
}
