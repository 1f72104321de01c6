package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSourceMapForFile_ExternalMap(t *testing.T) {
	dir := t.TempDir()
	mapContent := `{"version":3,"sources":["../src/widget.ts"],"names":["widget"],"mappings":"AAAA,MAAM,SAASA,EAAM"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget.js.map"), []byte(mapContent), 0o644))

	compiled := []byte("module.exports = {};\n//# sourceMappingURL=widget.js.map\n")
	compiledPath := filepath.Join(dir, "widget.js")
	require.NoError(t, os.WriteFile(compiledPath, compiled, 0o644))

	sm, ok := loadSourceMapForFile(compiledPath, compiled)
	require.True(t, ok)
	assert.Equal(t, []string{"../src/widget.ts"}, sm.Sources)
	assert.Equal(t, []string{"widget"}, sm.Names)
}

func TestDecodeVLQGroup(t *testing.T) {
	fields, ok := decodeVLQGroup("AAAA")
	require.True(t, ok)
	assert.Equal(t, []int{0, 0, 0, 0}, fields)
}

func TestExtractSourceMappingURL(t *testing.T) {
	src := []byte("var x = 1;\n//# sourceMappingURL=foo.js.map\n")
	assert.Equal(t, "foo.js.map", extractSourceMappingURL(src))
}

func TestExtractSourceMappingURL_None(t *testing.T) {
	src := []byte("var x = 1;\n")
	assert.Equal(t, "", extractSourceMappingURL(src))
}

func TestResolveViaSourceMap_NoMatchingName(t *testing.T) {
	sm := &sourceMap{
		dir:      "/proj",
		Sources:  []string{"../src/widget.ts"},
		Names:    []string{"somethingElse"},
		Mappings: "AAAA",
	}
	_, ok := resolveViaSourceMap(sm, []string{"widget"})
	assert.False(t, ok)
}
