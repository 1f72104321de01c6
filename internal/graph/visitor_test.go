package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseImports(t *testing.T, dialect Dialect, source string) []rawImport {
	t.Helper()
	tree, err := parseTree(dialect, []byte(source))
	require.NoError(t, err)
	defer tree.Close()
	return walkImports(tree.RootNode(), []byte(source))
}

func TestWalkImports_StaticImportForms(t *testing.T) {
	src := `
import def from "./default";
import * as ns from "./namespace";
import { a, b as bLocal } from "./named";
`
	imports := parseImports(t, DialectTS, src)
	require.Len(t, imports, 3)

	assert.Equal(t, "./default", imports[0].Specifier)
	assert.Contains(t, imports[0].Identifiers, "def")

	assert.Equal(t, "./namespace", imports[1].Specifier)
	assert.Contains(t, imports[1].Identifiers, "ns")

	assert.Equal(t, "./named", imports[2].Specifier)
	assert.Contains(t, imports[2].Identifiers, "a")
	assert.Contains(t, imports[2].Identifiers, "bLocal")
}

func TestWalkImports_ExportFrom(t *testing.T) {
	src := `
export * from "./reexport-all";
export { thing } from "./reexport-named";
`
	imports := parseImports(t, DialectTS, src)
	require.Len(t, imports, 2)
	assert.Equal(t, "./reexport-all", imports[0].Specifier)
	assert.Equal(t, "./reexport-named", imports[1].Specifier)
}

func TestWalkImports_DynamicImport(t *testing.T) {
	src := `const mod = await import("./lazy");`
	imports := parseImports(t, DialectTS, src)
	require.Len(t, imports, 1)
	assert.Equal(t, "./lazy", imports[0].Specifier)
}

func TestWalkImports_Require(t *testing.T) {
	src := `const fs = require("fs");`
	imports := parseImports(t, DialectJS, src)
	require.Len(t, imports, 1)
	assert.Equal(t, "fs", imports[0].Specifier)
}

func TestWalkImports_RequireMember(t *testing.T) {
	src := `const readFile = require("fs").readFile;`
	imports := parseImports(t, DialectJS, src)
	require.Len(t, imports, 1)
	assert.Equal(t, "fs", imports[0].Specifier)
}

func TestWalkImports_DynamicImportNonLiteralIsIgnored(t *testing.T) {
	src := `const mod = await import(somePath);`
	imports := parseImports(t, DialectTS, src)
	assert.Empty(t, imports)
}

func TestWalkImports_NoImports(t *testing.T) {
	src := `export function three(): string { return "three"; }`
	imports := parseImports(t, DialectTS, src)
	assert.Empty(t, imports)
}
