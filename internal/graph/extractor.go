package graph

import (
	"os"
	"path/filepath"
	"strings"
)

// extractedImport is a raw import construct resolved (or not) to an
// absolute path, ready for graph assembly.
type extractedImport struct {
	ResolvedPath string
	Resolved     bool
}

// extractFile parses a single source file and returns every import
// construct it contains, resolved against resolver per spec.md §4.2:
// normal resolution first; when a bare specifier's resolution lands outside
// node_modules, the source-map fallback additionally recovers the
// original source behind a compiled re-export (if any) and contributes it
// as an extra imported node alongside the normally resolved one.
func extractFile(resolver *Resolver, absPath string) ([]extractedImport, error) {
	source, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	dialect := DialectForExtension(extensionOf(absPath))
	tree, err := parseTree(dialect, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	raw := walkImports(tree.RootNode(), source)

	out := make([]extractedImport, 0, len(raw))
	for _, ri := range raw {
		resolved, ok := resolver.Resolve(ri.Specifier, absPath)
		if !ok {
			// Failed resolutions are silently dropped, per spec.md §4.2/§7.
			continue
		}
		out = append(out, extractedImport{ResolvedPath: resolved, Resolved: true})

		if !IsBare(ri.Specifier) || isInsideNodeModules(resolved) {
			continue
		}
		if extra, ok := resolveViaSourceMapFallback(resolved, ri.Identifiers); ok {
			out = append(out, extractedImport{ResolvedPath: extra, Resolved: true})
		}
	}
	return out, nil
}

// isInsideNodeModules reports whether path has a node_modules path
// component, the precondition spec.md §4.2 places on the source-map
// fallback: it only applies to project-owned resolutions, never to
// dependencies already resolved into node_modules.
func isInsideNodeModules(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "node_modules" {
			return true
		}
	}
	return false
}

// resolveViaSourceMapFallback loads resolvedPath's `.map` (external or
// inline), per spec.md §4.2, and looks for a mapping whose bound name
// matches one of identifiers — recovering the original source file that
// introduced it, if the compiled file carries source-map information at
// all.
func resolveViaSourceMapFallback(resolvedPath string, identifiers []string) (string, bool) {
	if len(identifiers) == 0 {
		return "", false
	}
	source, err := os.ReadFile(resolvedPath)
	if err != nil {
		return "", false
	}
	sm, ok := loadSourceMapForFile(resolvedPath, source)
	if !ok {
		return "", false
	}
	return resolveViaSourceMap(sm, identifiers)
}
