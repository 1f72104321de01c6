package graph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// resolveExtensions is the probe order spec.md §4.2 names for the Resolver.
var resolveExtensions = []string{
	".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs", ".json", ".d.ts",
}

// mainFieldOrder is the package.json main-field preference order spec.md
// §4.2 names.
var mainFieldOrder = []string{"types", "typings", "module", "main"}

// Resolver resolves raw import specifiers against Node-style and
// TypeScript-style module resolution. It is built once per BuildGraph call
// and is safe to share (read-only) across extractor workers.
type Resolver struct {
	projectRoot string
	tsconfig    *tsconfigPaths
}

// tsconfigPaths holds the subset of tsconfig.json compilerOptions this
// Resolver understands: baseUrl and a path-alias map.
type tsconfigPaths struct {
	baseDir string              // absolute directory baseUrl is relative to
	baseURL string              // compilerOptions.baseUrl, "" if absent
	paths   map[string][]string // compilerOptions.paths
}

// NewResolver builds a Resolver for projectRoot, auto-discovering the
// nearest tsconfig.json at the project root (spec.md §4.2).
func NewResolver(projectRoot string) *Resolver {
	r := &Resolver{projectRoot: projectRoot}
	r.tsconfig = loadTsconfig(projectRoot)
	return r
}

// Resolve resolves specifier as imported from sourceFile (an absolute
// path), returning the resolved absolute path and true on success. Failed
// resolutions return ("", false) and are silently dropped by the caller,
// per spec.md §4.2/§7 (ResolutionFailure).
func (r *Resolver) Resolve(specifier, sourceFile string) (string, bool) {
	if specifier == "" {
		return "", false
	}

	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") || strings.HasPrefix(specifier, "/") {
		base := specifier
		if !filepath.IsAbs(specifier) {
			base = filepath.Join(filepath.Dir(sourceFile), specifier)
		}
		return probeFileOrIndex(base)
	}

	// TS path-alias resolution.
	if r.tsconfig != nil {
		if resolved, ok := r.tsconfig.resolve(specifier); ok {
			if path, ok := probeFileOrIndex(resolved); ok {
				return path, true
			}
		}
	}

	// Bare package specifier: Node-style node_modules walk upward from the
	// importing file's directory.
	return resolveNodeModules(specifier, filepath.Dir(sourceFile))
}

// IsBare reports whether specifier is a bare (package) import — neither
// relative nor absolute — which is the precondition for the source-map
// fallback in spec.md §4.2.
func IsBare(specifier string) bool {
	return !strings.HasPrefix(specifier, "./") &&
		!strings.HasPrefix(specifier, "../") &&
		!strings.HasPrefix(specifier, "/")
}

// probeFileOrIndex tries base as-is, then base+ext for each resolveExtension,
// then base/index+ext for each extension (directory-with-index resolution).
func probeFileOrIndex(base string) (string, bool) {
	base = filepath.Clean(base)
	if fileExists(base) {
		return base, true
	}
	for _, ext := range resolveExtensions {
		candidate := base + ext
		if fileExists(candidate) {
			return candidate, true
		}
	}
	for _, ext := range resolveExtensions {
		candidate := filepath.Join(base, "index"+ext)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// resolveNodeModules walks upward from startDir looking for a node_modules
// directory containing the requested package, applying the main-field
// order for a bare package root and falling back to direct subpath probing
// for scoped subpaths (e.g. "pkg/sub/path").
func resolveNodeModules(specifier, startDir string) (string, bool) {
	pkgName, subpath := splitPackageSpecifier(specifier)

	dir := startDir
	for {
		nm := filepath.Join(dir, "node_modules", pkgName)
		if info, err := os.Stat(nm); err == nil && info.IsDir() {
			if subpath == "" {
				if resolved, ok := resolvePackageMain(nm); ok {
					return resolved, true
				}
			} else if resolved, ok := probeFileOrIndex(filepath.Join(nm, subpath)); ok {
				return resolved, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// splitPackageSpecifier splits a bare specifier into its package name and
// subpath ("@scope/pkg/sub" -> "@scope/pkg", "sub"; "pkg/sub" -> "pkg",
// "sub"; "pkg" -> "pkg", "").
func splitPackageSpecifier(specifier string) (pkgName, subpath string) {
	if strings.HasPrefix(specifier, "@") {
		parts := strings.SplitN(specifier, "/", 3)
		if len(parts) < 2 {
			return specifier, ""
		}
		pkgName = parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			subpath = parts[2]
		}
		return pkgName, subpath
	}
	parts := strings.SplitN(specifier, "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// packageJSON is a minimal view of a package.json for main-field resolution.
type packageJSON struct {
	Types   string `json:"types"`
	Typings string `json:"typings"`
	Module  string `json:"module"`
	Main    string `json:"main"`
}

func resolvePackageMain(pkgDir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	if err != nil {
		return probeFileOrIndex(filepath.Join(pkgDir, "index"))
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return probeFileOrIndex(filepath.Join(pkgDir, "index"))
	}
	fields := map[string]string{
		"types": pkg.Types, "typings": pkg.Typings, "module": pkg.Module, "main": pkg.Main,
	}
	for _, key := range mainFieldOrder {
		if v := fields[key]; v != "" {
			if resolved, ok := probeFileOrIndex(filepath.Join(pkgDir, v)); ok {
				return resolved, true
			}
		}
	}
	return probeFileOrIndex(filepath.Join(pkgDir, "index"))
}

// --- tsconfig.json discovery ---

type tsconfigFile struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// loadTsconfig auto-discovers tsconfig.json at projectRoot (spec.md §4.2
// names "automatic discovery of the nearest tsconfig.json from the project
// root" — this implementation checks the project root itself, the
// resolution contract's only required anchor).
func loadTsconfig(projectRoot string) *tsconfigPaths {
	data, err := os.ReadFile(filepath.Join(projectRoot, "tsconfig.json"))
	if err != nil {
		return nil
	}
	var cfg tsconfigFile
	if err := json.Unmarshal(stripJSONComments(data), &cfg); err != nil {
		return nil
	}
	if len(cfg.CompilerOptions.Paths) == 0 {
		return nil
	}
	baseURL := cfg.CompilerOptions.BaseURL
	if baseURL == "" {
		baseURL = "."
	}
	return &tsconfigPaths{
		baseDir: filepath.Join(projectRoot, baseURL),
		baseURL: baseURL,
		paths:   cfg.CompilerOptions.Paths,
	}
}

// resolve maps a bare specifier through the tsconfig paths table, returning
// an unprobed candidate absolute path.
func (t *tsconfigPaths) resolve(specifier string) (string, bool) {
	for pattern, targets := range t.paths {
		prefix, hasStar := strings.CutSuffix(pattern, "*")
		if hasStar {
			if !strings.HasPrefix(specifier, prefix) {
				continue
			}
			rest := strings.TrimPrefix(specifier, prefix)
			for _, target := range targets {
				targetPrefix, _ := strings.CutSuffix(target, "*")
				return filepath.Join(t.baseDir, targetPrefix+rest), true
			}
		} else if specifier == pattern {
			for _, target := range targets {
				return filepath.Join(t.baseDir, target), true
			}
		}
	}
	return "", false
}

// stripJSONComments removes // line comments so tsconfig.json's common
// JSONC dialect parses with encoding/json. It does not attempt to handle
// comment markers inside string literals with escaped quotes — adequate
// for the tsconfig files real projects ship.
func stripJSONComments(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		inString := false
		for j := 0; j < len(line); j++ {
			if line[j] == '"' {
				inString = !inString
			} else if !inString && strings.HasPrefix(line[j:], "//") {
				lines[i] = line[:j]
				break
			}
		}
	}
	return []byte(strings.Join(lines, "\n"))
}
