package graph

import (
	"os"
	"path/filepath"
)

// skipDirs names path components whose entire subtree File Discovery
// excludes.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".svelte-kit":  true,
}

// acceptExtensions names the file extensions (without the leading dot)
// File Discovery accepts.
var acceptExtensions = map[string]bool{
	"ts":  true,
	"tsx": true,
	"js":  true,
	"jsx": true,
	"mjs": true,
	"cjs": true,
}

// DiscoverFiles walks root recursively, applying the skip-directory and
// accept-extension rules, and returns a map from absolute path to a freshly
// allocated Node. extraSkipDirs names additional directories (e.g. from a
// project's depviz.yml excludeDirs) to exclude beyond the built-in set. The
// returned map is later used to decide whether an import target belongs to
// the project.
func DiscoverFiles(alloc *IDAllocator, root string, extraSkipDirs ...string) (map[string]Node, error) {
	out := make(map[string]Node)

	skip := make(map[string]bool, len(skipDirs)+len(extraSkipDirs))
	for name := range skipDirs {
		skip[name] = true
	}
	for _, name := range extraSkipDirs {
		skip[name] = true
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			name := entry.Name()
			path := filepath.Join(dir, name)
			if entry.IsDir() {
				if skip[name] {
					continue
				}
				if err := walk(path); err != nil {
					return err
				}
				continue
			}
			ext := extensionOf(name)
			if !acceptExtensions[ext] {
				continue
			}
			node := NewNode(alloc, path)
			out[path] = node
		}
		return nil
	}

	if err := walk(absRoot); err != nil {
		return nil, err
	}
	return out, nil
}

// extensionOf returns the file extension without its leading dot, or "" if
// the name has none.
func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return ext[1:]
}
