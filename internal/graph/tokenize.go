package graph

import (
	"os"
	"strings"

	"github.com/iancoleman/strcase"
)

// minTokenLength is the shortest token either tokenizer keeps; it filters
// out the noise short identifiers and path segments ("id", "ok", "a")
// would otherwise contribute to the TF-IDF corpus.
const minTokenLength = 3

// identifierKinds are the tree-sitter node kinds tokenizeFile treats as
// identifiers worth scoring — ordinary bindings, object/class member names,
// and TypeScript type references. Anonymous keyword tokens never surface
// under these kinds, so no separate keyword filter is needed.
var identifierKinds = map[string]bool{
	"identifier":                    true,
	"property_identifier":           true,
	"shorthand_property_identifier": true,
	"type_identifier":               true,
}

// tokenizeFile extracts every identifier-shaped token from a source file,
// lower-snake-cases each to split compound names at word boundaries, and
// keeps the resulting words that meet minTokenLength. "undefined" is
// dropped outright since it carries no project-specific signal.
func tokenizeFile(absPath string) ([]string, error) {
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

	var tokens []string
	cursor := tree.RootNode().Walk()
	defer cursor.Close()

	var visit func()
	visit = func() {
		node := cursor.Node()
		if identifierKinds[node.Kind()] {
			ident := node.Utf8Text(source)
			if ident != "undefined" {
				tokens = append(tokens, splitWords(ident)...)
			}
		}
		if cursor.GotoFirstChild() {
			visit()
			for cursor.GotoNextSibling() {
				visit()
			}
			cursor.GotoParent()
		}
	}
	visit()

	return tokens, nil
}

// tokenizePath breaks a file's path, relative to projectRoot, into lowercase
// alphanumeric words meeting minTokenLength, splitting camelCase/PascalCase
// boundaries the same way splitWords does — the second of the two
// tokenization channels the labeler's TF-IDF score combines.
func tokenizePath(absPath, projectRoot string) []string {
	rel := strings.TrimPrefix(absPath, projectRoot)
	lower := strcase.ToSnake(rel)

	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() >= minTokenLength {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// splitWords lower-snake-cases ident (splitting camelCase, PascalCase, and
// existing snake/kebab boundaries) and keeps the resulting parts meeting
// minTokenLength.
func splitWords(ident string) []string {
	snake := strcase.ToSnake(ident)
	parts := strings.Split(snake, "_")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) >= minTokenLength {
			out = append(out, p)
		}
	}
	return out
}
