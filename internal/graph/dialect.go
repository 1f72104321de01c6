package graph

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Dialect is a parse dialect selected from a file's extension, per spec.md
// §4.2: "tsx, ts, jsx, mjs, cjs, otherwise unambiguous JS with JSX+module
// for js, else default unambiguous."
type Dialect int

const (
	DialectUnambiguous Dialect = iota
	DialectTS
	DialectTSX
	DialectJS
	DialectJSX
	DialectMJS
	DialectCJS
)

// DialectForExtension selects a Dialect from a file extension (without the
// leading dot).
func DialectForExtension(ext string) Dialect {
	switch ext {
	case "tsx":
		return DialectTSX
	case "ts":
		return DialectTS
	case "jsx":
		return DialectJSX
	case "mjs":
		return DialectMJS
	case "cjs":
		return DialectCJS
	case "js":
		return DialectJS
	default:
		return DialectUnambiguous
	}
}

// grammarFor returns the tree-sitter grammar backing a Dialect. TypeScript's
// own grammars handle .ts and .tsx files; everything else (including the
// unambiguous/default case) is parsed with the JavaScript grammar, which
// tolerates both ESM and CommonJS syntax.
func grammarFor(d Dialect) *tree_sitter.Language {
	switch d {
	case DialectTS:
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case DialectTSX:
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	default:
		return tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	}
}

// parseTree parses source under the grammar selected for dialect, returning
// the resulting tree-sitter tree. Callers must Close() the returned tree.
func parseTree(dialect Dialect, source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	lang := grammarFor(dialect)
	if err := parser.SetLanguage(lang); err != nil {
		return nil, err
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errNilTree
	}
	return tree, nil
}

var errNilTree = parseError("tree-sitter returned a nil tree")

type parseError string

func (e parseError) Error() string { return string(e) }
