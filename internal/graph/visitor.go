package graph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// rawImport is a single import/require/export-from construct found by the
// visitor, before resolution. Identifiers holds the identifier names of the
// construct's import clause (default/named/namespace bindings, plus the
// imported name of an aliased named specifier), which feeds the
// source-map fallback's "at least one imported identifier" precondition.
type rawImport struct {
	Specifier   string
	Identifiers []string
}

// walkImports walks root and collects every import-shaped construct spec.md
// §4.2 names: static import declarations, export-from re-exports, literal
// dynamic import(), and literal require() (including require(x).member,
// which is just a require() call nested under a member_expression — the
// recursive walk finds the inner call regardless of what wraps it).
func walkImports(root *tree_sitter.Node, source []byte) []rawImport {
	var out []rawImport

	cursor := root.Walk()
	defer cursor.Close()

	var visit func()
	visit = func() {
		node := cursor.Node()
		switch node.Kind() {
		case "import_statement":
			out = append(out, importStatementSpecifier(node, source))

		case "export_statement":
			if ri, ok := exportFromSpecifier(node, source); ok {
				out = append(out, ri)
			}

		case "call_expression":
			if ri, ok := dynamicImportSpecifier(node, source); ok {
				out = append(out, ri)
			} else if ri, ok := requireSpecifier(node, source); ok {
				out = append(out, ri)
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

	return filterEmpty(out)
}

func filterEmpty(in []rawImport) []rawImport {
	out := make([]rawImport, 0, len(in))
	for _, ri := range in {
		if ri.Specifier != "" {
			out = append(out, ri)
		}
	}
	return out
}

// importStatementSpecifier handles `import ... from "spec"` in all of its
// default/namespace/named forms, collecting the bound local identifiers.
func importStatementSpecifier(node *tree_sitter.Node, source []byte) rawImport {
	ri := rawImport{Specifier: stringFieldOrChild(node, source, "source")}

	clause := node.ChildByFieldName("import")
	if clause == nil {
		// Older grammar revisions expose the clause as a bare child rather
		// than a named field; fall back to scanning children.
		for i := uint(0); i < node.ChildCount(); i++ {
			if c := node.Child(i); c != nil && c.Kind() == "import_clause" {
				clause = c
				break
			}
		}
	}
	if clause != nil {
		ri.Identifiers = collectBoundIdentifiers(clause, source)
	}
	return ri
}

// collectBoundIdentifiers walks an import_clause node collecting every
// identifier in it: the default import, the namespace import, and for each
// named specifier both its imported name and its local alias (if any).
// A name may appear more than once in the result.
func collectBoundIdentifiers(clause *tree_sitter.Node, source []byte) []string {
	var names []string
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "identifier":
			names = append(names, n.Utf8Text(source))
		case "import_specifier":
			if local := n.ChildByFieldName("name"); local != nil {
				names = append(names, local.Utf8Text(source))
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			if c := n.Child(i); c != nil {
				walk(c)
			}
		}
	}
	walk(clause)
	return names
}

// exportFromSpecifier handles `export * from "spec"` and
// `export { a, b } from "spec"`.
func exportFromSpecifier(node *tree_sitter.Node, source []byte) (rawImport, bool) {
	src := stringFieldOrChild(node, source, "source")
	if src == "" {
		return rawImport{}, false
	}
	return rawImport{Specifier: src}, true
}

// dynamicImportSpecifier handles `import("spec")` where the callee is the
// special `import` keyword node and the sole argument is a string literal.
func dynamicImportSpecifier(node *tree_sitter.Node, source []byte) (rawImport, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "import" {
		return rawImport{}, false
	}
	args := node.ChildByFieldName("arguments")
	lit := firstStringArg(args, source)
	if lit == "" {
		return rawImport{}, false
	}
	return rawImport{Specifier: lit}, true
}

// requireSpecifier handles `require("spec")`, including when the call is
// nested under a member expression (`require("spec").member`) — the
// recursive walk in walkImports finds this call_expression regardless.
func requireSpecifier(node *tree_sitter.Node, source []byte) (rawImport, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" || fn.Utf8Text(source) != "require" {
		return rawImport{}, false
	}
	args := node.ChildByFieldName("arguments")
	lit := firstStringArg(args, source)
	if lit == "" {
		return rawImport{}, false
	}
	return rawImport{Specifier: lit}, true
}

// firstStringArg returns the unquoted text of the first argument of args if
// it is a string literal, else "".
func firstStringArg(args *tree_sitter.Node, source []byte) string {
	if args == nil {
		return ""
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		c := args.Child(i)
		if c == nil {
			continue
		}
		if c.Kind() == "string" {
			return unquote(c.Utf8Text(source))
		}
		// Skip punctuation children (parens/commas) without stopping the
		// search — the first *argument*, not the first child, is what
		// matters.
		if c.Kind() == "(" || c.Kind() == ")" || c.Kind() == "," {
			continue
		}
		// First real argument wasn't a string literal.
		return ""
	}
	return ""
}

// stringFieldOrChild reads a string-literal field (or, failing that, the
// first string-kind child) and returns its unquoted text.
func stringFieldOrChild(node *tree_sitter.Node, source []byte, field string) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			if c := node.Child(i); c != nil && c.Kind() == "string" {
				n = c
				break
			}
		}
	}
	if n == nil {
		return ""
	}
	return unquote(n.Utf8Text(source))
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}
