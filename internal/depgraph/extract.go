package depgraph

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jspack/jspack/internal/config"
	"github.com/jspack/jspack/internal/ctxlog"
	"github.com/jspack/jspack/internal/jsparse"
	"github.com/jspack/jspack/internal/naming"
)

// Extractor reads a module's direct dependencies off its syntax tree,
// validating the require convention as it goes.
type Extractor struct {
	parser *jsparse.Parser
	layout *config.Layout
}

// NewExtractor returns an Extractor using the given shared parser cache.
func NewExtractor(parser *jsparse.Parser, layout *config.Layout) *Extractor {
	return &Extractor{parser: parser, layout: layout}
}

// DependenciesOf returns the identifiers the module directly depends on, in
// file order. The module's import block must consist of the leading run of
// `var` declarations, each binding exactly one require call, with bound
// names strictly ascending and matching the names derived from their
// require paths.
func (e *Extractor) DependenciesOf(ctx context.Context, id string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	path := naming.FileFor(e.layout, id)
	file, err := e.parser.Parse(ctx, path)
	if err != nil {
		return nil, err
	}

	var names, paths []string
	for _, stmt := range file.Statements() {
		// The import block is the leading run of non-block-scoped
		// declarations; the first other statement (usually the export
		// assignment) ends it.
		if stmt.Type() != "variable_declaration" {
			break
		}
		name, requirePath, err := requireBinding(file, stmt)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		paths = append(paths, requirePath)
	}

	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			return nil, &UnsortedImportsError{Path: file.Path, Prev: names[i-1], Next: names[i]}
		}
	}

	for i, requirePath := range paths {
		want := naming.DerivedName(e.layout, requirePath)
		if names[i] != want {
			return nil, &NamingMismatchError{
				Path:        file.Path,
				RequirePath: requirePath,
				Got:         names[i],
				Want:        want,
			}
		}
	}

	logger.Debug("Extracted module dependencies.", "module", id, "deps", names)
	return names, nil
}

// requireBinding validates one import declaration and returns its bound
// name and require path.
func requireBinding(file *jsparse.File, stmt *sitter.Node) (string, string, error) {
	line := int(stmt.StartPoint().Row) + 1
	violation := func(format string, args ...any) error {
		return &ConventionError{Path: file.Path, Line: line, Detail: fmt.Sprintf(format, args...)}
	}

	var declarators []*sitter.Node
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(i)
		if child.Type() == "variable_declarator" {
			declarators = append(declarators, child)
		}
	}
	if len(declarators) != 1 {
		return "", "", violation("import declaration must bind exactly one name, found %d", len(declarators))
	}

	decl := declarators[0]
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil || nameNode.Type() != "identifier" {
		return "", "", violation("import binding must be a plain identifier")
	}

	value := decl.ChildByFieldName("value")
	if value == nil || value.Type() != "call_expression" {
		return "", "", violation("%q must be initialized with a require(...) call", file.Text(nameNode))
	}
	callee := value.ChildByFieldName("function")
	if callee == nil || callee.Type() != "identifier" || file.Text(callee) != "require" {
		return "", "", violation("%q must be initialized with a require(...) call", file.Text(nameNode))
	}

	args := value.ChildByFieldName("arguments")
	var literals []*sitter.Node
	if args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			arg := args.NamedChild(i)
			if arg.Type() == "comment" {
				continue
			}
			literals = append(literals, arg)
		}
	}
	if len(literals) != 1 || literals[0].Type() != "string" {
		return "", "", violation("require for %q must take a single string literal", file.Text(nameNode))
	}

	return file.Text(nameNode), stringValue(file, literals[0]), nil
}

// stringValue returns the unquoted value of a string literal node.
func stringValue(file *jsparse.File, n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == "string_fragment" {
			return file.Text(child)
		}
	}
	// Empty string: no fragment child, strip the quotes.
	text := file.Text(n)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return ""
}
