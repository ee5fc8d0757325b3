// Package transform rewrites a module's terminal export assignment into a
// standalone declaration suitable for concatenation into the bundle.
package transform

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jspack/jspack/internal/config"
	"github.com/jspack/jspack/internal/depgraph"
	"github.com/jspack/jspack/internal/jsparse"
	"github.com/jspack/jspack/internal/naming"
)

// ModifiedSource re-parses the module (hitting the parser cache) and
// returns its source with the final `module.exports = <expr>;` statement
// rewritten as `var <id> = <expr>;`. The file's comments are emitted ahead
// of the declaration, verbatim and in source order; the right-hand side is
// the byte-exact original source text.
func ModifiedSource(ctx context.Context, parser *jsparse.Parser, layout *config.Layout, id string) (string, error) {
	path := naming.FileFor(layout, id)
	file, err := parser.Parse(ctx, path)
	if err != nil {
		return "", err
	}

	statements := file.Statements()
	if len(statements) == 0 {
		return "", &depgraph.ConventionError{Path: file.Path, Line: 1, Detail: "module body is empty"}
	}

	value, err := exportValue(file, statements[len(statements)-1])
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, c := range file.Comments {
		b.WriteString(c.Text)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "var %s = %s;", id, file.Text(value))
	return b.String(), nil
}

// exportValue asserts that stmt is exactly `module.exports = <expr>` and
// returns the right-hand side node.
func exportValue(file *jsparse.File, stmt *sitter.Node) (*sitter.Node, error) {
	violation := func(detail string) error {
		return &depgraph.ConventionError{
			Path:   file.Path,
			Line:   int(stmt.StartPoint().Row) + 1,
			Detail: detail,
		}
	}

	if stmt.Type() != "expression_statement" {
		return nil, violation("last statement must be a module.exports assignment")
	}
	expr := firstNamed(stmt)
	if expr == nil || expr.Type() != "assignment_expression" {
		return nil, violation("last statement must be a module.exports assignment")
	}

	left := expr.ChildByFieldName("left")
	if left == nil || left.Type() != "member_expression" {
		return nil, violation("export must assign to module.exports")
	}
	object := left.ChildByFieldName("object")
	property := left.ChildByFieldName("property")
	if object == nil || object.Type() != "identifier" || file.Text(object) != "module" ||
		property == nil || file.Text(property) != "exports" {
		return nil, violation("export must assign to module.exports")
	}

	right := expr.ChildByFieldName("right")
	if right == nil {
		return nil, violation("export assignment has no value")
	}
	return right, nil
}

// firstNamed returns the statement's first named child that is not a
// comment.
func firstNamed(stmt *sitter.Node) *sitter.Node {
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		if child := stmt.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}
	return nil
}
