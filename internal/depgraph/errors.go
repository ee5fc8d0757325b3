package depgraph

import (
	"fmt"
	"strings"
)

// ConventionError reports a module whose import block or terminal export
// statement does not match the required shape.
type ConventionError struct {
	Path   string
	Line   int
	Detail string
}

func (e *ConventionError) Error() string {
	return fmt.Sprintf("%s:%d: convention violation: %s", e.Path, e.Line, e.Detail)
}

// UnsortedImportsError reports an import block whose bound names are not in
// strictly ascending lexicographic order.
type UnsortedImportsError struct {
	Path string
	Prev string
	Next string
}

func (e *UnsortedImportsError) Error() string {
	return fmt.Sprintf("%s: import declarations out of order: %q follows %q", e.Path, e.Next, e.Prev)
}

// NamingMismatchError reports a binding whose name does not match the name
// mechanically derived from its require path.
type NamingMismatchError struct {
	Path        string
	RequirePath string
	Got         string
	Want        string
}

func (e *NamingMismatchError) Error() string {
	return fmt.Sprintf("%s: require(%q) must be bound as %q, got %q", e.Path, e.RequirePath, e.Want, e.Got)
}

// CyclicDependencyError reports a dependency cycle. Chain holds the visit
// path that closed the cycle, or the unresolved subset when the orderer's
// rotation guard trips.
type CyclicDependencyError struct {
	Chain []string
}

func (e *CyclicDependencyError) Error() string {
	return "cyclic dependency involving " + strings.Join(e.Chain, " -> ")
}
