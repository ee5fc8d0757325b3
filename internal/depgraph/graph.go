package depgraph

import (
	"context"

	"github.com/jspack/jspack/internal/ctxlog"
)

// Graph maps every reachable module identifier to its direct dependencies
// in declaration order. Once construction finishes, every identifier that
// appears in a value list is also present as a key.
type Graph map[string][]string

// BuildGraph expands the given roots into their full transitive dependency
// graph, depth-first in root order and then in extractor-reported order.
// An identifier already present as a key is never recomputed, so diamond
// dependencies are cheap. A currently-visiting set makes cycles a fast,
// explicit failure instead of unbounded recursion.
func BuildGraph(ctx context.Context, extractor *Extractor, roots []string) (Graph, error) {
	logger := ctxlog.FromContext(ctx)

	graph := make(Graph)
	visiting := make(map[string]bool)
	var chain []string

	var visit func(id string) error
	visit = func(id string) error {
		if visiting[id] {
			return &CyclicDependencyError{Chain: append(append([]string(nil), chain...), id)}
		}
		if _, ok := graph[id]; ok {
			return nil
		}

		visiting[id] = true
		chain = append(chain, id)

		deps, err := extractor.DependenciesOf(ctx, id)
		if err != nil {
			return err
		}
		graph[id] = deps
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}

		chain = chain[:len(chain)-1]
		delete(visiting, id)
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}

	logger.Debug("Dependency graph complete.", "modules", len(graph))
	return graph, nil
}
