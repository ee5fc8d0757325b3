package depgraph

import "sort"

// Order produces a linear ordering of the graph's keys in which every
// module appears after all of its dependencies.
//
// The pending queue starts as the keys sorted lexicographically, making the
// output independent of map iteration and insertion order. The queue then
// rotates: the head is appended to the finished sequence once all its
// dependencies are finished, otherwise it moves to the tail. The rotation
// tie-break (lexicographically smallest identifier currently at the front)
// determines final output byte order and must not be changed, even though
// the worst case is quadratic.
//
// A full rotation of the queue without progress means the remainder can
// never become ready; that subset is reported as a cycle instead of
// rotating forever.
func Order(graph Graph) ([]string, error) {
	pending := make([]string, 0, len(graph))
	for id := range graph {
		pending = append(pending, id)
	}
	sort.Strings(pending)

	finished := make([]string, 0, len(graph))
	done := make(map[string]bool, len(graph))
	rotations := 0

	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]

		ready := true
		for _, dep := range graph[id] {
			if !done[dep] {
				ready = false
				break
			}
		}
		if ready {
			finished = append(finished, id)
			done[id] = true
			rotations = 0
			continue
		}

		pending = append(pending, id)
		rotations++
		if rotations > len(pending) {
			unresolved := append([]string(nil), pending...)
			sort.Strings(unresolved)
			return nil, &CyclicDependencyError{Chain: unresolved}
		}
	}

	return finished, nil
}
