package depgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder(t *testing.T) {
	t.Run("dependencies precede dependents", func(t *testing.T) {
		graph := Graph{
			"a": nil,
			"b": {"a"},
			"c": {"a", "b"},
		}
		ordered, err := Order(graph)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ordered)
	})

	t.Run("independent modules come out lexicographically", func(t *testing.T) {
		graph := Graph{"z": nil, "m": nil, "a": nil}
		ordered, err := Order(graph)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "m", "z"}, ordered)
	})

	t.Run("rotation defers a blocked head to the tail", func(t *testing.T) {
		// a is first lexicographically but waits on c, which waits on b:
		// the queue rotates past a twice.
		graph := Graph{
			"a": {"c"},
			"b": nil,
			"c": {"b"},
		}
		ordered, err := Order(graph)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a"}, ordered)
	})

	t.Run("every key appears exactly once", func(t *testing.T) {
		graph := Graph{
			"a": nil,
			"b": {"a"},
			"c": {"a"},
			"d": {"b", "c"},
			"e": {"d", "a"},
		}
		ordered, err := Order(graph)
		require.NoError(t, err)
		require.Len(t, ordered, len(graph))

		position := make(map[string]int, len(ordered))
		for i, id := range ordered {
			_, seen := position[id]
			require.False(t, seen, "%q ordered twice", id)
			position[id] = i
		}
		for id, deps := range graph {
			for _, dep := range deps {
				assert.Less(t, position[dep], position[id], "%q must precede %q", dep, id)
			}
		}
	})

	t.Run("deterministic across invocations", func(t *testing.T) {
		graph := Graph{
			"e": {"a"},
			"d": {"a"},
			"c": {"a"},
			"b": {"a"},
			"a": nil,
		}
		first, err := Order(graph)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			again, err := Order(graph)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("empty graph", func(t *testing.T) {
		ordered, err := Order(Graph{})
		require.NoError(t, err)
		assert.Empty(t, ordered)
	})

	t.Run("cycle trips the rotation guard", func(t *testing.T) {
		graph := Graph{
			"a": {"b"},
			"b": {"a"},
			"c": nil,
		}
		_, err := Order(graph)

		var cyclic *CyclicDependencyError
		require.True(t, errors.As(err, &cyclic))
		assert.Equal(t, []string{"a", "b"}, cyclic.Chain)
	})
}
