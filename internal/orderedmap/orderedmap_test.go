package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetKeepsInsertionOrder(t *testing.T) {
	m := New[string, int]()

	assert.True(t, m.Set("b", 1))
	assert.True(t, m.Set("a", 2))
	assert.True(t, m.Set("c", 3))
	assert.False(t, m.Set("a", 20))

	var keys []string
	m.Foreach(func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	v, ok = m.Get("x")
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestForeachAbort(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var visited []string
	m.Foreach(func(k string, _ int) bool {
		visited = append(visited, k)
		return k != "b"
	})

	assert.Equal(t, []string{"a", "b"}, visited)
}
