package concurrent

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMapBasicOperations(t *testing.T) {
	m := NewMap[string, int](HashString)

	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3) // 覆盖

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, m.Count())
	assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())

	m.Remove("a")
	assert.Equal(t, 1, m.Count())

	m.Clear()
	assert.Zero(t, m.Count())
}

func TestMapWithShardCount(t *testing.T) {
	m := NewMap[string, string](HashString, WithShardCount[string, string](4))
	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key-%d", i), "v")
	}
	assert.Equal(t, 100, m.Count())
}

func TestMapIterCbStopsEarly(t *testing.T) {
	m := NewMap[string, int](HashString)
	for i := 0; i < 10; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
	}

	visited := 0
	m.IterCb(func(key string, v int) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}

func TestMapConcurrentAccess(t *testing.T) {
	m := NewMap[string, int](HashString)
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("g%d-k%d", g, i)
				m.Set(key, i)
				m.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 800, m.Count())
}

func TestMapYAMLRoundTrip(t *testing.T) {
	m := NewMap[string, string](HashString)
	m.Set("alpha", "1")
	m.Set("beta", "2")

	data, err := yaml.Marshal(m)
	require.NoError(t, err)

	decoded := NewMap[string, string](HashString)
	require.NoError(t, yaml.Unmarshal(data, decoded))

	assert.Equal(t, 2, decoded.Count())
	v, ok := decoded.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}
