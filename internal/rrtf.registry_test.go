package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEntry implements Identified for testing
type mockEntry struct {
	id string
}

func (m *mockEntry) Identifier() string { return m.id }

func newMockEntry(id string) *mockEntry {
	return &mockEntry{id: id}
}

func TestRegistry_NewRegistry(t *testing.T) {
	reg := NewRegistry[*mockEntry](nil)
	require.NotNil(t, reg)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistry_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		reg := NewRegistry[*mockEntry](nil)

		err := reg.Register(newMockEntry("asset-a"))
		require.NoError(t, err)
		assert.Equal(t, 1, reg.Count())
		assert.True(t, reg.Has("asset-a"))
	})

	t.Run("nil entry", func(t *testing.T) {
		reg := NewRegistry[Identified](nil)

		err := reg.Register(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilEntry)
	})

	t.Run("empty identifier", func(t *testing.T) {
		reg := NewRegistry[*mockEntry](nil)

		err := reg.Register(newMockEntry(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEmptyIdentifier)
	})

	t.Run("invalid identifier", func(t *testing.T) {
		reg := NewRegistry[*mockEntry](nil)

		err := reg.Register(newMockEntry("asset.a"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidIdentifier)
		assert.Contains(t, err.Error(), "asset.a")
	})

	t.Run("duplicate registration - first-come-wins", func(t *testing.T) {
		reg := NewRegistry[*mockEntry](nil)
		first := newMockEntry("a")
		second := newMockEntry("a")

		require.NoError(t, reg.Register(first))

		err := reg.Register(second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEntryExists)

		got, ok := reg.Get("a")
		require.True(t, ok)
		assert.Same(t, first, got)
	})
}

func TestRegistry_MustRegister(t *testing.T) {
	reg := NewRegistry[*mockEntry](nil)

	assert.NotPanics(t, func() {
		reg.MustRegister(newMockEntry("a"))
	})
	assert.Panics(t, func() {
		reg.MustRegister(newMockEntry("a"))
	})
}

func TestRegistry_GetAndHas(t *testing.T) {
	reg := NewRegistry[*mockEntry](nil)
	entry := newMockEntry("root")
	reg.MustRegister(entry)

	got, ok := reg.Get("root")
	require.True(t, ok)
	assert.Same(t, entry, got)

	got, ok = reg.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.True(t, reg.Has("root"))
	assert.False(t, reg.Has("missing"))
}

func TestRegistry_List(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		reg := NewRegistry[*mockEntry](nil)
		assert.Empty(t, reg.List())
	})

	t.Run("sorted order", func(t *testing.T) {
		reg := NewRegistry[*mockEntry](nil)
		reg.MustRegister(newMockEntry("zebra"))
		reg.MustRegister(newMockEntry("apple"))
		reg.MustRegister(newMockEntry("middle"))

		assert.Equal(t, []string{"apple", "middle", "zebra"}, reg.List())
	})
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	reg := NewRegistry[*mockEntry](nil)
	reg.MustRegister(newMockEntry("a"))
	reg.MustRegister(newMockEntry("b"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, reg.Has("a"))
			_, ok := reg.Get("b")
			assert.True(t, ok)
			assert.Len(t, reg.List(), 2)
		}()
	}
	wg.Wait()
}
