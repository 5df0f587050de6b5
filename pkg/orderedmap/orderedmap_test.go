package orderedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/ibc-core/pkg/orderedmap"
)

func TestSetGetPreservesInsertionOrder(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("transfer", 1)
	m.Set("icahost", 2)
	m.Set("mock", 3)

	require.Equal(t, []string{"transfer", "icahost", "mock"}, m.Keys())
	require.Equal(t, []int{1, 2, 3}, m.Values())
	require.Equal(t, 3, m.Len())

	v, ok := m.Get("icahost")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestSetUpdatesInPlace(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10)

	require.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	require.Equal(t, 10, v)
}

func TestDeletePreservesRemainingOrder(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("b")

	require.Equal(t, []string{"a", "c"}, m.Keys())
	require.False(t, m.Has("b"))

	v, ok := m.Get("c")
	require.True(t, ok)
	require.Equal(t, 3, v)

	m.Delete("missing")
	require.Equal(t, 2, m.Len())
}

func TestRangeStopsOnErrBreak(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	err := m.Range(func(key string, _ int) error {
		seen = append(seen, key)
		if key == "b" {
			return orderedmap.ErrBreak
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, seen)
}

func TestRangePropagatesErrors(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("a", 1)

	boom := errors.New("boom")
	err := m.Range(func(string, int) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestZeroValueIsUsable(t *testing.T) {
	var m orderedmap.Map[string, int]
	_, ok := m.Get("a")
	require.False(t, ok)
	m.Set("a", 1)
	require.True(t, m.Has("a"))
}
