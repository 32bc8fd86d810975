package selection

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/catalog"
)

func items(n int) []catalog.Item {
	out := make([]catalog.Item, n)
	for i := range out {
		out[i] = catalog.Item(fmt.Sprintf("p%02d.jpg", i))
	}
	return out
}

func TestToggleAddsAndRemoves(t *testing.T) {
	s := New(5)

	ch, err := s.Toggle("a.jpg")
	require.NoError(t, err)
	require.True(t, ch.Selected)
	require.True(t, s.Contains("a.jpg"))

	ch, err = s.Toggle("a.jpg")
	require.NoError(t, err)
	require.False(t, ch.Selected)
	require.Equal(t, 0, s.Len())
}

func TestToggleCapacityExceeded(t *testing.T) {
	s := New(5)
	for _, it := range items(5) {
		_, err := s.Toggle(it)
		require.NoError(t, err)
	}
	require.True(t, s.IsComplete())
	before := s.Items()

	_, err := s.Toggle("extra.jpg")
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.CodeCapacityExceeded))
	require.Contains(t, err.Error(), "5")
	require.Equal(t, before, s.Items())
	require.False(t, s.Contains("extra.jpg"))
}

func TestToggleRemovesWhenFull(t *testing.T) {
	s := New(5)
	all := items(5)
	for _, it := range all {
		_, err := s.Toggle(it)
		require.NoError(t, err)
	}
	ch, err := s.Toggle(all[2])
	require.NoError(t, err)
	require.False(t, ch.Selected)
	require.Equal(t, 4, s.Len())
	require.False(t, s.IsComplete())
}

func TestItemsInsertionOrder(t *testing.T) {
	s := New(15)
	for _, it := range []catalog.Item{"z.jpg", "a.jpg", "m.jpg"} {
		_, err := s.Toggle(it)
		require.NoError(t, err)
	}
	_, err := s.Toggle("a.jpg")
	require.NoError(t, err)
	_, err = s.Toggle("a.jpg")
	require.NoError(t, err)
	require.Equal(t, []catalog.Item{"z.jpg", "m.jpg", "a.jpg"}, s.Items())
}

func TestClear(t *testing.T) {
	s := New(5)
	_, _ = s.Toggle("a.jpg")
	s.Clear()
	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains("a.jpg"))
	require.Empty(t, s.Items())
}

func TestRandomTogglesNeverExceedCapacity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	pool := items(30)
	for _, capacity := range []int{5, 15} {
		s := New(capacity)
		for i := 0; i < 5000; i++ {
			it := pool[rng.IntN(len(pool))]
			was := s.Contains(it)
			full := s.Len() == capacity
			_, err := s.Toggle(it)
			switch {
			case was:
				require.NoError(t, err)
				require.False(t, s.Contains(it))
			case full:
				require.True(t, apperr.Is(err, apperr.CodeCapacityExceeded))
			default:
				require.NoError(t, err)
			}
			require.LessOrEqual(t, s.Len(), capacity)
			require.Equal(t, s.Len(), len(s.Items()))
		}
	}
}
