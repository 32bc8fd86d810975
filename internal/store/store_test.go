package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/catalog"
	"github.com/youruser/bigcollage/internal/selection"
)

func TestCreateAndWith(t *testing.T) {
	s := New()
	id := s.Create(selection.NewSession(selection.Big5))
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	err = s.With(id, func(sess *selection.Session) error {
		_, err := sess.Toggle("a.jpg")
		return err
	})
	require.NoError(t, err)

	require.NoError(t, s.With(id, func(sess *selection.Session) error {
		require.Equal(t, 1, sess.Selection().Len())
		return nil
	}))
}

func TestWithUnknown(t *testing.T) {
	err := New().With("missing", func(*selection.Session) error { return nil })
	require.True(t, apperr.Is(err, apperr.CodeSessionNotFound))
}

func TestDelete(t *testing.T) {
	s := New()
	id := s.Create(selection.NewSession(selection.Big15))
	require.True(t, s.Delete(id))
	require.False(t, s.Delete(id))
	require.Equal(t, 0, s.Len())
}

func TestConcurrentToggles(t *testing.T) {
	s := New()
	id := s.Create(selection.NewSession(selection.Big5))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.With(id, func(sess *selection.Session) error {
				_, err := sess.Toggle(catalog.Item(string(rune('a'+i%26)) + ".jpg"))
				return err
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, s.With(id, func(sess *selection.Session) error {
		require.LessOrEqual(t, sess.Selection().Len(), 5)
		return nil
	}))
}

func TestSweepDropsIdleSessions(t *testing.T) {
	s := New()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	stale := s.Create(selection.NewSession(selection.Big5))
	fresh := s.Create(selection.NewSession(selection.Big5))

	clock = clock.Add(90 * time.Minute)
	require.NoError(t, s.With(fresh, func(*selection.Session) error { return nil }))

	clock = clock.Add(45 * time.Minute)
	require.Equal(t, 1, s.Sweep(time.Hour))
	require.Equal(t, 1, s.Len())

	err := s.With(stale, func(*selection.Session) error { return nil })
	require.True(t, apperr.Is(err, apperr.CodeSessionNotFound))
	require.NoError(t, s.With(fresh, func(*selection.Session) error { return nil }))
}

func TestSweepSkipsBusySession(t *testing.T) {
	s := New()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	id := s.Create(selection.NewSession(selection.Big5))

	require.NoError(t, s.With(id, func(*selection.Session) error {
		clock = clock.Add(3 * time.Hour)
		require.Equal(t, 0, s.Sweep(time.Hour))
		return nil
	}))
	require.Equal(t, 1, s.Len())
}

func TestRunJanitor(t *testing.T) {
	s := New()
	s.Create(selection.NewSession(selection.Big15))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	swept := make(chan int, 1)
	go func() {
		defer close(done)
		s.RunJanitor(ctx, 10*time.Millisecond, time.Nanosecond, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
	}()

	select {
	case n := <-swept:
		require.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor never swept")
	}
	cancel()
	<-done
	require.Equal(t, 0, s.Len())
}
