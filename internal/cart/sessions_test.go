package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_GetCreatesAndReuses(t *testing.T) {
	s := NewSessions(time.Hour)

	id, st := s.Get("")
	require.NotEmpty(t, id)
	st.AddToCart(product("a", "1"))

	id2, st2 := s.Get(id)
	assert.Equal(t, id, id2)
	assert.Same(t, st, st2)
	assert.Equal(t, 1, st2.Count())
}

func TestSessions_UnknownIDStartsEmptyCart(t *testing.T) {
	s := NewSessions(time.Hour)

	id, st := s.Get("stale-cookie")
	assert.Equal(t, "stale-cookie", id)
	assert.Zero(t, st.Count())
	assert.Equal(t, 1, s.Len())
}

func TestSessions_SeparateCarts(t *testing.T) {
	s := NewSessions(time.Hour)
	_, a := s.Get("a")
	_, b := s.Get("b")

	a.AddToCart(product("x", "1"))
	assert.Zero(t, b.Count())
}

func TestSessions_EvictIdle(t *testing.T) {
	s := NewSessions(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Get("old")
	now = now.Add(45 * time.Second)
	s.Get("fresh")
	now = now.Add(30 * time.Second)

	assert.Equal(t, 1, s.Evict())
	assert.Equal(t, 1, s.Len())

	_, st := s.Get("fresh")
	assert.NotNil(t, st)
}

func TestSessions_JanitorStops(t *testing.T) {
	s := NewSessions(time.Nanosecond)
	s.Get("a")

	evicted := make(chan int, 1)
	s.StartJanitor(time.Millisecond, func(n int) {
		select {
		case evicted <- n:
		default:
		}
	})
	defer s.Close()

	select {
	case n := <-evicted:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not evict")
	}
	s.Close()
}
