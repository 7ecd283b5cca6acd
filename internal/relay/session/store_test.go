package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	s := NewStore(8, time.Minute)

	_, ok := s.Get(42)
	assert.False(t, ok, "unknown chat has no session")

	state := State{SignalText: "*BUY* EURUSD", News: map[string]any{"analysis": "bullish"}}
	s.Put(42, state)

	got, ok := s.Get(42)
	require.True(t, ok)
	assert.Equal(t, state, got)
}

func TestPutReplacesPreviousState(t *testing.T) {
	s := NewStore(8, time.Minute)
	s.Put(42, State{SignalText: "old"})
	s.Put(42, State{SignalText: "new"})

	got, ok := s.Get(42)
	require.True(t, ok)
	assert.Equal(t, "new", got.SignalText)
}

func TestSessionsExpire(t *testing.T) {
	s := NewStore(8, 20*time.Millisecond)
	s.Put(42, State{SignalText: "ephemeral"})

	time.Sleep(60 * time.Millisecond)

	_, ok := s.Get(42)
	assert.False(t, ok, "session must expire after its TTL")
}

func TestCapacityIsBounded(t *testing.T) {
	s := NewStore(2, time.Minute)
	s.Put(1, State{SignalText: "a"})
	s.Put(2, State{SignalText: "b"})
	s.Put(3, State{SignalText: "c"})

	assert.LessOrEqual(t, s.Len(), 2)
	_, ok := s.Get(3)
	assert.True(t, ok, "newest session survives eviction")
}

func TestDefaultsApplied(t *testing.T) {
	s := NewStore(0, 0)
	s.Put(1, State{SignalText: "x"})
	_, ok := s.Get(1)
	assert.True(t, ok)
}
