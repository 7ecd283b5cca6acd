// Package session stores per-chat conversation state between the initial
// signal message and its inline-button callbacks. The store is bounded and
// expiring, so an abandoned chat cannot pin memory forever; a miss is
// reported to the user as an expired session.
package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// State is what a callback needs to rebuild or extend the conversation.
type State struct {
	// SignalText is the formatted signal message originally sent.
	SignalText string
	// News is the raw analysis document from the News AI service, or nil
	// when the signal carried no news data.
	News map[string]any
}

const (
	// DefaultCapacity bounds the number of concurrently tracked chats.
	DefaultCapacity = 1024
	// DefaultTTL matches how long an inline keyboard stays actionable
	// before the relay treats the session as expired.
	DefaultTTL = time.Hour
)

// Store is a thread-safe, expiring per-chat state store.
type Store struct {
	cache *expirable.LRU[int64, State]
}

// NewStore creates a store with the given bounds. Non-positive capacity or
// TTL fall back to the defaults.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: expirable.NewLRU[int64, State](capacity, nil, ttl)}
}

// Put records the state for a chat, replacing any previous state.
func (s *Store) Put(chatID int64, state State) {
	s.cache.Add(chatID, state)
}

// Get returns the state for a chat. The second return is false when the
// chat has no session or it has expired.
func (s *Store) Get(chatID int64) (State, bool) {
	return s.cache.Get(chatID)
}

// Len reports the number of live sessions, for observability.
func (s *Store) Len() int {
	return s.cache.Len()
}
