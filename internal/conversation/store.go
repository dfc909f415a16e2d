// Package conversation holds per-session bounded chat histories in memory.
// Sessions are created lazily on first use and live for the process lifetime;
// there is no persistence and no expiry.
package conversation

import "sync"

// Store maps session IDs to their conversation histories. It is shared by all
// concurrent turns; the store-level lock only guards the map, while each
// History serializes its own mutations.
type Store struct {
	mu           sync.RWMutex
	sessions     map[string]*History
	maxExchanges int
}

// NewStore creates a Store. maxExchanges caps each session's history at
// 2*maxExchanges entries.
func NewStore(maxExchanges int) *Store {
	return &Store{
		sessions:     make(map[string]*History),
		maxExchanges: maxExchanges,
	}
}

// GetOrCreate returns the history for the given session, creating it lazily.
func (s *Store) GetOrCreate(sessionID string) *History {
	s.mu.RLock()
	h, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another turn may have created it.
	if h, ok := s.sessions[sessionID]; ok {
		return h
	}
	h = newHistory(s.maxExchanges)
	s.sessions[sessionID] = h
	return h
}

// Messages returns a copy of the session's entries in insertion order, or an
// empty slice for an unknown session.
func (s *Store) Messages(sessionID string) []Message {
	s.mu.RLock()
	h, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return []Message{}
	}
	return h.Messages()
}

// Clear empties the session's history without removing the session.
// Returns false for an unknown session.
func (s *Store) Clear(sessionID string) bool {
	s.mu.RLock()
	h, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	h.clear()
	return true
}

// Delete removes the session entirely. Returns true if it existed.
func (s *Store) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}
