package assistant

import (
	"context"
	"sync"
	"time"

	"superclinic/models"
)

// ChatStore keeps per-user conversation history. Every implementation
// guarantees the system prompt is the first message of any stored history.
type ChatStore interface {
	// Ensure initializes the user's history with the system prompt when absent.
	Ensure(ctx context.Context, userID string) error
	// Append adds one message to the user's history, initializing it first.
	Append(ctx context.Context, userID string, msg models.ChatMessage) error
	// Replace swaps the user's entire history. An empty slice resets to the
	// system prompt alone; a history not starting with a system message gets
	// the prompt prepended.
	Replace(ctx context.Context, userID string, msgs []models.ChatMessage) error
	// Get returns a copy of the user's history, empty for unknown users.
	Get(ctx context.Context, userID string) ([]models.ChatMessage, error)
	// Clear drops the user's history and reports whether it existed.
	Clear(ctx context.Context, userID string) (bool, error)
}

func systemMessage() models.ChatMessage {
	return models.ChatMessage{Role: models.RoleSystem, Content: SystemPrompt}
}

func withSystemFirst(msgs []models.ChatMessage) []models.ChatMessage {
	if len(msgs) == 0 {
		return []models.ChatMessage{systemMessage()}
	}
	if msgs[0].Role != models.RoleSystem {
		return append([]models.ChatMessage{systemMessage()}, msgs...)
	}
	return msgs
}

type memoryEntry struct {
	msgs     []models.ChatMessage
	lastSeen time.Time
}

// MemoryStore is an in-process ChatStore. Histories expire after a TTL of
// inactivity, and the store holds at most maxUsers entries, evicting the
// least recently used beyond that.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	ttl      time.Duration
	maxUsers int
	now      func() time.Time
}

// NewMemoryStore builds a MemoryStore. Zero ttl disables expiry; zero
// maxUsers disables the cap.
func NewMemoryStore(ttl time.Duration, maxUsers int) *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string]*memoryEntry),
		ttl:      ttl,
		maxUsers: maxUsers,
		now:      time.Now,
	}
}

func (s *MemoryStore) Ensure(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(userID)
	return nil
}

func (s *MemoryStore) Append(_ context.Context, userID string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ensureLocked(userID)
	e.msgs = append(e.msgs, msg)
	e.lastSeen = s.now()
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, userID string, msgs []models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	cp := make([]models.ChatMessage, len(msgs))
	copy(cp, msgs)
	s.entries[userID] = &memoryEntry{msgs: withSystemFirst(cp), lastSeen: s.now()}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	e, ok := s.entries[userID]
	if !ok {
		return []models.ChatMessage{}, nil
	}
	e.lastSeen = s.now()
	out := make([]models.ChatMessage, len(e.msgs))
	copy(out, e.msgs)
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[userID]
	delete(s.entries, userID)
	return ok, nil
}

func (s *MemoryStore) ensureLocked(userID string) *memoryEntry {
	s.evictLocked()
	e, ok := s.entries[userID]
	if !ok {
		e = &memoryEntry{msgs: []models.ChatMessage{systemMessage()}, lastSeen: s.now()}
		s.entries[userID] = e
	}
	return e
}

// evictLocked drops expired histories, then trims the oldest entries when
// over capacity. Called with the mutex held.
func (s *MemoryStore) evictLocked() {
	now := s.now()
	if s.ttl > 0 {
		for id, e := range s.entries {
			if now.Sub(e.lastSeen) > s.ttl {
				delete(s.entries, id)
			}
		}
	}
	if s.maxUsers <= 0 {
		return
	}
	for len(s.entries) > s.maxUsers {
		oldestID := ""
		var oldest time.Time
		for id, e := range s.entries {
			if oldestID == "" || e.lastSeen.Before(oldest) {
				oldestID = id
				oldest = e.lastSeen
			}
		}
		delete(s.entries, oldestID)
	}
}
