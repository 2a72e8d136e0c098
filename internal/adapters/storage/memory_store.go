package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/core"
)

type tokenKey struct {
	service string
	email   string
}

type tokenEntry struct {
	data []byte
	seq  uint64
}

// MemoryStore is an in-memory implementation of the SignalStore and
// TokenStore interfaces. Everything is lost on restart; it exists for
// tests and local runs without a database.
type MemoryStore struct {
	signals map[string]*core.EmailSignals
	tokens  map[tokenKey]tokenEntry
	seq     uint64
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		signals: make(map[string]*core.EmailSignals),
		tokens:  make(map[tokenKey]tokenEntry),
		logger:  logger,
	}
}

// SaveSignals stores the signal bundle for its user, replacing any previous run.
func (s *MemoryStore) SaveSignals(ctx context.Context, signals *core.EmailSignals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *signals
	s.signals[signals.UserEmail] = &copied
	return nil
}

// GetSignals retrieves the most recent signal bundle for a user.
func (s *MemoryStore) GetSignals(ctx context.Context, userEmail string) (*core.EmailSignals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	signals, ok := s.signals[userEmail]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *signals
	return &copied, nil
}

// DeleteSignals removes a stored report.
func (s *MemoryStore) DeleteSignals(ctx context.Context, userEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.signals, userEmail)
	return nil
}

// SaveToken stores serialized token data for a service and account.
func (s *MemoryStore) SaveToken(ctx context.Context, service, email string, tokenJSON []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]byte, len(tokenJSON))
	copy(data, tokenJSON)
	s.seq++
	s.tokens[tokenKey{service, email}] = tokenEntry{data: data, seq: s.seq}
	return nil
}

// LoadToken retrieves token data. An empty email returns the most recently
// updated token for the service.
func (s *MemoryStore) LoadToken(ctx context.Context, service, email string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if email != "" {
		entry, ok := s.tokens[tokenKey{service, email}]
		if !ok {
			return nil, core.ErrNotFound
		}
		return entry.data, nil
	}

	var latest tokenEntry
	found := false
	for key, entry := range s.tokens {
		if key.service != service {
			continue
		}
		if !found || entry.seq > latest.seq {
			latest = entry
			found = true
		}
	}
	if !found {
		return nil, core.ErrNotFound
	}
	return latest.data, nil
}

// DeleteToken removes a stored token.
func (s *MemoryStore) DeleteToken(ctx context.Context, service, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, tokenKey{service, email})
	return nil
}

// Close is a no-op; the memory store holds no external resources.
func (s *MemoryStore) Close() error {
	return nil
}
