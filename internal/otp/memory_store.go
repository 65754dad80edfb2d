package otp

import (
	"context"
	"sync"
	"time"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
)

type storeKey struct {
	recipient string
	purpose   domain.Purpose
}

// MemoryStore is a process-local Store. Expired entries are kept for a grace
// window so Verify can tell "expired" from "never issued", then swept.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[storeKey]domain.OneTimeCode
	grace   time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewMemoryStore starts a janitor sweeping every sweepEvery; pass 0 to sweep
// only when Sweep is called.
func NewMemoryStore(grace, sweepEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[storeKey]domain.OneTimeCode),
		grace:   grace,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.janitor(sweepEvery)
	} else {
		close(s.done)
	}
	return s
}

func (s *MemoryStore) Put(_ context.Context, code domain.OneTimeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[storeKey{code.Recipient, code.Purpose}] = code
	return nil
}

func (s *MemoryStore) Get(_ context.Context, recipient string, purpose domain.Purpose) (*domain.OneTimeCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[storeKey{recipient, purpose}]
	if !ok {
		return nil, ErrCodeNotFound
	}
	return &entry, nil
}

func (s *MemoryStore) CompareAndDelete(_ context.Context, recipient string, purpose domain.Purpose, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := storeKey{recipient, purpose}
	entry, ok := s.entries[key]
	if !ok || entry.Code != code {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

// Sweep evicts entries that expired more than the grace window ago and
// returns how many were removed.
func (s *MemoryStore) Sweep() int {
	cutoff := s.now().Add(-s.grace)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, entry := range s.entries {
		if entry.Expired(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the janitor. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func (s *MemoryStore) janitor(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

var _ Store = (*MemoryStore)(nil)
