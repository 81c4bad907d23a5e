package memory

import (
	"context"
	"sync"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SlotStore keeps the cart slot in process memory. Contents are lost on exit.
type SlotStore struct {
	mu      sync.RWMutex
	key     string
	data    []byte
	present bool
}

// NewSlotStore creates an empty in-memory slot.
func NewSlotStore(key string) *SlotStore {
	return &SlotStore{key: key}
}

// Get returns a copy of the stored bytes.
func (s *SlotStore) Get(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.present {
		return nil, apperrors.NotFound("cart slot", s.key)
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Save stores a copy of data.
func (s *SlotStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append(s.data[:0:0], data...)
	s.present = true
	return nil
}

// Delete clears the slot.
func (s *SlotStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.present = false
	return nil
}
