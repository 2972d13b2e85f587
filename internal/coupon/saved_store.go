package coupon

import (
	"context"
	"sync"

	"bakery-kart/internal/pricing"
)

// memorySavedStore keeps saved coupons in process memory.
type memorySavedStore struct {
	mu    sync.RWMutex
	saved map[string][]SavedCoupon
}

// NewMemorySavedStore creates an in-memory SavedStore.
func NewMemorySavedStore() SavedStore {
	return &memorySavedStore{
		saved: make(map[string][]SavedCoupon),
	}
}

func (s *memorySavedStore) List(_ context.Context, userID string) ([]SavedCoupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SavedCoupon, len(s.saved[userID]))
	copy(out, s.saved[userID])
	return out, nil
}

func (s *memorySavedStore) Save(_ context.Context, userID string, c SavedCoupon) (bool, error) {
	c.Code = pricing.NormalizeCode(c.Code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.saved[userID], c.Code) >= 0 {
		return false, nil
	}
	s.saved[userID] = append(s.saved[userID], c)
	return true, nil
}

func (s *memorySavedStore) Remove(_ context.Context, userID, code string) error {
	code = pricing.NormalizeCode(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.saved[userID]
	if i := indexOf(list, code); i >= 0 {
		s.saved[userID] = append(list[:i:i], list[i+1:]...)
	}
	return nil
}

func (s *memorySavedStore) IsSaved(_ context.Context, userID, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return indexOf(s.saved[userID], pricing.NormalizeCode(code)) >= 0, nil
}

func indexOf(list []SavedCoupon, code string) int {
	for i, c := range list {
		if c.Code == code {
			return i
		}
	}
	return -1
}
