package services

import (
	"sync"

	"github.com/yeremiapane/order-dashboard/database"
	"github.com/yeremiapane/order-dashboard/models"
)

// Session holds the one signed-in identity of this terminal. It is loaded
// once at startup and written through to the local store.
type Session struct {
	store   *database.LocalStore
	mu      sync.RWMutex
	current *models.Restaurant
	loaded  bool
}

func NewSession(store *database.LocalStore) *Session {
	return &Session{store: store}
}

// Load reads the persisted identity. Later calls are no-ops.
func (s *Session) Load() *models.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.current = s.store.GetCurrentUser()
		s.loaded = true
	}
	return copyRestaurant(s.current)
}

func (s *Session) Current() *models.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRestaurant(s.current)
}

func (s *Session) Set(r models.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.SetCurrentUser(r)
	s.current = &r
	s.loaded = true
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ClearCurrentUser()
	s.current = nil
	s.loaded = true
}

func copyRestaurant(r *models.Restaurant) *models.Restaurant {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
