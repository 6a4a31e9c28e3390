// Package memory holds process-local stores used when no database is
// configured. They satisfy the same interfaces as the postgres stores.
package memory

import (
	"context"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"sportspulse/internal/domain"
)

type PreferenceStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.Preference
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{prefs: make(map[string]domain.Preference)}
}

func (s *PreferenceStore) Get(_ context.Context, clientID string) (*domain.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.prefs[clientID]
	if !ok {
		return &domain.Preference{ClientID: clientID}, nil
	}
	return &pref, nil
}

func (s *PreferenceStore) Upsert(_ context.Context, pref *domain.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pref.UpdatedAt = time.Now().UTC()
	s.prefs[pref.ClientID] = *pref
	return nil
}

func (s *PreferenceStore) Toggle(_ context.Context, clientID string) (*domain.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pref := s.prefs[clientID]
	pref.ClientID = clientID
	pref.DarkMode = !pref.DarkMode
	pref.UpdatedAt = time.Now().UTC()
	s.prefs[clientID] = pref
	return &pref, nil
}

type SubscriberStore struct {
	mu     sync.RWMutex
	subs   *orderedmap.OrderedMap[string, domain.Subscriber]
	nextID int64
}

func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{
		subs:   orderedmap.New[string, domain.Subscriber](),
		nextID: 1,
	}
}

func (s *SubscriberStore) Add(_ context.Context, sub *domain.Subscriber) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subs.Get(sub.Email); exists {
		return false, nil
	}

	sub.ID = s.nextID
	sub.CreatedAt = time.Now().UTC()
	s.nextID++
	s.subs.Set(sub.Email, *sub)
	return true, nil
}

// List returns subscribers newest first, matching the postgres store.
func (s *SubscriberStore) List(_ context.Context) ([]domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Subscriber, 0, s.subs.Len())
	for pair := s.subs.Newest(); pair != nil; pair = pair.Prev() {
		out = append(out, pair.Value)
	}
	return out, nil
}
