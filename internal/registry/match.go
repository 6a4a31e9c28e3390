// Package registry holds the in-memory match and article state of the site.
package registry

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"sportspulse/internal/domain"
)

// Rand is the random source used by score simulation. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type MatchRegistry struct {
	mu      sync.RWMutex
	matches *orderedmap.OrderedMap[string, domain.Match]
	rnd     Rand
}

func NewMatchRegistry(rnd Rand, seed []domain.Match) *MatchRegistry {
	r := &MatchRegistry{rnd: rnd}
	r.Initialize(seed)
	return r
}

// Initialize replaces all state with the seed records.
func (r *MatchRegistry) Initialize(seed []domain.Match) {
	matches := orderedmap.New[string, domain.Match]()
	for _, m := range seed {
		matches.Set(m.ID, m)
	}

	r.mu.Lock()
	r.matches = matches
	r.mu.Unlock()
}

func (r *MatchRegistry) Get(id string) (domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches.Get(id)
	if !ok {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	return m, nil
}

func (r *MatchRegistry) All() []domain.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(domain.Match) bool { return true })
}

// Live returns the matches currently in live status, in insertion order.
func (r *MatchRegistry) Live() []domain.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(domain.Match.IsLive)
}

func (r *MatchRegistry) Update(id string, patch domain.MatchPatch) (domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(id, patch)
}

// SimulateScoreUpdate awards one goal to a random side of a live match and
// advances its clock by 1 to 5 minutes.
func (r *MatchRegistry) SimulateScoreUpdate(id string) (domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches.Get(id)
	if !ok {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	if !m.IsLive() {
		return domain.Match{}, domain.ErrMatchNotLive
	}

	var patch domain.MatchPatch
	if r.rnd.IntN(2) == 0 {
		score := m.HomeScore + 1
		patch.HomeScore = &score
	} else {
		score := m.AwayScore + 1
		patch.AwayScore = &score
	}
	minute := m.Minute + r.rnd.IntN(5) + 1
	patch.Minute = &minute

	return r.update(id, patch)
}

func (r *MatchRegistry) update(id string, patch domain.MatchPatch) (domain.Match, error) {
	m, ok := r.matches.Get(id)
	if !ok {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	m.Apply(patch)
	r.matches.Set(id, m)
	return m, nil
}

func (r *MatchRegistry) collect(keep func(domain.Match) bool) []domain.Match {
	out := make([]domain.Match, 0, r.matches.Len())
	for pair := r.matches.Oldest(); pair != nil; pair = pair.Next() {
		if keep(pair.Value) {
			out = append(out, pair.Value)
		}
	}
	return out
}
