package handlers

import (
	"sync"
	"time"

	"github.com/waste3d/memorymatch/internal/progression"
)

const attemptTTL = 2 * time.Hour

// attemptRegistry holds the attempts handed out to the UI until they are
// completed or go stale.
type attemptRegistry struct {
	mu       sync.Mutex
	attempts map[string]*progression.Attempt
	now      func() time.Time
}

func newAttemptRegistry() *attemptRegistry {
	return &attemptRegistry{attempts: map[string]*progression.Attempt{}, now: time.Now}
}

func (r *attemptRegistry) add(a *progression.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-attemptTTL)
	for id, old := range r.attempts {
		if old.StartedAt.Before(cutoff) {
			delete(r.attempts, id)
		}
	}
	r.attempts[a.ID] = a
}

func (r *attemptRegistry) get(id string) (*progression.Attempt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	return a, ok
}
