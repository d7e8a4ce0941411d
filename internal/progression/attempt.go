package progression

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/waste3d/memorymatch/internal/domain"
)

// Attempt is a single play of one level. It can be completed at most once,
// which is what keeps a double "level cleared" signal from paying twice.
type Attempt struct {
	ID        string
	LevelID   int
	StartedAt time.Time

	spent atomic.Bool
}

// StartLevel opens an attempt for an unlocked level.
func (e *Engine) StartLevel(levelID int) (*Attempt, error) {
	cfg, ok := e.catalog.Level(levelID)
	if !ok {
		return nil, fmt.Errorf("start level %d: %w", levelID, domain.ErrUnknownLevel)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !levelUnlocked(e.load(), cfg) {
		return nil, fmt.Errorf("start level %d: %w", levelID, domain.ErrLevelLocked)
	}
	return &Attempt{
		ID:        uuid.New().String(),
		LevelID:   levelID,
		StartedAt: e.now().UTC(),
	}, nil
}

// CompleteAttempt consumes a and completes its level. Any later call with
// the same attempt returns domain.ErrAttemptSpent and changes nothing.
func (e *Engine) CompleteAttempt(a *Attempt) (*domain.WorldUnlockEvent, error) {
	cfg, ok := e.catalog.Level(a.LevelID)
	if !ok {
		return nil, fmt.Errorf("complete attempt %s: %w", a.ID, domain.ErrUnknownLevel)
	}

	e.mu.Lock()
	if a.spent.Load() {
		e.mu.Unlock()
		return nil, fmt.Errorf("complete attempt %s: %w", a.ID, domain.ErrAttemptSpent)
	}
	a.spent.Store(true)
	ev := e.completeLocked(cfg)
	e.mu.Unlock()

	if ev != nil {
		e.celebrate(*ev)
	}
	return ev, nil
}

// Spent reports whether the attempt has already been completed.
func (a *Attempt) Spent() bool {
	return a.spent.Load()
}
