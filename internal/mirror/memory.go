package mirror

import (
	"context"
	"sync"

	"github.com/waste3d/memorymatch/internal/domain"
)

// Memory is an in-process Remote, used by tests and offline runs.
type Memory struct {
	mu      sync.Mutex
	records map[string]domain.Profile
	err     error
	upserts int
}

func NewMemory() *Memory {
	return &Memory{records: map[string]domain.Profile{}}
}

// Fail makes every subsequent call return err; nil restores normal operation.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) Upsert(ctx context.Context, p domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.records[p.ClientID] = p.Clone()
	m.upserts++
	return nil
}

func (m *Memory) Fetch(ctx context.Context, clientID string) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	p, ok := m.records[clientID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

// Upserts reports how many writes succeeded.
func (m *Memory) Upserts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts
}
