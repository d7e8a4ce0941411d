// Package mirror keeps a best-effort remote copy of the local profile.
package mirror

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/waste3d/memorymatch/internal/domain"
)

const DefaultTimeout = 10 * time.Second

// Remote stores whole profile records keyed by client id.
type Remote interface {
	Upsert(ctx context.Context, p domain.Profile) error
	// Fetch returns domain.ErrProfileNotFound when no record exists.
	Fetch(ctx context.Context, clientID string) (domain.Profile, error)
}

// Pusher runs fire-and-forget uploads and the startup download against a Remote.
// Failures are logged and dropped; nothing is retried.
type Pusher struct {
	remote  Remote
	log     *zap.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// NewPusher wraps remote. A nil remote turns every call into a no-op.
func NewPusher(remote Remote, log *zap.Logger, timeout time.Duration) *Pusher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pusher{remote: remote, log: log, timeout: timeout}
}

// Push uploads p in the background and returns immediately.
func (m *Pusher) Push(p domain.Profile) {
	if m == nil || m.remote == nil {
		return
	}
	snapshot := p.Clone()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.remote.Upsert(ctx, snapshot); err != nil {
			m.log.Warn("profile push failed",
				zap.String("client_id", snapshot.ClientID),
				zap.Error(err))
			return
		}
		m.log.Debug("profile pushed",
			zap.String("client_id", snapshot.ClientID),
			zap.Int("coins", snapshot.Coins))
	}()
}

// Pull fetches the remote record. ok is false when there is none or the
// fetch failed.
func (m *Pusher) Pull(ctx context.Context, clientID string) (p domain.Profile, ok bool) {
	if m == nil || m.remote == nil {
		return domain.Profile{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	p, err := m.remote.Fetch(ctx, clientID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		m.log.Debug("no remote profile", zap.String("client_id", clientID))
		return domain.Profile{}, false
	case err != nil:
		m.log.Warn("profile pull failed", zap.String("client_id", clientID), zap.Error(err))
		return domain.Profile{}, false
	}
	return p, true
}

// Wait blocks until every in-flight push has finished.
func (m *Pusher) Wait() {
	if m == nil {
		return
	}
	m.wg.Wait()
}
