// Package progression owns the player's wallet, daily cooldown, skins and the
// world/level ladder. Every mutation is written to the local store before the
// call returns and then mirrored remotely in the background.
package progression

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/waste3d/memorymatch/internal/catalog"
	"github.com/waste3d/memorymatch/internal/domain"
	"github.com/waste3d/memorymatch/internal/kvstore"
	"github.com/waste3d/memorymatch/internal/mirror"
)

type Engine struct {
	mu sync.Mutex

	store     kvstore.Store
	catalog   *catalog.Catalog
	remote    *mirror.Pusher
	now       func() time.Time
	log       *zap.Logger
	celebrate func(domain.WorldUnlockEvent)

	dailyReward int
	clientID    string
}

type Option func(*Engine)

func WithRemote(p *mirror.Pusher) Option {
	return func(e *Engine) { e.remote = p }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithCelebration registers the visual reward trigger fired on world unlocks
// and on game completion.
func WithCelebration(fn func(domain.WorldUnlockEvent)) Option {
	return func(e *Engine) { e.celebrate = fn }
}

// WithDailyReward overrides DailyReward. Values below 1 are ignored.
func WithDailyReward(coins int) Option {
	return func(e *Engine) {
		if coins >= 1 {
			e.dailyReward = coins
		}
	}
}

func New(store kvstore.Store, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		catalog:     cat,
		now:         time.Now,
		log:         zap.NewNop(),
		celebrate:   func(domain.WorldUnlockEvent) {},
		dailyReward: DailyReward,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.clientID = EnsureClientID(store)
	return e
}

func (e *Engine) ClientID() string {
	return e.clientID
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// load must be called with e.mu held.
func (e *Engine) load() domain.Profile {
	p := LoadProfile(e.store)
	p.ClientID = e.clientID
	return p
}

// commit must be called with e.mu held.
func (e *Engine) commit(p domain.Profile) {
	// Postgres keeps microseconds; anything finer would not survive a round trip.
	p.UpdatedAt = e.now().UTC().Truncate(time.Microsecond)
	SaveProfile(e.store, p)
	e.remote.Push(p)
}

func (e *Engine) Profile() domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load()
}

func (e *Engine) Coins() int {
	return e.Profile().Coins
}

func (e *Engine) AddCoins(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("add %d coins: %w", amount, domain.ErrInvalidAmount)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.load()
	if amount > math.MaxInt-p.Coins {
		return 0, fmt.Errorf("add %d coins to %d: %w", amount, p.Coins, domain.ErrInvalidAmount)
	}
	p.Coins += amount
	e.commit(p)
	return p.Coins, nil
}

// SpendCoins deducts amount if the balance covers it. Insufficient funds is a
// false result, not an error.
func (e *Engine) SpendCoins(amount int) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("spend %d coins: %w", amount, domain.ErrInvalidAmount)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spendLocked(amount), nil
}

func (e *Engine) spendLocked(amount int) bool {
	p := e.load()
	if p.Coins < amount {
		return false
	}
	p.Coins -= amount
	e.commit(p)
	return true
}

func (e *Engine) CanClaimDaily() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canClaimLocked(e.load())
}

func (e *Engine) canClaimLocked(p domain.Profile) bool {
	if p.LastDailyClaim == "" {
		return true
	}
	last, err := ParseDay(p.LastDailyClaim)
	if err != nil {
		e.log.Warn("unreadable daily claim date, allowing claim",
			zap.String("value", p.LastDailyClaim), zap.Error(err))
		return true
	}
	return DaysSinceUTC(last, e.now()) > 0
}

// DailyReward is the number of coins one daily claim grants.
func (e *Engine) DailyReward() int {
	return e.dailyReward
}

// ClaimDailyReward grants the daily coins once per UTC calendar day. It
// returns 0 without touching state when today's reward was already taken,
// otherwise the new balance.
func (e *Engine) ClaimDailyReward() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.load()
	if !e.canClaimLocked(p) {
		return 0
	}
	p.LastDailyClaim = FormatDay(e.now())
	p.Coins = addCapped(p.Coins, e.dailyReward)
	e.commit(p)
	return p.Coins
}

// CompleteLevel pays the level reward and advances the ladder. It returns a
// non-nil event only when a world was finished.
//
// CompleteLevel is not idempotent: calling it twice for one play pays twice.
// Callers that cannot guarantee a single call per play should go through
// StartLevel and CompleteAttempt.
func (e *Engine) CompleteLevel(levelID int) (*domain.WorldUnlockEvent, error) {
	cfg, ok := e.catalog.Level(levelID)
	if !ok {
		return nil, fmt.Errorf("complete level %d: %w", levelID, domain.ErrUnknownLevel)
	}

	e.mu.Lock()
	ev := e.completeLocked(cfg)
	e.mu.Unlock()

	if ev != nil {
		e.celebrate(*ev)
	}
	return ev, nil
}

func (e *Engine) completeLocked(cfg domain.LevelConfig) *domain.WorldUnlockEvent {
	next, outcome, ev := Transition(cfg, e.load())
	e.commit(next)

	e.log.Info("level completed",
		zap.Int("level", cfg.ID()),
		zap.Stringer("outcome", outcome),
		zap.Int("reward", cfg.UnlockReward),
		zap.Int("coins", next.Coins))
	return ev
}

// WorldProgress is the ladder position the world map renders.
type WorldProgress struct {
	CurrentWorld    int `json:"current_world"`
	CurrentLevel    int `json:"current_level"`
	WorldsCompleted int `json:"worlds_completed"`
}

func (e *Engine) WorldProgress() WorldProgress {
	p := e.Profile()
	return WorldProgress{
		CurrentWorld:    p.CurrentWorld,
		CurrentLevel:    p.CurrentLevel,
		WorldsCompleted: p.WorldsCompleted,
	}
}

// IsWorldUnlocked reports whether every world before this one is complete.
func (e *Engine) IsWorldUnlocked(world int) bool {
	return worldUnlocked(e.Profile(), world)
}

func worldUnlocked(p domain.Profile, world int) bool {
	return world >= 1 && world <= domain.WorldCount && p.WorldsCompleted >= world-1
}

// IsLevelUnlocked reports whether the player may start levelID.
func (e *Engine) IsLevelUnlocked(levelID int) bool {
	cfg, ok := e.catalog.Level(levelID)
	if !ok {
		return false
	}
	return levelUnlocked(e.Profile(), cfg)
}

func levelUnlocked(p domain.Profile, cfg domain.LevelConfig) bool {
	if !worldUnlocked(p, cfg.World) {
		return false
	}
	if p.WorldsCompleted >= cfg.World {
		return true
	}
	reached := min(domain.LevelsPerWorld, p.CurrentLevel-(cfg.World-1)*domain.LevelsPerWorld)
	return cfg.Level <= max(reached, 1)
}

// Restore pulls the remote record and, if there is one, overwrites every
// local field with it. Local changes made since the last push are lost.
func (e *Engine) Restore(ctx context.Context) bool {
	remote, ok := e.remote.Pull(ctx, e.clientID)
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	remote.ClientID = e.clientID
	remote.Normalize()
	SaveProfile(e.store, remote)

	e.log.Info("profile restored from mirror",
		zap.String("client_id", e.clientID),
		zap.Int("coins", remote.Coins),
		zap.Int("current_level", remote.CurrentLevel))
	return true
}
