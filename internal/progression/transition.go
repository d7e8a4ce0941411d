package progression

import (
	"math"

	"github.com/waste3d/memorymatch/internal/domain"
)

// Outcome classifies what a level completion did to the ladder.
type Outcome int

const (
	AdvancingWithinWorld Outcome = iota
	WorldJustCompleted
	GameComplete
)

func (o Outcome) String() string {
	switch o {
	case AdvancingWithinWorld:
		return "advancing_within_world"
	case WorldJustCompleted:
		return "world_just_completed"
	case GameComplete:
		return "game_complete"
	default:
		return "unknown"
	}
}

// Transition applies the completion of cfg's level to p. The reward is always
// paid. The ladder only moves forward: replaying an earlier level pays again
// but never drags the pointer or the completed-world count back.
func Transition(cfg domain.LevelConfig, p domain.Profile) (domain.Profile, Outcome, *domain.WorldUnlockEvent) {
	next := p.Clone()
	next.Coins = addCapped(next.Coins, cfg.UnlockReward)

	if !cfg.IsWorldFinale() {
		next.CurrentLevel = max(next.CurrentLevel, cfg.ID()+1)
		return next, AdvancingWithinWorld, nil
	}

	next.WorldsCompleted = max(next.WorldsCompleted, cfg.World)

	nextWorld := cfg.World + 1
	if nextWorld > domain.WorldCount {
		return next, GameComplete, &domain.WorldUnlockEvent{
			CompletedWorld: cfg.World,
			UnlockedWorld:  cfg.World,
			CoinsEarned:    cfg.UnlockReward,
			IsGameComplete: true,
		}
	}

	if first := domain.GlobalLevelID(nextWorld, 1); first > next.CurrentLevel {
		next.CurrentWorld = nextWorld
		next.CurrentLevel = first
	}
	return next, WorldJustCompleted, &domain.WorldUnlockEvent{
		CompletedWorld: cfg.World,
		UnlockedWorld:  nextWorld,
		CoinsEarned:    cfg.UnlockReward,
	}
}

// addCapped adds a non-negative reward to a balance, saturating at math.MaxInt.
func addCapped(balance, reward int) int {
	if reward > math.MaxInt-balance {
		return math.MaxInt
	}
	return balance + reward
}
