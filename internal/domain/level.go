package domain

// LevelConfig is one row of the static level table.
type LevelConfig struct {
	World            int    `yaml:"world"`
	Level            int    `yaml:"level"`
	Pairs            int    `yaml:"pairs"`
	TimeLimitSeconds int    `yaml:"time_limit"`
	Theme            string `yaml:"theme"`
	UnlockReward     int    `yaml:"unlock_reward"`
}

func (c LevelConfig) ID() int {
	return GlobalLevelID(c.World, c.Level)
}

// IsWorldFinale reports whether completing this level completes its world.
func (c LevelConfig) IsWorldFinale() bool {
	return c.Level == LevelsPerWorld
}

func GlobalLevelID(world, level int) int {
	return (world-1)*LevelsPerWorld + level
}

// WorldUnlockEvent is emitted when the last level of a world is completed.
type WorldUnlockEvent struct {
	CompletedWorld int  `json:"completed_world"`
	UnlockedWorld  int  `json:"unlocked_world"`
	CoinsEarned    int  `json:"coins_earned"`
	IsGameComplete bool `json:"is_game_complete"`
}
