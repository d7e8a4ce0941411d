package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Profile{
		Coins:           -10,
		OwnedSkins:      []string{"neon", "", "neon", DefaultSkinID},
		EquippedSkin:    "gold",
		CurrentWorld:    0,
		CurrentLevel:    40,
		WorldsCompleted: -1,
	}
	p.Normalize()

	assert.Equal(t, 0, p.Coins)
	assert.Equal(t, []string{DefaultSkinID, "neon"}, p.OwnedSkins)
	assert.Empty(t, p.EquippedSkin)
	assert.Equal(t, 1, p.CurrentWorld)
	assert.Equal(t, LevelCount, p.CurrentLevel)
	assert.Equal(t, 0, p.WorldsCompleted)
}

func TestNormalizeKeepsOwnedEquip(t *testing.T) {
	p := NewProfile("c")
	p.OwnedSkins = append(p.OwnedSkins, "neon")
	p.EquippedSkin = "neon"
	p.Normalize()
	assert.Equal(t, "neon", p.EquippedSkin)
}

func TestCloneDoesNotShareSkins(t *testing.T) {
	p := NewProfile("c")
	c := p.Clone()
	c.OwnedSkins[0] = "x"
	assert.Equal(t, DefaultSkinID, p.OwnedSkins[0])
}

func TestLevelIDs(t *testing.T) {
	assert.Equal(t, 1, GlobalLevelID(1, 1))
	assert.Equal(t, 6, GlobalLevelID(2, 1))
	assert.Equal(t, 25, GlobalLevelID(5, 5))
	assert.True(t, LevelConfig{World: 3, Level: 5}.IsWorldFinale())
	assert.Equal(t, 15, LevelConfig{World: 3, Level: 5}.ID())
}
