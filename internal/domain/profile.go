package domain

import (
	"slices"
	"time"
)

const (
	WorldCount     = 5
	LevelsPerWorld = 5
	LevelCount     = WorldCount * LevelsPerWorld

	DefaultSkinID = "default"
)

// Profile is the persisted player aggregate: wallet, cosmetics and ladder position.
type Profile struct {
	ClientID string

	Coins int

	OwnedSkins   []string
	EquippedSkin string // empty when nothing is equipped

	LastDailyClaim string // UTC date, YYYY-MM-DD; empty when never claimed

	CurrentWorld    int
	CurrentLevel    int // global id of the next level to play
	WorldsCompleted int

	UpdatedAt time.Time
}

// NewProfile returns the first-launch state for a client.
func NewProfile(clientID string) Profile {
	return Profile{
		ClientID:        clientID,
		OwnedSkins:      []string{DefaultSkinID},
		CurrentWorld:    1,
		CurrentLevel:    1,
		WorldsCompleted: 0,
	}
}

func (p Profile) Clone() Profile {
	p.OwnedSkins = slices.Clone(p.OwnedSkins)
	return p
}

func (p Profile) Owns(skinID string) bool {
	return slices.Contains(p.OwnedSkins, skinID)
}

// Normalize repairs values coming from untrusted storage: negative balances,
// out-of-range ladder positions, a missing default skin and an equipped skin
// that is not owned.
func (p *Profile) Normalize() {
	if p.Coins < 0 {
		p.Coins = 0
	}
	p.CurrentWorld = clamp(p.CurrentWorld, 1, WorldCount)
	p.CurrentLevel = clamp(p.CurrentLevel, 1, LevelCount)
	p.WorldsCompleted = clamp(p.WorldsCompleted, 0, WorldCount)

	owned := make([]string, 0, len(p.OwnedSkins)+1)
	owned = append(owned, DefaultSkinID)
	for _, id := range p.OwnedSkins {
		if id != "" && !slices.Contains(owned, id) {
			owned = append(owned, id)
		}
	}
	p.OwnedSkins = owned

	if p.EquippedSkin != "" && !p.Owns(p.EquippedSkin) {
		p.EquippedSkin = ""
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
