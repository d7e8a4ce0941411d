package progression

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/waste3d/memorymatch/internal/domain"
	"github.com/waste3d/memorymatch/internal/kvstore"
)

// Local storage keys. The namespace is flat so older installs keep their data.
const (
	KeyClientID        = "client_id"
	KeyCoins           = "user_coins"
	KeyLastDaily       = "last_daily_at"
	KeyOwnedSkins      = "owned_skins"
	KeyEquippedSkin    = "equipped_skin"
	KeyCurrentWorld    = "current_world"
	KeyCurrentLevel    = "current_level"
	KeyWorldsCompleted = "worlds_completed"
	KeyUpdatedAt       = "updated_at"
)

// EnsureClientID returns the stored client identity, generating and
// persisting one on first launch.
func EnsureClientID(s kvstore.Store) string {
	if id, ok := s.Get(KeyClientID); ok && id != "" {
		return id
	}
	id := uuid.New().String()
	s.Set(KeyClientID, id)
	return id
}

// LoadProfile reads the profile out of s, defaulting every missing or
// malformed field.
func LoadProfile(s kvstore.Store) domain.Profile {
	id, _ := s.Get(KeyClientID)
	p := domain.NewProfile(id)

	p.Coins = getInt(s, KeyCoins, 0)
	p.CurrentWorld = getInt(s, KeyCurrentWorld, 1)
	p.CurrentLevel = getInt(s, KeyCurrentLevel, 1)
	p.WorldsCompleted = getInt(s, KeyWorldsCompleted, 0)

	if raw, ok := s.Get(KeyOwnedSkins); ok {
		var owned []string
		if err := json.Unmarshal([]byte(raw), &owned); err == nil {
			p.OwnedSkins = owned
		}
	}
	p.EquippedSkin, _ = s.Get(KeyEquippedSkin)
	p.LastDailyClaim, _ = s.Get(KeyLastDaily)

	if raw, ok := s.Get(KeyUpdatedAt); ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			p.UpdatedAt = t
		}
	}

	p.Normalize()
	return p
}

// SaveProfile writes every field of p except the client id, which is
// immutable once generated.
func SaveProfile(s kvstore.Store, p domain.Profile) {
	owned, _ := json.Marshal(p.OwnedSkins)

	s.Set(KeyCoins, strconv.Itoa(p.Coins))
	s.Set(KeyOwnedSkins, string(owned))
	s.Set(KeyEquippedSkin, p.EquippedSkin)
	s.Set(KeyLastDaily, p.LastDailyClaim)
	s.Set(KeyCurrentWorld, strconv.Itoa(p.CurrentWorld))
	s.Set(KeyCurrentLevel, strconv.Itoa(p.CurrentLevel))
	s.Set(KeyWorldsCompleted, strconv.Itoa(p.WorldsCompleted))
	if !p.UpdatedAt.IsZero() {
		s.Set(KeyUpdatedAt, p.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
}

func getInt(s kvstore.Store, key string, def int) int {
	raw, ok := s.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
