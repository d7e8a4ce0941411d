package grpc_server

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/waste3d/memorymatch/internal/domain"
)

// Remote record field names, shared with the Postgres columns.
const (
	fieldClientID        = "client_id"
	fieldCoins           = "coins"
	fieldOwnedSkins      = "owned_skins"
	fieldEquippedSkin    = "equipped_skin"
	fieldLastDailyAt     = "last_daily_at"
	fieldCurrentWorld    = "current_world"
	fieldCurrentLevel    = "current_level"
	fieldWorldsCompleted = "worlds_completed"
	fieldUpdatedAt       = "updated_at"
)

var errMissingClientID = errors.New("record has no client_id")

func profileToStruct(p domain.Profile) (*structpb.Struct, error) {
	skins := make([]interface{}, 0, len(p.OwnedSkins))
	for _, s := range p.OwnedSkins {
		skins = append(skins, s)
	}
	updated := ""
	if !p.UpdatedAt.IsZero() {
		updated = p.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	s, err := structpb.NewStruct(map[string]interface{}{
		fieldClientID:        p.ClientID,
		fieldCoins:           p.Coins,
		fieldOwnedSkins:      skins,
		fieldEquippedSkin:    optional(p.EquippedSkin),
		fieldLastDailyAt:     optional(p.LastDailyClaim),
		fieldCurrentWorld:    p.CurrentWorld,
		fieldCurrentLevel:    p.CurrentLevel,
		fieldWorldsCompleted: p.WorldsCompleted,
		fieldUpdatedAt:       optional(updated),
	})
	if err != nil {
		return nil, fmt.Errorf("encode profile %s: %w", p.ClientID, err)
	}
	return s, nil
}

func profileFromStruct(s *structpb.Struct) (domain.Profile, error) {
	f := s.GetFields()

	p := domain.Profile{
		ClientID:        f[fieldClientID].GetStringValue(),
		Coins:           int(f[fieldCoins].GetNumberValue()),
		EquippedSkin:    f[fieldEquippedSkin].GetStringValue(),
		LastDailyClaim:  f[fieldLastDailyAt].GetStringValue(),
		CurrentWorld:    int(f[fieldCurrentWorld].GetNumberValue()),
		CurrentLevel:    int(f[fieldCurrentLevel].GetNumberValue()),
		WorldsCompleted: int(f[fieldWorldsCompleted].GetNumberValue()),
	}
	if p.ClientID == "" {
		return domain.Profile{}, errMissingClientID
	}
	for _, v := range f[fieldOwnedSkins].GetListValue().GetValues() {
		p.OwnedSkins = append(p.OwnedSkins, v.GetStringValue())
	}
	if raw := f[fieldUpdatedAt].GetStringValue(); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("decode updated_at: %w", err)
		}
		p.UpdatedAt = t
	}
	return p, nil
}

func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
