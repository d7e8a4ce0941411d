package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waste3d/memorymatch/internal/domain"
)

// ProfileGorm is the remote copy of a device profile, one row per client.
type ProfileGorm struct {
	ClientID        string                      `gorm:"primaryKey;size:64"`
	Coins           int                         `gorm:"not null;default:0"`
	OwnedSkins      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	EquippedSkin    *string
	LastDailyAt     *string `gorm:"column:last_daily_at;size:32"`
	CurrentWorld    int     `gorm:"not null;default:1"`
	CurrentLevel    int     `gorm:"not null;default:1"`
	WorldsCompleted int     `gorm:"not null;default:0"`
	UpdatedAt       time.Time
}

func (ProfileGorm) TableName() string {
	return "profiles"
}

func toGormProfile(p domain.Profile) *ProfileGorm {
	return &ProfileGorm{
		ClientID:        p.ClientID,
		Coins:           p.Coins,
		OwnedSkins:      datatypes.NewJSONSlice(p.OwnedSkins),
		EquippedSkin:    nullable(p.EquippedSkin),
		LastDailyAt:     nullable(p.LastDailyClaim),
		CurrentWorld:    p.CurrentWorld,
		CurrentLevel:    p.CurrentLevel,
		WorldsCompleted: p.WorldsCompleted,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toDomainProfile(r *ProfileGorm) domain.Profile {
	return domain.Profile{
		ClientID:        r.ClientID,
		Coins:           r.Coins,
		OwnedSkins:      append([]string(nil), r.OwnedSkins...),
		EquippedSkin:    deref(r.EquippedSkin),
		LastDailyClaim:  deref(r.LastDailyAt),
		CurrentWorld:    r.CurrentWorld,
		CurrentLevel:    r.CurrentLevel,
		WorldsCompleted: r.WorldsCompleted,
		UpdatedAt:       r.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Migrate() error {
	return r.db.AutoMigrate(&ProfileGorm{})
}

// Upsert overwrites the whole record for p.ClientID.
func (r *ProfileRepository) Upsert(ctx context.Context, p domain.Profile) error {
	row := toGormProfile(p)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ClientID, err)
	}
	return nil
}

func (r *ProfileRepository) Fetch(ctx context.Context, clientID string) (domain.Profile, error) {
	var row ProfileGorm
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile %s: %w", clientID, err)
	}
	return toDomainProfile(&row), nil
}
