package progression

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/waste3d/memorymatch/internal/domain"
)

// Themes is the shop's view of the player's cosmetics.
type Themes struct {
	Owned    []string `json:"owned_themes"`
	Equipped string   `json:"equipped_theme"`
}

func (e *Engine) UserThemes() Themes {
	p := e.Profile()
	equipped := p.EquippedSkin
	if equipped == "" {
		equipped = domain.DefaultSkinID
	}
	return Themes{Owned: slices.Clone(p.OwnedSkins), Equipped: equipped}
}

// OwnTheme records ownership of a catalog skin. It is false for unknown
// skins and for skins already owned.
func (e *Engine) OwnTheme(id string) bool {
	if _, ok := e.catalog.Skin(id); !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ownLocked(id)
}

func (e *Engine) ownLocked(id string) bool {
	p := e.load()
	if p.Owns(id) {
		return false
	}
	p.OwnedSkins = append(p.OwnedSkins, id)
	e.commit(p)
	return true
}

// EquipTheme equips an owned skin.
func (e *Engine) EquipTheme(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.load()
	if !p.Owns(id) {
		return false
	}
	p.EquippedSkin = id
	e.commit(p)
	return true
}

// BuySkin spends the skin's price and then records ownership. The two steps
// are separate writes and each is mirrored on its own; a failed mirror write
// after the deduction is not rolled back.
func (e *Engine) BuySkin(id string) (bool, error) {
	skin, ok := e.catalog.Skin(id)
	if !ok {
		return false, fmt.Errorf("buy skin %q: %w", id, domain.ErrUnknownSkin)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.load().Owns(id) {
		return false, nil
	}
	if !e.spendLocked(skin.Price) {
		return false, nil
	}
	e.ownLocked(id)

	e.log.Info("skin purchased", zap.String("skin", id), zap.Int("price", skin.Price))
	return true, nil
}
