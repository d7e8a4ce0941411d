package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste3d/memorymatch/internal/domain"
)

func TestUserThemesDefaults(t *testing.T) {
	e, _, _ := newTestEngine(t)

	th := e.UserThemes()
	assert.Equal(t, []string{domain.DefaultSkinID}, th.Owned)
	assert.Equal(t, domain.DefaultSkinID, th.Equipped)
}

func TestBuySkin(t *testing.T) {
	e, _, _ := newTestEngine(t)

	ok, err := e.BuySkin("ocean")
	require.NoError(t, err)
	assert.False(t, ok, "cannot afford")
	assert.Equal(t, 0, e.Coins())
	assert.False(t, e.Profile().Owns("ocean"))

	_, err = e.AddCoins(200)
	require.NoError(t, err)

	ok, err = e.BuySkin("ocean")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 50, e.Coins())
	assert.Equal(t, []string{domain.DefaultSkinID, "ocean"}, e.UserThemes().Owned)

	ok, err = e.BuySkin("ocean")
	require.NoError(t, err)
	assert.False(t, ok, "already owned")
	assert.Equal(t, 50, e.Coins())

	_, err = e.BuySkin("unicorn")
	assert.ErrorIs(t, err, domain.ErrUnknownSkin)
}

func TestEquipRequiresOwnership(t *testing.T) {
	e, _, _ := newTestEngine(t)

	assert.False(t, e.EquipTheme("neon"))
	assert.Equal(t, domain.DefaultSkinID, e.UserThemes().Equipped)

	assert.True(t, e.OwnTheme("neon"))
	assert.False(t, e.OwnTheme("neon"))
	assert.False(t, e.OwnTheme("unicorn"))

	assert.True(t, e.EquipTheme("neon"))
	assert.Equal(t, "neon", e.UserThemes().Equipped)
	assert.Equal(t, "neon", e.Profile().EquippedSkin)
}
