package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waste3d/memorymatch/internal/domain"
	"github.com/waste3d/memorymatch/internal/progression"
)

type GameHandler struct {
	engine   *progression.Engine
	attempts *attemptRegistry
	log      *zap.Logger
}

func NewGameHandler(engine *progression.Engine, log *zap.Logger) *GameHandler {
	return &GameHandler{engine: engine, attempts: newAttemptRegistry(), log: log}
}

type profileResponse struct {
	ClientID        string   `json:"client_id"`
	Coins           int      `json:"coins"`
	OwnedSkins      []string `json:"owned_skins"`
	EquippedSkin    string   `json:"equipped_skin"`
	LastDailyAt     string   `json:"last_daily_at,omitempty"`
	CurrentWorld    int      `json:"current_world"`
	CurrentLevel    int      `json:"current_level"`
	WorldsCompleted int      `json:"worlds_completed"`
}

type worldResponse struct {
	World     int    `json:"world"`
	Theme     string `json:"theme"`
	Unlocked  bool   `json:"unlocked"`
	Completed bool   `json:"completed"`
}

type levelResponse struct {
	ID           int    `json:"id"`
	World        int    `json:"world"`
	Level        int    `json:"level"`
	Pairs        int    `json:"pairs"`
	TimeLimit    int    `json:"time_limit"`
	Theme        string `json:"theme"`
	UnlockReward int    `json:"unlock_reward"`
	Unlocked     bool   `json:"unlocked"`
}

type amountRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

// GET /api/v1/profile
func (h *GameHandler) GetProfile(c *gin.Context) {
	p := h.engine.Profile()
	c.JSON(http.StatusOK, profileResponse{
		ClientID:        p.ClientID,
		Coins:           p.Coins,
		OwnedSkins:      p.OwnedSkins,
		EquippedSkin:    p.EquippedSkin,
		LastDailyAt:     p.LastDailyClaim,
		CurrentWorld:    p.CurrentWorld,
		CurrentLevel:    p.CurrentLevel,
		WorldsCompleted: p.WorldsCompleted,
	})
}

// POST /api/v1/coins/add
func (h *GameHandler) AddCoins(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coins, err := h.engine.AddCoins(*req.Amount)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

// POST /api/v1/coins/spend
func (h *GameHandler) SpendCoins(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.engine.SpendCoins(*req.Amount)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok, "coins": h.engine.Coins()})
}

// GET /api/v1/daily
func (h *GameHandler) GetDaily(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"can_claim": h.engine.CanClaimDaily()})
}

// POST /api/v1/daily/claim
func (h *GameHandler) ClaimDaily(c *gin.Context) {
	coins := h.engine.ClaimDailyReward()
	if coins == 0 {
		c.JSON(http.StatusOK, gin.H{"granted": 0, "coins": h.engine.Coins()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"granted": h.engine.DailyReward(), "coins": coins})
}

// GET /api/v1/worlds
func (h *GameHandler) ListWorlds(c *gin.Context) {
	progress := h.engine.WorldProgress()
	cat := h.engine.Catalog()

	worlds := make([]worldResponse, 0, domain.WorldCount)
	for w := 1; w <= domain.WorldCount; w++ {
		worlds = append(worlds, worldResponse{
			World:     w,
			Theme:     cat.WorldTheme(w),
			Unlocked:  h.engine.IsWorldUnlocked(w),
			Completed: progress.WorldsCompleted >= w,
		})
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress, "worlds": worlds})
}

// GET /api/v1/worlds/:world/levels
func (h *GameHandler) ListLevels(c *gin.Context) {
	world, err := strconv.Atoi(c.Param("world"))
	if err != nil || world < 1 || world > domain.WorldCount {
		c.JSON(http.StatusNotFound, gin.H{"error": "World not found"})
		return
	}

	levels := h.engine.Catalog().LevelsByWorld(world)
	out := make([]levelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, levelResponse{
			ID:           l.ID(),
			World:        l.World,
			Level:        l.Level,
			Pairs:        l.Pairs,
			TimeLimit:    l.TimeLimitSeconds,
			Theme:        l.Theme,
			UnlockReward: l.UnlockReward,
			Unlocked:     h.engine.IsLevelUnlocked(l.ID()),
		})
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/v1/levels/:id/attempts
func (h *GameHandler) StartAttempt(c *gin.Context) {
	levelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	a, err := h.engine.StartLevel(levelID)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.attempts.add(a)
	c.JSON(http.StatusCreated, gin.H{"attempt_id": a.ID, "level_id": a.LevelID})
}

// POST /api/v1/attempts/:id/complete
func (h *GameHandler) CompleteAttempt(c *gin.Context) {
	a, ok := h.attempts.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attempt not found"})
		return
	}

	ev, err := h.engine.CompleteAttempt(a)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": ev, "coins": h.engine.Coins()})
}

// GET /api/v1/skins
func (h *GameHandler) ListSkins(c *gin.Context) {
	themes := h.engine.UserThemes()
	c.JSON(http.StatusOK, gin.H{
		"skins":          h.engine.Catalog().Skins(),
		"owned_themes":   themes.Owned,
		"equipped_theme": themes.Equipped,
	})
}

// POST /api/v1/skins/:id/buy
func (h *GameHandler) BuySkin(c *gin.Context) {
	ok, err := h.engine.BuySkin(c.Param("id"))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok, "coins": h.engine.Coins()})
}

// POST /api/v1/skins/:id/equip
func (h *GameHandler) EquipSkin(c *gin.Context) {
	if !h.engine.EquipTheme(c.Param("id")) {
		c.JSON(http.StatusConflict, gin.H{"error": "Skin is not owned"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GameHandler) abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnknownLevel), errors.Is(err, domain.ErrUnknownSkin):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrLevelLocked), errors.Is(err, domain.ErrAttemptSpent):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
