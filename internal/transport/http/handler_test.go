package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waste3d/memorymatch/internal/catalog"
	"github.com/waste3d/memorymatch/internal/kvstore"
	"github.com/waste3d/memorymatch/internal/progression"
)

func newTestRouter(t *testing.T) (*gin.Engine, *progression.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := progression.New(kvstore.NewMemory(), catalog.Default(), progression.WithLogger(zap.NewNop()))
	return NewRouter(NewGameHandler(engine, zap.NewNop()), nil), engine
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestGetProfile(t *testing.T) {
	r, engine := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, engine.ClientID(), body["client_id"])
	assert.EqualValues(t, 0, body["coins"])
	assert.EqualValues(t, 1, body["current_level"])
}

func TestCoins(t *testing.T) {
	r, _ := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/v1/coins/add", gin.H{"amount": 30})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 30, body["coins"])

	w, body = do(t, r, http.MethodPost, "/api/v1/coins/spend", gin.H{"amount": 50})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 30, body["coins"])

	w, body = do(t, r, http.MethodPost, "/api/v1/coins/spend", gin.H{"amount": 20})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 10, body["coins"])
}

func TestCoins_BadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/v1/coins/add", gin.H{"amount": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/coins/spend", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDailyClaim(t *testing.T) {
	r, _ := newTestRouter(t)

	_, body := do(t, r, http.MethodGet, "/api/v1/daily", nil)
	assert.Equal(t, true, body["can_claim"])

	_, body = do(t, r, http.MethodPost, "/api/v1/daily/claim", nil)
	assert.EqualValues(t, progression.DailyReward, body["granted"])
	assert.EqualValues(t, progression.DailyReward, body["coins"])

	_, body = do(t, r, http.MethodPost, "/api/v1/daily/claim", nil)
	assert.EqualValues(t, 0, body["granted"])

	_, body = do(t, r, http.MethodGet, "/api/v1/daily", nil)
	assert.Equal(t, false, body["can_claim"])
}

func TestAttemptLifecycle(t *testing.T) {
	r, engine := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/v1/levels/1/attempts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := body["attempt_id"].(string)
	require.NotEmpty(t, id)

	w, body = do(t, r, http.MethodPost, "/api/v1/attempts/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["event"])
	assert.EqualValues(t, 10, body["coins"])

	w, _ = do(t, r, http.MethodPost, "/api/v1/attempts/"+id+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 10, engine.Coins())

	w, _ = do(t, r, http.MethodPost, "/api/v1/attempts/unknown/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttempt_LockedAndUnknownLevels(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/v1/levels/7/attempts", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/levels/99/attempts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/levels/abc/attempts", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorldFinaleEvent(t *testing.T) {
	r, engine := newTestRouter(t)
	for id := 1; id <= 4; id++ {
		_, err := engine.CompleteLevel(id)
		require.NoError(t, err)
	}

	_, body := do(t, r, http.MethodPost, "/api/v1/levels/5/attempts", nil)
	id := body["attempt_id"].(string)

	_, body = do(t, r, http.MethodPost, "/api/v1/attempts/"+id+"/complete", nil)
	ev, ok := body["event"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, ev["completed_world"])
	assert.EqualValues(t, 2, ev["unlocked_world"])
	assert.EqualValues(t, 100, ev["coins_earned"])
	assert.Equal(t, false, ev["is_game_complete"])

	_, body = do(t, r, http.MethodGet, "/api/v1/worlds", nil)
	worlds := body["worlds"].([]interface{})
	require.Len(t, worlds, 5)
	assert.Equal(t, true, worlds[0].(map[string]interface{})["completed"])
	assert.Equal(t, true, worlds[1].(map[string]interface{})["unlocked"])
	assert.Equal(t, false, worlds[2].(map[string]interface{})["unlocked"])
}

func TestListLevels(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/worlds/1/levels", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var levels []levelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &levels))
	require.Len(t, levels, 5)
	assert.True(t, levels[0].Unlocked)
	assert.False(t, levels[1].Unlocked)
	assert.Equal(t, "nature", levels[0].Theme)

	w2, _ := do(t, r, http.MethodGet, "/api/v1/worlds/9/levels", nil)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}

func TestSkins(t *testing.T) {
	r, engine := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/v1/skins/ocean/buy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])

	w, _ = do(t, r, http.MethodPost, "/api/v1/skins/ocean/equip", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	_, err := engine.AddCoins(200)
	require.NoError(t, err)

	_, body = do(t, r, http.MethodPost, "/api/v1/skins/ocean/buy", nil)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 50, body["coins"])

	w, _ = do(t, r, http.MethodPost, "/api/v1/skins/ocean/equip", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, body = do(t, r, http.MethodGet, "/api/v1/skins", nil)
	assert.Equal(t, "ocean", body["equipped_theme"])
	assert.ElementsMatch(t, []interface{}{"default", "ocean"}, body["owned_themes"])

	w, _ = do(t, r, http.MethodPost, "/api/v1/skins/nope/buy", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
