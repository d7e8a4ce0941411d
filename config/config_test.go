package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, ":9090", cfg.MirrorGRPCPort)
	assert.Equal(t, 10*time.Second, cfg.PushTimeout)
	assert.Equal(t, 50, cfg.DailyReward)
	assert.Empty(t, cfg.MirrorURL)
	assert.Nil(t, cfg.Origins())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	env := "STORE_DRIVER=redis\nDAILY_REWARD=75\nALLOWED_ORIGINS=https://a.example, https://b.example\nPUSH_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(env), 0o600))
	t.Setenv("DAILY_REWARD", "90")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, 90, cfg.DailyReward)
	assert.Equal(t, 3*time.Second, cfg.PushTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestLoadConfig_RejectsNonPositiveDailyReward(t *testing.T) {
	for _, v := range []string{"0", "-100"} {
		t.Setenv("DAILY_REWARD", v)
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "DAILY_REWARD", "value %s", v)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "mm"}
	assert.Equal(t, "host=db user=u password=p dbname=mm port=5433 sslmode=disable", cfg.PostgresDSN())
}
