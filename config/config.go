package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort       string `mapstructure:"HTTP_PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	RedisPrefix string `mapstructure:"REDIS_PREFIX"`

	MirrorURL        string        `mapstructure:"MIRROR_URL"`
	MirrorSecret     string        `mapstructure:"MIRROR_SECRET"`
	MirrorGRPCPort   string        `mapstructure:"MIRROR_GRPC_PORT"`
	MirrorRateLimit  int           `mapstructure:"MIRROR_RATE_LIMIT"`
	MirrorRateWindow time.Duration `mapstructure:"MIRROR_RATE_WINDOW"`
	PushTimeout      time.Duration `mapstructure:"PUSH_TIMEOUT"`

	DailyReward int `mapstructure:"DAILY_REWARD"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]interface{}{
	"HTTP_PORT":          ":8080",
	"ALLOWED_ORIGINS":    "",
	"STORE_DRIVER":       "sqlite",
	"SQLITE_PATH":        "memorymatch.db",
	"REDIS_ADDR":         "localhost:6379",
	"REDIS_PREFIX":       "memorymatch:",
	"MIRROR_URL":         "",
	"MIRROR_SECRET":      "",
	"MIRROR_GRPC_PORT":   ":9090",
	"MIRROR_RATE_LIMIT":  60,
	"MIRROR_RATE_WINDOW": time.Minute,
	"PUSH_TIMEOUT":       10 * time.Second,
	"DAILY_REWARD":       50,
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"DB_USER":            "postgres",
	"DB_PASSWORD":        "",
	"DB_NAME":            "memorymatch",
	"LOG_LEVEL":          "info",
}

// LoadConfig reads app.env from path when present; environment variables
// override it.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.DailyReward < 1 {
		err = fmt.Errorf("DAILY_REWARD must be at least 1, got %d", config.DailyReward)
	}
	return
}

// Origins splits ALLOWED_ORIGINS; an empty result allows every origin.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// PostgresDSN is the mirror database connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
