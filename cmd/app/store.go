package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/waste3d/memorymatch/config"
	"github.com/waste3d/memorymatch/internal/catalog"
	"github.com/waste3d/memorymatch/internal/domain"
	"github.com/waste3d/memorymatch/internal/infrastructure/security"
	"github.com/waste3d/memorymatch/internal/kvstore"
	"github.com/waste3d/memorymatch/internal/mirror"
	"github.com/waste3d/memorymatch/internal/progression"
	grpc_server "github.com/waste3d/memorymatch/internal/transport/grpc"
)

// openStore returns the local KV backend named by STORE_DRIVER and a func
// that releases it.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (kvstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		return kvstore.NewMemory(), func() {}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis store unreachable, values will not persist", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		return kvstore.NewRedis(rdb, cfg.RedisPrefix, log), func() { _ = rdb.Close() }, nil

	case "sqlite", "":
		db, err := kvstore.OpenSQLite(cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// newEngine wires the engine to the store and, when MIRROR_URL is set, to the
// remote mirror.
func newEngine(cfg config.Config, store kvstore.Store, log *zap.Logger) (*progression.Engine, *mirror.Pusher, func(), error) {
	opts := []progression.Option{
		progression.WithLogger(log),
		progression.WithDailyReward(cfg.DailyReward),
		progression.WithCelebration(func(ev domain.WorldUnlockEvent) {
			log.Info("world completed",
				zap.Int("completed_world", ev.CompletedWorld),
				zap.Int("unlocked_world", ev.UnlockedWorld),
				zap.Int("coins_earned", ev.CoinsEarned),
				zap.Bool("game_complete", ev.IsGameComplete))
		}),
	}

	if cfg.MirrorURL == "" {
		log.Info("remote mirror disabled")
		return progression.New(store, catalog.Default(), opts...), nil, func() {}, nil
	}

	var tokens *security.TokenManager
	if cfg.MirrorSecret != "" {
		tokens = security.NewTokenManager(cfg.MirrorSecret, 0)
	}
	client, err := grpc_server.NewMirrorClient(cfg.MirrorURL, tokens)
	if err != nil {
		return nil, nil, nil, err
	}
	pusher := mirror.NewPusher(client, log, cfg.PushTimeout)
	opts = append(opts, progression.WithRemote(pusher))

	return progression.New(store, catalog.Default(), opts...), pusher, func() { _ = client.Close() }, nil
}
