package main

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/waste3d/memorymatch/internal/infrastructure/cache"
	"github.com/waste3d/memorymatch/internal/infrastructure/repository"
	"github.com/waste3d/memorymatch/internal/infrastructure/security"
	grpc_server "github.com/waste3d/memorymatch/internal/transport/grpc"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Run the remote profile mirror (gRPC over Postgres and Redis)",
	RunE:  runMirror,
}

func runMirror(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Database
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to DB: %w", err)
	}

	// 2. Migrations (profiles table)
	log.Info("running migrations")
	repo := repository.NewProfileRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("migrate DB: %w", err)
	}

	// 3. Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to Redis: %w", err)
	}

	// 4. Layers
	remote := cache.NewCachedRemote(repo, cache.NewProfileCache(rdb, 0), log)
	mirrorServer := grpc_server.NewMirrorServer(remote, log)

	var interceptors []grpc.UnaryServerInterceptor
	if cfg.MirrorSecret != "" {
		interceptors = append(interceptors, grpc_server.AuthInterceptor(security.NewTokenManager(cfg.MirrorSecret, 0)))
	} else {
		log.Warn("MIRROR_SECRET is empty, mirror accepts unauthenticated calls")
	}
	if cfg.MirrorRateLimit > 0 {
		interceptors = append(interceptors, grpc_server.RateLimitInterceptor(rdb, cfg.MirrorRateLimit, cfg.MirrorRateWindow))
	}

	// 5. gRPC server
	lis, err := net.Listen("tcp", cfg.MirrorGRPCPort)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.MirrorGRPCPort, err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	mirrorServer.Register(grpcServer)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	log.Info("profile mirror running", zap.String("addr", cfg.MirrorGRPCPort))
	if err := grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
