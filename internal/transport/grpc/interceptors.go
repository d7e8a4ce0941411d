package grpc_server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/waste3d/memorymatch/internal/infrastructure/security"
)

type clientIDKey struct{}

// AuthInterceptor requires a bearer client-identity token on every call and
// stores its subject in the context.
func AuthInterceptor(tokens *security.TokenManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization metadata is required")
		}

		parts := strings.Split(values[0], " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return nil, status.Error(codes.Unauthenticated, "invalid authorization format")
		}

		clientID, err := tokens.Validate(parts[1])
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		return handler(context.WithValue(ctx, clientIDKey{}, clientID), req)
	}
}

// authorize rejects access to another client's record. Without an auth
// interceptor in the chain every client id is allowed.
func authorize(ctx context.Context, clientID string) error {
	caller, ok := ctx.Value(clientIDKey{}).(string)
	if ok && caller != clientID {
		return status.Error(codes.PermissionDenied, "token does not match client id")
	}
	return nil
}

// RateLimitInterceptor allows limit calls per caller per window, counted in
// Redis. Redis errors let the call through.
func RateLimitInterceptor(rdb *redis.Client, limit int, window time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		key := fmt.Sprintf("rate_limit:mirror:%s", callerKey(ctx))

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			return handler(ctx, req)
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}
		if count > int64(limit) {
			ttl, _ := rdb.TTL(ctx, key).Result()
			return nil, status.Errorf(codes.ResourceExhausted, "too many requests, retry in %.0fs", ttl.Seconds())
		}
		return handler(ctx, req)
	}
}

func callerKey(ctx context.Context) string {
	if id, ok := ctx.Value(clientIDKey{}).(string); ok {
		return id
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		host := p.Addr.String()
		if i := strings.LastIndex(host, ":"); i > 0 {
			host = host[:i]
		}
		return host
	}
	return "unknown"
}
