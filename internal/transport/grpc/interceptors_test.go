package grpc_server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/waste3d/memorymatch/internal/infrastructure/security"
)

func okHandler(ctx context.Context, req interface{}) (interface{}, error) {
	return ctx.Value(clientIDKey{}), nil
}

func TestAuthInterceptor(t *testing.T) {
	tokens := security.NewTokenManager(testSecret, time.Minute)
	auth := AuthInterceptor(tokens)
	info := &grpc.UnaryServerInfo{FullMethod: fetchMethod}

	tok, err := tokens.Generate("c-1")
	require.NoError(t, err)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tok))
	got, err := auth(ctx, nil, info, okHandler)
	require.NoError(t, err)
	assert.Equal(t, "c-1", got)

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", tok))
	_, err = auth(ctx, nil, info, okHandler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	other := security.NewTokenManager("other-secret", time.Minute)
	forged, err := other.Generate("c-1")
	require.NoError(t, err)
	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+forged))
	_, err = auth(ctx, nil, info, okHandler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, authorize(context.Background(), "anyone"))

	ctx := context.WithValue(context.Background(), clientIDKey{}, "c-1")
	assert.NoError(t, authorize(ctx, "c-1"))
	assert.Equal(t, codes.PermissionDenied, status.Code(authorize(ctx, "c-2")))
}

func TestRateLimitInterceptor_RedisDownLetsCallsThrough(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()

	limit := RateLimitInterceptor(rdb, 1, time.Minute)
	info := &grpc.UnaryServerInfo{FullMethod: upsertMethod}
	for i := 0; i < 3; i++ {
		_, err := limit(context.Background(), nil, info, okHandler)
		require.NoError(t, err)
	}
}

func TestRateLimitInterceptor_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	limit := RateLimitInterceptor(rdb, 2, time.Minute)
	info := &grpc.UnaryServerInfo{FullMethod: upsertMethod}
	ctx := context.WithValue(context.Background(), clientIDKey{}, "c-1")

	for i := 0; i < 2; i++ {
		_, err := limit(ctx, nil, info, okHandler)
		require.NoError(t, err)
	}
	_, err := limit(ctx, nil, info, okHandler)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	other := context.WithValue(context.Background(), clientIDKey{}, "c-2")
	_, err = limit(other, nil, info, okHandler)
	assert.NoError(t, err)

	mr.FastForward(time.Minute)
	_, err = limit(ctx, nil, info, okHandler)
	assert.NoError(t, err)
}

func TestCallerKey(t *testing.T) {
	assert.Equal(t, "unknown", callerKey(context.Background()))

	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 5555}})
	assert.Equal(t, "10.0.0.7", callerKey(ctx))

	ctx = context.WithValue(ctx, clientIDKey{}, "c-1")
	assert.Equal(t, "c-1", callerKey(ctx))
}
