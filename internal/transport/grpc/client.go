package grpc_server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/waste3d/memorymatch/internal/domain"
	"github.com/waste3d/memorymatch/internal/infrastructure/security"
)

// MirrorClient is the device side of the ProfileMirror service; it satisfies
// mirror.Remote.
type MirrorClient struct {
	conn   *grpc.ClientConn
	tokens *security.TokenManager
}

// NewMirrorClient connects to target. tokens may be nil when the server runs
// without authentication.
func NewMirrorClient(target string, tokens *security.TokenManager, opts ...grpc.DialOption) (*MirrorClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial mirror %s: %w", target, err)
	}
	return &MirrorClient{conn: cc, tokens: tokens}, nil
}

func (c *MirrorClient) Upsert(ctx context.Context, p domain.Profile) error {
	in, err := profileToStruct(p)
	if err != nil {
		return err
	}
	ctx, err = c.withToken(ctx, p.ClientID)
	if err != nil {
		return err
	}
	if err := c.conn.Invoke(ctx, upsertMethod, in, new(emptypb.Empty)); err != nil {
		return fmt.Errorf("mirror upsert: %w", err)
	}
	return nil
}

func (c *MirrorClient) Fetch(ctx context.Context, clientID string) (domain.Profile, error) {
	ctx, err := c.withToken(ctx, clientID)
	if err != nil {
		return domain.Profile{}, err
	}

	out := new(structpb.Struct)
	err = c.conn.Invoke(ctx, fetchMethod, wrapperspb.String(clientID), out)
	if status.Code(err) == codes.NotFound {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("mirror fetch: %w", err)
	}
	return profileFromStruct(out)
}

func (c *MirrorClient) Close() error {
	return c.conn.Close()
}

func (c *MirrorClient) withToken(ctx context.Context, clientID string) (context.Context, error) {
	if c.tokens == nil {
		return ctx, nil
	}
	tok, err := c.tokens.Generate(clientID)
	if err != nil {
		return nil, fmt.Errorf("sign mirror token: %w", err)
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok), nil
}
