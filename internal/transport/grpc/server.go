package grpc_server

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/waste3d/memorymatch/internal/domain"
	"github.com/waste3d/memorymatch/internal/mirror"
)

// MirrorServer serves whole-record upsert and select-by-key over a
// mirror.Remote (normally the Postgres repository behind the Redis cache).
type MirrorServer struct {
	remote mirror.Remote
	log    *zap.Logger
}

func NewMirrorServer(remote mirror.Remote, log *zap.Logger) *MirrorServer {
	return &MirrorServer{remote: remote, log: log}
}

func (s *MirrorServer) Register(gs *grpc.Server) {
	gs.RegisterService(&profileMirrorServiceDesc, s)
}

func (s *MirrorServer) Upsert(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	p, err := profileFromStruct(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid profile: %v", err)
	}
	if err := authorize(ctx, p.ClientID); err != nil {
		return nil, err
	}

	if err := s.remote.Upsert(ctx, p); err != nil {
		s.log.Error("upsert profile", zap.String("client_id", p.ClientID), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to save profile")
	}
	return &emptypb.Empty{}, nil
}

func (s *MirrorServer) Fetch(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	clientID := req.GetValue()
	if clientID == "" {
		return nil, status.Error(codes.InvalidArgument, "client id is required")
	}
	if err := authorize(ctx, clientID); err != nil {
		return nil, err
	}

	p, err := s.remote.Fetch(ctx, clientID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, status.Error(codes.NotFound, "profile not found")
	}
	if err != nil {
		s.log.Error("fetch profile", zap.String("client_id", clientID), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load profile")
	}

	out, err := profileToStruct(p)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
