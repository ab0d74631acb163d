package probe

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GrpcServer struct {
	log *zap.Logger
	uc  *Usecase
}

var _ PingServiceServer = (*GrpcServer)(nil)

func NewServer(log *zap.Logger, uc *Usecase) *GrpcServer {
	return &GrpcServer{log: log.With(zap.String("component", "grpc.ping")), uc: uc}
}

func (s *GrpcServer) mapErr(err error) error {
	if IsInvalidInput(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	s.log.Error("ping failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func (s *GrpcServer) Ping(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	rec, err := s.uc.PingStruct(ctx, in)
	if err != nil {
		return nil, s.mapErr(err)
	}
	out, err := rec.Struct()
	if err != nil {
		return nil, s.mapErr(err)
	}
	return out, nil
}
