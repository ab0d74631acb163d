package ping_worker

import (
	"context"

	kafkax "github.com/NordCoder/webping/internal/repository/kafka"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

type Subscriber interface {
	Consume(ctx context.Context, h kafkax.Handler) error
}

type Controller struct {
	Log *zap.Logger
	Sub Subscriber
	UC  *Handler
}

func (c *Controller) Run(ctx context.Context) error {
	handler := kafkax.ProtoHandler(
		func() *structpb.Struct { return &structpb.Struct{} },
		func(ctx context.Context, msg kafkax.Message, in *structpb.Struct) error {
			c.Log.Debug("ping-request", zap.ByteString("key", msg.Key), zap.Int64("offset", msg.Offset))
			return c.UC.HandleRequest(ctx, in)
		},
	)
	return c.Sub.Consume(ctx, handler)
}
