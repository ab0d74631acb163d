package ping_worker

import (
	"context"
	"errors"

	"github.com/NordCoder/webping/internal/obs"
	"github.com/NordCoder/webping/internal/obs/retry"
	"github.com/NordCoder/webping/internal/ping"
	"github.com/NordCoder/webping/internal/record"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

type Prober interface {
	Ping(ctx context.Context, raw string, cfg ping.Config) (ping.Result, error)
}

type Publisher interface {
	PublishResult(ctx context.Context, rec record.Record) error
}

// Handler runs one probe per request and publishes its record. Invalid
// requests are logged and dropped. Only the publish is retried.
type Handler struct {
	Log      *zap.Logger
	Prober   Prober
	Results  Publisher
	Defaults ping.Config
	Retry    retry.Policy
}

func (h *Handler) HandleRequest(ctx context.Context, in *structpb.Struct) error {
	log := h.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = obs.WithTrace(ctx, log)

	req, err := record.ParseStruct(in, h.Defaults)
	if err != nil {
		log.Warn("invalid ping request", zap.Error(err))
		return nil
	}

	res, err := h.Prober.Ping(ctx, req.URL, req.Config)
	if errors.Is(err, ping.ErrInvalidURL) {
		log.Warn("invalid ping request", zap.String("url", req.URL), zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}

	rec := record.FromResult(res)
	return retry.Do(ctx, func() error {
		return h.Results.PublishResult(ctx, rec)
	}, h.Retry)
}
