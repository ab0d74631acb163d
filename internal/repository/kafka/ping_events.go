package kafka

import (
	"context"
	"fmt"

	"github.com/NordCoder/webping/internal/record"
)

// PingEvents publishes probe requests and results as protobuf Structs keyed
// by target URL, so every message for one target lands on one partition.
type PingEvents struct {
	p *Producer
}

func NewPingEvents(p *Producer) *PingEvents { return &PingEvents{p: p} }

func (e *PingEvents) PublishResult(ctx context.Context, rec record.Record) error {
	s, err := rec.Struct()
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	url, _ := rec[record.KeyURL].(string)
	return e.p.PublishProto(ctx, []byte(url), s)
}

func (e *PingEvents) PublishRequest(ctx context.Context, req record.Request) error {
	s, err := req.Struct()
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return e.p.PublishProto(ctx, []byte(req.URL), s)
}

func (e *PingEvents) Close() error { return e.p.Close() }
