// Package ping implements a single timed HTTP(S) availability probe: URL
// validation, one GET bounded by a timeout, streaming digests and substring
// matching over the body, and assembly of an immutable Result.
//
// A Pinger carries no per-probe state and may be shared between goroutines.
package ping

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const DefaultUserAgent = "webping/1.0"

type Pinger struct {
	client    *http.Client
	userAgent string
	clock     Clock
	observer  Observer
	tracer    trace.Tracer
}

type Option func(*Pinger)

func WithClient(c *http.Client) Option {
	return func(p *Pinger) {
		if c != nil {
			p.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header; an empty string leaves Go's default.
func WithUserAgent(ua string) Option {
	return func(p *Pinger) { p.userAgent = ua }
}

func WithClock(c Clock) Option {
	return func(p *Pinger) {
		if c != nil {
			p.clock = c
		}
	}
}

func WithObserver(o Observer) Option {
	return func(p *Pinger) {
		if o != nil {
			p.observer = o
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(p *Pinger) {
		if t != nil {
			p.tracer = t
		}
	}
}

func New(opts ...Option) *Pinger {
	p := &Pinger{
		userAgent: DefaultUserAgent,
		clock:     systemClock{},
		observer:  nopObserver{},
		tracer:    noop.NewTracerProvider().Tracer("webping/ping"),
	}
	for _, o := range opts {
		o(p)
	}
	if p.client == nil {
		p.client = NewHTTPClient(ClientConfig{})
	}
	return p
}

// Ping validates raw and probes it. The only error is ErrInvalidURL; network
// failures and timeouts are reported inside the Result.
func (p *Pinger) Ping(ctx context.Context, raw string, cfg Config) (Result, error) {
	t, err := Validate(raw)
	if err != nil {
		p.observer.Observe(ctx, Event{Kind: EventRejected, URL: raw, At: p.clock.Now(), Err: err})
		return Result{}, err
	}
	return p.Probe(ctx, t, cfg), nil
}

// Probe performs exactly one request against t and blocks until it completes,
// fails or times out.
func (p *Pinger) Probe(ctx context.Context, t Target, cfg Config) Result {
	ctx, span := p.tracer.Start(ctx, "ping.probe",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("url.full", t.String()),
			attribute.Bool("ping.return_headers", cfg.ReturnHeaders),
			attribute.Bool("ping.expect_string", cfg.ExpectedString != ""),
		),
	)
	defer span.End()

	p.observer.Observe(ctx, Event{Kind: EventStarted, URL: t.String(), At: p.clock.Now()})

	res := Assemble(t, cfg, p.fetch(ctx, t, cfg))

	span.SetAttributes(
		attribute.String("ping.outcome", res.Outcome.String()),
		attribute.Bool("ping.timed_out", res.TimedOut),
	)
	if res.ResponseCode != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", *res.ResponseCode))
	}
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Outcome.String())
	}

	p.observer.Observe(ctx, Event{Kind: EventFinished, URL: res.URL, At: p.clock.Now(), Result: &res})
	return res
}
