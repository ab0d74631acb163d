package ping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Exchange is what the fetcher observed for one request.
type Exchange struct {
	// Dispatched is false only when the request could not be built.
	Dispatched bool
	Outcome    Outcome
	Err        error
	StatusCode int
	Header     http.Header
	Elapsed    time.Duration
	Body       *Body
}

// Body summarizes the streamed response body.
type Body struct {
	Size int64
	// Complete is false when the read stopped early.
	Complete bool
	// MD5 and SHA224 are empty unless digests ran over the complete body.
	MD5    string
	SHA224 string
	// Matched is nil when no expected string was configured.
	Matched *bool
}

// errProbeTimeout marks the probe's own deadline, so that a shorter caller
// deadline or a transport-internal timeout is not reported as a timeout.
var errProbeTimeout = errors.New("probe timeout exceeded")

func (p *Pinger) fetch(ctx context.Context, t Target, cfg Config) Exchange {
	ctx, cancel := context.WithTimeoutCause(ctx, cfg.timeout(), errProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.String(), nil)
	if err != nil {
		return Exchange{Outcome: OutcomeConnectionFailed, Err: fmt.Errorf("build request: %w", err)}
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	start := p.clock.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		ex := Exchange{
			Dispatched: true,
			Outcome:    OutcomeConnectionFailed,
			Err:        err,
			Elapsed:    p.clock.Now().Sub(start),
		}
		if probeTimedOut(ctx) {
			ex.Outcome = OutcomeTimedOut
		}
		return ex
	}
	defer func() { _ = resp.Body.Close() }()

	p.observer.Observe(ctx, Event{Kind: EventResponse, URL: t.String(), At: p.clock.Now(), StatusCode: resp.StatusCode})

	var (
		digest *Digest
		count  *counter
		match  *Matcher
		sinks  []io.Writer
	)
	if cfg.DisableDigests {
		count = &counter{}
		sinks = append(sinks, count)
	} else {
		digest = NewDigest()
		sinks = append(sinks, digest)
	}
	if cfg.ExpectedString != "" {
		match = NewMatcher(cfg.ExpectedString)
		sinks = append(sinks, match)
	}

	_, rerr := io.Copy(io.MultiWriter(sinks...), resp.Body)
	elapsed := p.clock.Now().Sub(start)

	if rerr != nil && probeTimedOut(ctx) {
		return Exchange{Dispatched: true, Outcome: OutcomeTimedOut, Err: rerr, Elapsed: elapsed}
	}

	body := &Body{Complete: rerr == nil}
	if digest != nil {
		body.Size = digest.Size()
		if body.Complete {
			body.MD5 = digest.MD5()
			body.SHA224 = digest.SHA224()
		}
	} else {
		body.Size = count.n
	}
	if match != nil {
		found := match.Found()
		body.Matched = &found
	}

	ex := Exchange{
		Dispatched: true,
		Outcome:    OutcomeCompleted,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Elapsed:    elapsed,
		Body:       body,
	}
	if rerr != nil {
		ex.Outcome = OutcomeStreamFailed
		ex.Err = fmt.Errorf("read body: %w", rerr)
	}
	return ex
}

func probeTimedOut(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), errProbeTimeout)
}
