package ping

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxRedirects = 10

type ClientConfig struct {
	// DialTimeout optionally caps TCP connect below the probe timeout. Zero
	// leaves connect bounded by the probe timeout alone. A connect that hits
	// this cap is a connection failure, not a probe timeout.
	DialTimeout        time.Duration
	FollowRedirects    bool
	MaxRedirects       int
	InsecureSkipVerify bool
	// TracerProvider enables an otelhttp client transport when set.
	TracerProvider trace.TracerProvider
}

// NewHTTPClient builds the probe client. Keep-alives are off so every probe
// dials a fresh connection and the transport never replays a request on a
// stale pooled one. The transport has no timeouts of its own beyond
// DialTimeout; the probe context owns the budget. Compression is off so headers,
// size and digests describe the bytes the server sent.
func NewHTTPClient(cfg ClientConfig) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   max(cfg.DialTimeout, 0),
			KeepAlive: -1,
		}).DialContext,
		DisableKeepAlives:  true,
		DisableCompression: true,
		ForceAttemptHTTP2:  true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for self-signed targets
			MinVersion:         tls.VersionTLS12,
		},
	}

	var rt http.RoundTripper = transport
	if cfg.TracerProvider != nil {
		rt = otelhttp.NewTransport(transport,
			otelhttp.WithTracerProvider(cfg.TracerProvider),
			otelhttp.WithPropagators(propagation.NewCompositeTextMapPropagator(
				propagation.TraceContext{}, propagation.Baggage{},
			)),
		)
	}

	client := &http.Client{Transport: rt}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return client
	}

	maxHops := cfg.MaxRedirects
	if maxHops <= 0 {
		maxHops = defaultMaxRedirects
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxHops {
			return http.ErrUseLastResponse
		}
		return nil
	}
	return client
}
