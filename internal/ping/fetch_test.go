package ping

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stallingListener accepts TCP connections and never writes to them, so a TLS
// client waits forever for the ServerHello.
func stallingListener(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return ln.Addr().String()
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewHTTPClient_TransportHasNoOwnBudget(t *testing.T) {
	tr, ok := NewHTTPClient(ClientConfig{}).Transport.(*http.Transport)
	require.True(t, ok)
	require.Zero(t, tr.TLSHandshakeTimeout)
	require.Zero(t, tr.ResponseHeaderTimeout)
	require.True(t, tr.DisableCompression)
}

func TestPing_StalledTLSHandshakeTimesOutAtBudget(t *testing.T) {
	addr := stallingListener(t)
	budget := 300 * time.Millisecond

	res, err := New().Ping(context.Background(), "https://"+addr+"/", Config{Timeout: budget})
	require.NoError(t, err)

	require.Equal(t, OutcomeTimedOut, res.Outcome)
	require.True(t, res.TimedOut)
	require.Nil(t, res.ResponseCode)
	require.NotNil(t, res.RequestTime)
	// The clock starts just after the deadline is set.
	require.GreaterOrEqual(t, *res.RequestTime, budget-10*time.Millisecond)
}

func TestPing_DialCapBelowBudgetIsConnectionFailure(t *testing.T) {
	client := NewHTTPClient(ClientConfig{})
	// Reuse the real transport but fail every dial the way a dial cap does.
	client.Transport.(*http.Transport).DialContext = func(context.Context, string, string) (net.Conn, error) {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}}
	}

	res, err := New(WithClient(client)).Ping(context.Background(), "http://example.test/", Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	require.Equal(t, OutcomeConnectionFailed, res.Outcome)
	require.False(t, res.TimedOut)
	require.Error(t, res.Err)
	require.Less(t, *res.RequestTime, 5*time.Second)
}

func TestPing_TransportTimeoutErrorIsConnectionFailure(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, timeoutErr{}
	})}

	res, err := New(WithClient(client)).Ping(context.Background(), "https://example.test/", Config{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Equal(t, OutcomeConnectionFailed, res.Outcome)
	require.False(t, res.TimedOut)
}

func TestPing_CallerDeadlineBeforeHeadersIsNotATimeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := New().Ping(ctx, s.URL, Config{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Equal(t, OutcomeConnectionFailed, res.Outcome)
	require.False(t, res.TimedOut)
	require.ErrorIs(t, res.Err, context.DeadlineExceeded)
	require.Nil(t, res.ResponseCode)
}

func TestPing_CallerDeadlineDuringBodyIsStreamFailure(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	res, err := New().Ping(ctx, s.URL, Config{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Equal(t, OutcomeStreamFailed, res.Outcome)
	require.False(t, res.TimedOut)
	require.Equal(t, 200, *res.ResponseCode)
	require.Equal(t, int64(len("partial")), *res.ResponseSize)
	require.Nil(t, res.ResponseMD5)
}

func TestPing_CompressedBodyIsMeasuredAsSent(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(strings.Repeat("webping ", 64)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	encoded := buf.Bytes()

	acceptEncoding := make(chan string, 1)
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acceptEncoding <- r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Length", strconv.Itoa(len(encoded)))
		_, _ = w.Write(encoded)
	}))
	defer s.Close()

	res, err := New().Ping(context.Background(), s.URL, Config{Timeout: 2 * time.Second, ReturnHeaders: true})
	require.NoError(t, err)

	require.Empty(t, <-acceptEncoding)
	require.Equal(t, "gzip", res.Headers["Content-Encoding"])
	require.Equal(t, strconv.Itoa(len(encoded)), res.Headers["Content-Length"])
	require.Equal(t, "text/plain", res.Headers["Content-Type"])
	require.Equal(t, int64(len(encoded)), *res.ResponseSize)

	sum := md5.Sum(encoded) //nolint:gosec
	require.Equal(t, hex.EncodeToString(sum[:]), *res.ResponseMD5)
}
