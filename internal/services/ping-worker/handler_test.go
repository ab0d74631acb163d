package ping_worker

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/NordCoder/webping/internal/obs/retry"
	"github.com/NordCoder/webping/internal/ping"
	"github.com/NordCoder/webping/internal/record"
	kafkax "github.com/NordCoder/webping/internal/repository/kafka"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakePublisher struct {
	mu    sync.Mutex
	fails int
	calls int
	recs  []record.Record
}

func (p *fakePublisher) PublishResult(_ context.Context, rec record.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.fails {
		return errors.New("broker unavailable")
	}
	p.recs = append(p.recs, rec)
	return nil
}

// fakeSubscriber hands every value to the handler once.
type fakeSubscriber struct {
	values [][]byte
	errs   []error
}

func (s *fakeSubscriber) Consume(ctx context.Context, h kafkax.Handler) error {
	for i, v := range s.values {
		s.errs = append(s.errs, h(ctx, kafkax.Message{Offset: int64(i), Value: v}))
	}
	return nil
}

func encode(t *testing.T, m map[string]any) []byte {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	b, err := proto.Marshal(s)
	require.NoError(t, err)
	return b
}

func newHandler(pub Publisher) *Handler {
	return &Handler{
		Log:     zap.NewNop(),
		Prober:  ping.New(),
		Results: pub,
		Retry:   retry.Policy{Attempts: 3, Backoff: retry.Constant(0)},
	}
}

func TestController_ProbesAndPublishes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "OK")
	}))
	defer srv.Close()

	pub := &fakePublisher{fails: 2}
	sub := &fakeSubscriber{values: [][]byte{
		encode(t, map[string]any{"url": srv.URL, "expected_string": "OK"}),
		encode(t, map[string]any{"url": "notaurl"}),
		encode(t, map[string]any{"timeout": "soon"}),
		{0xff, 0xff},
	}}
	c := &Controller{Log: zap.NewNop(), Sub: sub, UC: newHandler(pub)}

	require.NoError(t, c.Run(context.Background()))

	require.Len(t, pub.recs, 1)
	require.Equal(t, 3, pub.calls)
	rec := pub.recs[0]
	require.Equal(t, srv.URL, rec[record.KeyURL])
	require.Equal(t, 200, rec[record.KeyResponseCode])
	require.Equal(t, "true", rec[record.KeyHasExpectedString])

	require.NoError(t, sub.errs[0])
	require.NoError(t, sub.errs[1])
	require.NoError(t, sub.errs[2])
	require.ErrorIs(t, sub.errs[3], kafkax.ErrDecode)
}

func TestHandler_PublishExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	pub := &fakePublisher{fails: 10}
	in, err := structpb.NewStruct(map[string]any{"url": srv.URL})
	require.NoError(t, err)

	err = newHandler(pub).HandleRequest(context.Background(), in)
	require.Error(t, err)
	require.Equal(t, 3, pub.calls)
}

func TestHandler_UnreachableIsPublished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	pub := &fakePublisher{}
	in, err := structpb.NewStruct(map[string]any{"url": url})
	require.NoError(t, err)

	require.NoError(t, newHandler(pub).HandleRequest(context.Background(), in))
	require.Len(t, pub.recs, 1)
	require.NotContains(t, pub.recs[0], record.KeyResponseCode)
	require.Equal(t, false, pub.recs[0][record.KeyTimedOut])
}
