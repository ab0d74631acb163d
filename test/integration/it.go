//go:build integration

package integration

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/NordCoder/webping/internal/record"
	kafkax "github.com/NordCoder/webping/internal/repository/kafka"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Cfg struct {
	KafkaBootstrap string
	InTopic        string
	OutTopic       string
	HealthURL      string
	// TargetURL must be reachable from the worker, not from the test.
	TargetURL string
}

func LoadCfg() Cfg {
	return Cfg{
		KafkaBootstrap: getenv("IT_BOOTSTRAP", "127.0.0.1:19092"),
		InTopic:        getenv("IT_PW_IN_TOPIC", "webping.ping.request"),
		OutTopic:       getenv("IT_PW_OUT_TOPIC", "webping.ping.result"),
		HealthURL:      getenv("IT_PW_HEALTH", "http://127.0.0.1:8083/healthz"),
		TargetURL:      getenv("IT_TARGET_URL", "http://http-echo:80/"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func WaitTCP(t *testing.T, name, addr string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var last error
	for time.Now().Before(deadline) {
		c, err := net.DialTimeout("tcp", addr, 1500*time.Millisecond)
		if err == nil {
			_ = c.Close()
			t.Logf("[it] %s ready at %s", name, addr)
			return
		}
		last = err
		time.Sleep(300 * time.Millisecond)
	}
	t.Fatalf("[it] %s not reachable at %s: %v", name, addr, last)
}

func WaitHealthz(t *testing.T, url string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				t.Logf("[it] healthz OK: %s", url)
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("[it] healthz failed: %s", url)
}

func EnsureTopic(t *testing.T, bootstrap, topic string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, kafkax.EnsureTopic(ctx, []string{bootstrap}, kafkax.TopicSpec{
		Name:    topic,
		MaxWait: 20 * time.Second,
	}, zaptest.NewLogger(t)))
}

func PublishRequest(t *testing.T, bootstrap, topic string, req record.Request) {
	t.Helper()
	ev := kafkax.NewPingEvents(kafkax.NewProducer([]string{bootstrap}, topic))
	defer func() { _ = ev.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, ev.PublishRequest(ctx, req))
	t.Logf("[kafka] request published topic=%s url=%s", topic, req.URL)
}

// ReadResult returns the first result keyed by url, skipping other messages.
func ReadResult(t *testing.T, bootstrap, topic, url string, timeout time.Duration) (record.Record, bool) {
	t.Helper()
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{bootstrap},
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for {
		msg, err := r.ReadMessage(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, false
		}
		require.NoError(t, err)
		if string(msg.Key) != url {
			continue
		}
		s := &structpb.Struct{}
		require.NoError(t, proto.Unmarshal(msg.Value, s))
		return record.FromStruct(s), true
	}
}
