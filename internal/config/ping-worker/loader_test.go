package ping_worker_config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultRequestTopic, cfg.In.Topic)
	require.Equal(t, DefaultResultTopic, cfg.Out.Topic)
	require.Equal(t, "ping-worker", cfg.In.GroupID)
	require.Equal(t, []string{"localhost:9094"}, cfg.Out.Brokers)
	require.Equal(t, 30*time.Second, cfg.Probe.Timeout)
	require.Equal(t, ":8083", cfg.Server.MetricsAddr)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ping-worker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
kafka_in:
  brokers: [kafka:9092]
  topic: probes
kafka_out:
  brokers: [kafka:9092]
probe:
  timeout: 3s
  compute_digests: false
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"kafka:9092"}, cfg.In.Brokers)
	require.Equal(t, "probes", cfg.In.Topic)
	require.Equal(t, DefaultResultTopic, cfg.Out.Topic)
	require.Equal(t, 3*time.Second, cfg.Probe.Timeout)
	require.True(t, cfg.Probe.AsPingConfig().DisableDigests)
}
