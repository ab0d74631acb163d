package ping_worker_config

import (
	"fmt"
	"strings"

	common "github.com/NordCoder/webping/internal/config/common"
	"github.com/spf13/viper"
)

const (
	DefaultRequestTopic = "webping.ping.request"
	DefaultResultTopic  = "webping.ping.result"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	common.SetDefaults(v, "ping-worker")

	v.SetDefault("kafka_in.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka_in.topic", DefaultRequestTopic)
	v.SetDefault("kafka_in.group_id", "ping-worker")

	v.SetDefault("kafka_out.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka_out.topic", DefaultResultTopic)

	v.SetDefault("server.metrics_addr", ":8083")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Probe.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.In.Brokers) == 0 || cfg.In.Topic == "" {
		return nil, common.ErrConfig("kafka_in.brokers and kafka_in.topic are required")
	}
	if len(cfg.Out.Brokers) == 0 || cfg.Out.Topic == "" {
		return nil, common.ErrConfig("kafka_out.brokers and kafka_out.topic are required")
	}
	return &cfg, nil
}
