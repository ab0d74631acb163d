package ping_api_config

import (
	"fmt"
	"strings"
	"time"

	common "github.com/NordCoder/webping/internal/config/common"
	"github.com/spf13/viper"
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

	common.SetDefaults(v, "ping-api")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.grpc_addr", ":9090")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.graceful_timeout", "15s")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_probe_timeout", "60s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Probe.Validate(); err != nil {
		return nil, err
	}
	if cfg.Server.MaxProbeTimeout < cfg.Probe.Timeout {
		return nil, common.ErrConfig(fmt.Sprintf("server.max_probe_timeout %s is below probe.timeout %s",
			cfg.Server.MaxProbeTimeout, cfg.Probe.Timeout))
	}
	// The slowest allowed probe must still be able to write its response.
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = cfg.Server.MaxProbeTimeout + 5*time.Second
	}
	return &cfg, nil
}
