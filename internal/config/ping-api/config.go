package ping_api_config

import (
	"time"

	common "github.com/NordCoder/webping/internal/config/common"
)

type Server struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	GRPCAddr        string        `mapstructure:"grpc_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	// MaxProbeTimeout bounds the timeout a caller may request.
	MaxProbeTimeout time.Duration `mapstructure:"max_probe_timeout"`
}

type Config struct {
	App    common.App   `mapstructure:"app"`
	Server Server       `mapstructure:"server"`
	Probe  common.Probe `mapstructure:"probe"`
	OTEL   common.OTEL  `mapstructure:"otel"`
	Log    common.Log   `mapstructure:"log"`
}
