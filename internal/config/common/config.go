// Package common_config holds the config sections shared by every webping
// binary and their conversions into runtime types.
package common_config

import (
	"fmt"
	"time"

	"github.com/NordCoder/webping/internal/obs"
	"github.com/NordCoder/webping/internal/ping"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func (oc *OTEL) AsOTELConfig(app App) obs.OTELConfig {
	return obs.OTELConfig{
		Enable:      oc.Enable,
		Endpoint:    oc.OTLPEndpoint,
		ServiceName: oc.ServiceName,
		Version:     app.Version,
		SampleRatio: oc.SampleRatio,
	}
}

type Log struct {
	Level      string `mapstructure:"level"`
	Pretty     bool   `mapstructure:"pretty"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func (lc *Log) AsLoggerConfig(app App) obs.LogConfig {
	return obs.LogConfig{
		Level:      lc.Level,
		Pretty:     lc.Pretty,
		App:        "webping/" + app.Name,
		Env:        app.Env,
		Ver:        app.Version,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
	}
}

// Probe carries the default per-probe settings and the shared client settings.
type Probe struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	ExpectedString string        `mapstructure:"expected_string"`
	ReturnHeaders  bool          `mapstructure:"return_headers"`
	ComputeDigests bool          `mapstructure:"compute_digests"`

	UserAgent       string        `mapstructure:"user_agent"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	FollowRedirects bool          `mapstructure:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"`
	VerifyTLS       bool          `mapstructure:"verify_tls"`
}

func (p *Probe) Validate() error {
	if p.Timeout <= 0 {
		return ErrConfig(fmt.Sprintf("probe.timeout must be positive, got %s", p.Timeout))
	}
	if p.DialTimeout < 0 {
		return ErrConfig(fmt.Sprintf("probe.dial_timeout must not be negative, got %s", p.DialTimeout))
	}
	if p.MaxRedirects < 0 {
		return ErrConfig(fmt.Sprintf("probe.max_redirects must not be negative, got %d", p.MaxRedirects))
	}
	return nil
}

func (p *Probe) AsPingConfig() ping.Config {
	return ping.Config{
		ExpectedString: p.ExpectedString,
		ReturnHeaders:  p.ReturnHeaders,
		Timeout:        p.Timeout,
		DisableDigests: !p.ComputeDigests,
	}
}

func (p *Probe) AsClientConfig(tp trace.TracerProvider) ping.ClientConfig {
	return ping.ClientConfig{
		DialTimeout:        p.DialTimeout,
		FollowRedirects:    p.FollowRedirects,
		MaxRedirects:       p.MaxRedirects,
		InsecureSkipVerify: !p.VerifyTLS,
		TracerProvider:     tp,
	}
}

// NewPinger builds a pinger from the client settings. tp may be nil.
func (p *Probe) NewPinger(tp trace.TracerProvider, o ping.Observer) *ping.Pinger {
	opts := []ping.Option{
		ping.WithClient(ping.NewHTTPClient(p.AsClientConfig(tp))),
		ping.WithUserAgent(p.UserAgent),
		ping.WithObserver(o),
	}
	if tp != nil {
		opts = append(opts, ping.WithTracer(tp.Tracer("webping/ping")))
	}
	return ping.New(opts...)
}

// SetDefaults registers the defaults of the shared sections under the usual keys.
func SetDefaults(v *viper.Viper, service string) {
	v.SetDefault("app.name", service)
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.version", "dev")

	v.SetDefault("probe.timeout", ping.DefaultTimeout.String())
	v.SetDefault("probe.expected_string", "")
	v.SetDefault("probe.return_headers", false)
	v.SetDefault("probe.compute_digests", true)
	v.SetDefault("probe.user_agent", ping.DefaultUserAgent)
	v.SetDefault("probe.dial_timeout", "0s")
	v.SetDefault("probe.follow_redirects", false)
	v.SetDefault("probe.max_redirects", 10)
	v.SetDefault("probe.verify_tls", true)

	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.service_name", service)
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.otlp_endpoint", "localhost:4317")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
}

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }
