package webping_config

import (
	"fmt"
	"strings"

	common "github.com/NordCoder/webping/internal/config/common"
	"github.com/NordCoder/webping/internal/record"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FlagExpectedString = "expected-string"
	FlagReturnHeaders  = "return-headers"
	FlagTimeout        = "timeout"
	FlagNoDigests      = "no-digests"
	FlagOutput         = "output"
	FlagNoColor        = "no-color"
	FlagConfig         = "config"
	FlagLogLevel       = "log-level"
	FlagFollow         = "follow-redirects"
	FlagInsecure       = "insecure"
)

// Flags declares the CLI flags read by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(FlagExpectedString, "", "substring the response body must contain")
	fs.Bool(FlagReturnHeaders, false, "include response headers in the record")
	fs.String(FlagTimeout, "", "probe timeout: seconds or a duration such as 5s (default 30s)")
	fs.Bool(FlagNoDigests, false, "skip MD5/SHA-224 of the body")
	fs.StringP(FlagOutput, "o", "json", "output format: json, yaml or table")
	fs.Bool(FlagNoColor, false, "disable colored table output")
	fs.StringP(FlagConfig, "c", "", "path to a YAML config file")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
	fs.Bool(FlagFollow, false, "follow redirects")
	fs.BoolP(FlagInsecure, "k", false, "skip TLS certificate verification")
	return fs
}

// Load merges defaults, the config file, WEBPING_* env vars and explicitly set
// flags, in increasing priority. fs must have been parsed.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	common.SetDefaults(v, "webping")
	v.SetDefault("log.level", "warn")
	v.SetDefault("output.format", record.FormatJSON)
	v.SetDefault("output.color", true)

	v.SetEnvPrefix("webping")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Probe.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Output.Format {
	case record.FormatJSON, record.FormatYAML, record.FormatTable:
	default:
		return nil, common.ErrConfig(fmt.Sprintf("unknown output format %q", cfg.Output.Format))
	}
	return &cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	direct := map[string]string{
		"probe.expected_string":  FlagExpectedString,
		"probe.return_headers":   FlagReturnHeaders,
		"probe.follow_redirects": FlagFollow,
		"output.format":          FlagOutput,
		"log.level":              FlagLogLevel,
	}
	for key, name := range direct {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	if fs.Changed(FlagTimeout) {
		raw, _ := fs.GetString(FlagTimeout)
		d, err := record.ParseTimeout(raw)
		if err != nil {
			return fmt.Errorf("%w: --%s: %v", record.ErrInvalidParam, FlagTimeout, err)
		}
		v.Set("probe.timeout", d)
	}
	if b, _ := fs.GetBool(FlagNoDigests); fs.Changed(FlagNoDigests) {
		v.Set("probe.compute_digests", !b)
	}
	if b, _ := fs.GetBool(FlagNoColor); fs.Changed(FlagNoColor) {
		v.Set("output.color", !b)
	}
	if b, _ := fs.GetBool(FlagInsecure); fs.Changed(FlagInsecure) {
		v.Set("probe.verify_tls", !b)
	}
	return nil
}
