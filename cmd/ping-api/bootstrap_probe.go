package main

import (
	config "github.com/NordCoder/webping/internal/config/ping-api"
	"github.com/NordCoder/webping/internal/ping"
	"github.com/NordCoder/webping/internal/services/ping-api/probe"
	"go.opentelemetry.io/otel/trace"
)

func probeSettings(cfg *config.Config, tp trace.TracerProvider, o ping.Observer) probe.Settings {
	return probe.Settings{
		Pinger:     cfg.Probe.NewPinger(tp, o),
		Defaults:   cfg.Probe.AsPingConfig(),
		MaxTimeout: cfg.Server.MaxProbeTimeout,
	}
}
