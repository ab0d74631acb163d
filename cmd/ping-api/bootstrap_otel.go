package main

import (
	"context"

	config "github.com/NordCoder/webping/internal/config/ping-api"
	"github.com/NordCoder/webping/internal/obs"
)

func initOTel(ctx context.Context, cfg *config.Config) (*obs.OTel, error) {
	return obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig(cfg.App))
}
