package main

import (
	config "github.com/NordCoder/webping/internal/config/ping-api"
	"github.com/NordCoder/webping/internal/obs"
	"go.uber.org/zap"
)

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
}
