package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	config "github.com/NordCoder/webping/internal/config/ping-api"
	"github.com/NordCoder/webping/internal/obs"
	"github.com/NordCoder/webping/internal/ping"
	"github.com/NordCoder/webping/internal/services/ping-api/probe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	pflag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting ping-api", zap.String("env", cfg.App.Env), zap.String("ver", cfg.App.Version))

	otl, err := initOTel(rootCtx, cfg)
	if err != nil {
		logger.Fatal("otel init", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observer := ping.Observers{obs.LogObserver{Log: logger}, obs.NewPingMetrics(reg)}

	uc := probe.NewUsecase(probeSettings(cfg, otl.Provider(), observer))

	if *configPath != "" {
		err := config.Watch(rootCtx, *configPath, logger, func(next *config.Config) {
			uc.Swap(probeSettings(next, otl.Provider(), observer))
		})
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		}
	}

	grpcServer, healthSrv, grpcLn, err := buildGRPCServer(cfg, logger, otl, reg, uc)
	if err != nil {
		logger.Fatal("build grpc", zap.Error(err))
	}
	grpcErrCh := make(chan error, 1)
	go func() { grpcErrCh <- serveGRPC(grpcServer, grpcLn, logger) }()

	httpSrv := buildHTTPServer(cfg, logger, otl, reg, uc)
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- serveHTTP(httpSrv, logger) }()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal", zap.String("reason", "context canceled"))
	case err := <-grpcErrCh:
		logger.Error("grpc serve", zap.Error(err))
	case err := <-httpErrCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	healthSrv.Shutdown()
	shutdownErr := httpSrv.Shutdown(shCtx)
	gracefulStopGRPC(shCtx, grpcServer)
	shutdownErr = multierr.Append(shutdownErr, otl.Shutdown(shCtx))
	if shutdownErr != nil {
		logger.Warn("unclean shutdown", zap.Error(shutdownErr))
	}
	logger.Info("bye")
}
