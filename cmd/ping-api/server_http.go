package main

import (
	"net/http"
	"time"

	config "github.com/NordCoder/webping/internal/config/ping-api"
	"github.com/NordCoder/webping/internal/obs"
	"github.com/NordCoder/webping/internal/services/ping-api/probe"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func buildHTTPServer(cfg *config.Config, logger *zap.Logger, o *obs.OTel, g prometheus.Gatherer, uc *probe.Usecase) *http.Server {
	ctrl := probe.NewController(uc, logger)
	router := ctrl.Router(probe.RouterOpts{
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     obs.MetricsHandler(g),
		Health:      obs.HealthHandler(nil),
	})

	handlerOpts := []otelhttp.Option{otelhttp.WithPropagators(obs.Propagator())}
	if tp := o.Provider(); tp != nil {
		handlerOpts = append(handlerOpts, otelhttp.WithTracerProvider(tp))
	}

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           otelhttp.NewHandler(router, "ping-api", handlerOpts...),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          zap.NewStdLog(logger),
	}
}

func serveHTTP(srv *http.Server, logger *zap.Logger) error {
	logger.Info("http listening", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}
