package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/NordCoder/webping/internal/config/ping-worker"
	"github.com/NordCoder/webping/internal/obs"
	"github.com/NordCoder/webping/internal/obs/retry"
	"github.com/NordCoder/webping/internal/ping"
	"github.com/NordCoder/webping/internal/repository/kafka"
	pingworker "github.com/NordCoder/webping/internal/services/ping-worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	pflag.Parse()

	root, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// logger
	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	// otel
	otl, err := obs.SetupOTel(root, cfg.OTEL.AsOTELConfig(cfg.App))
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ms := obs.BootstrapMetricsServer(cfg.Server.MetricsAddr, reg, brokerHealth(cfg.Out.Brokers), l)

	// kafka
	cons := kafka.BootstrapConsumer(root, cfg.In.AsConsumerConfig(), l)
	prod := kafka.NewProducer(cfg.Out.Brokers, cfg.Out.Topic).WithLogger(l)
	results := kafka.NewPingEvents(prod)

	// wiring
	pinger := cfg.Probe.NewPinger(otl.Provider(), ping.Observers{
		obs.LogObserver{Log: l},
		obs.NewPingMetrics(reg),
	})
	ctrl := &pingworker.Controller{
		Log: l,
		Sub: cons,
		UC: &pingworker.Handler{
			Log:      l,
			Prober:   pinger,
			Results:  results,
			Defaults: cfg.Probe.AsPingConfig(),
			Retry:    retry.DefaultKafkaPolicy(l, retry.NewMetrics(reg)),
		},
	}

	// start
	l.Info("starting ping-worker",
		zap.String("in", cfg.In.Topic),
		zap.String("out", cfg.Out.Topic),
		zap.String("ver", cfg.App.Version),
	)
	errCh := make(chan error, 1)
	go func() { errCh <- ctrl.Run(root) }()

	select {
	case <-root.Done():
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("controller error", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := multierr.Combine(
		cons.Close(),
		results.Close(),
		ms.Shutdown(shCtx),
		otl.Shutdown(shCtx),
	)
	if shutdownErr != nil {
		l.Warn("unclean shutdown", zap.Error(shutdownErr))
	}
	l.Info("bye")
}

// brokerHealth reports healthy while the first result broker accepts TCP.
func brokerHealth(brokers []string) func(context.Context) error {
	return func(ctx context.Context) error {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", brokers[0])
		if err != nil {
			return err
		}
		return conn.Close()
	}
}
