package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	config "github.com/NordCoder/webping/internal/config/webping"
	"github.com/NordCoder/webping/internal/obs"
	"github.com/NordCoder/webping/internal/record"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	exitOK       = 0
	exitInternal = 1
	exitInvalid  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run probes one URL and writes its record to stdout. Any probe outcome,
// including timeouts and unreachable hosts, exits 0.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := config.Flags("webping")
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: webping [flags] <url>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitInvalid
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitInvalid
	}

	path, _ := fs.GetString(config.FlagConfig)
	cfg, err := config.Load(path, fs)
	if err != nil {
		fmt.Fprintf(stderr, "webping: %v\n", err)
		return exitInvalid
	}

	logger, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		fmt.Fprintf(stderr, "webping: logger: %v\n", err)
		return exitInternal
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Output.Color {
		color.NoColor = true
	}

	pinger := cfg.Probe.NewPinger(nil, obs.LogObserver{Log: logger})
	res, err := pinger.Ping(ctx, fs.Arg(0), cfg.Probe.AsPingConfig())
	if err != nil {
		fmt.Fprintf(stderr, "webping: %v\n", err)
		return exitInvalid
	}

	if err := record.Render(stdout, record.FromResult(res), cfg.Output.Format); err != nil {
		logger.Error("render", zap.Error(err))
		return exitInternal
	}
	return exitOK
}
