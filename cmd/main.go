package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/fairdraw/internal/config"
	"github.com/okian/fairdraw/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "fairdraw: "+err.Error())
		}
		os.Exit(1)
	}
}

// run loads configuration, applies command-line overrides and dispatches to
// the selected mode.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, args); err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	switch cfg.Mode {
	case config.ModeServe:
		return runServe(ctx, cfg)
	default:
		return runDraw(ctx, cfg, stdin, stdout)
	}
}

// applyFlags overrides cfg with the flags present in args. Flags left unset
// keep the value from defaults, file or env.
func applyFlags(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("fairdraw", flag.ContinueOnError)
	mode := fs.String("mode", cfg.Mode, "draw or serve")
	input := fs.String("input", cfg.Input, "roster TSV path (Name<TAB>Club<TAB>Group); - reads stdin")
	total := fs.Int("total", cfg.TargetTotal, "number of matches to generate")
	seed := fs.Int64("seed", cfg.Seed, "random seed; 0 derives one from the clock")
	addr := fs.String("addr", cfg.Addr, "HTTP listen address for serve mode")
	fullNames := fs.Bool("full-names", cfg.FullNames, "label participants with their full name")
	logLevel := fs.String("log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", config.ErrInvalidConfig, fs.Args())
	}

	cfg.Mode = *mode
	cfg.Input = *input
	cfg.TargetTotal = *total
	cfg.Seed = *seed
	cfg.Addr = *addr
	cfg.FullNames = *fullNames
	cfg.LogLevel = *logLevel
	return cfg.Validate()
}
