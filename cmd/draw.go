package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/fairdraw/internal/adapters/tsv"
	service "github.com/okian/fairdraw/internal/app"
	"github.com/okian/fairdraw/internal/config"
	"github.com/okian/fairdraw/internal/domain/model"
	"github.com/okian/fairdraw/pkg/logger"
)

// runDraw reads a roster, computes one draw and prints the report to stdout.
func runDraw(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	log := logger.Named("draw")

	roster, err := readRoster(cfg, stdin)
	if err != nil {
		return err
	}
	log.Debug(ctx, "roster parsed", logger.Int("groups", len(roster)), logger.Int("participants", roster.Len()))

	svc := service.New(
		service.WithLogger(log),
		service.WithSeed(cfg.Seed),
		service.WithMaxStoredDraws(1),
		service.WithMaxTargetTotal(cfg.MaxTargetTotal),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	var seed *int64
	if cfg.Seed != 0 {
		seed = &cfg.Seed
	}
	d, err := svc.CreateDraw(ctx, roster, cfg.TargetTotal, seed)
	if err != nil {
		return err
	}
	return writeReport(stdout, roster, d)
}

func readRoster(cfg *config.Config, stdin io.Reader) (model.Roster, error) {
	var opts []tsv.Option
	if cfg.FullNames {
		opts = append(opts, tsv.WithFullNames())
	}
	parser := tsv.NewParser(opts...)

	if cfg.Input == "" || cfg.Input == "-" {
		return parser.Parse(stdin)
	}
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parser.Parse(f)
}
