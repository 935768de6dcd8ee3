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

	"github.com/okian/jobmatch/internal/adapters/repository"
	service "github.com/okian/jobmatch/internal/app"
	"github.com/okian/jobmatch/internal/cli"
	"github.com/okian/jobmatch/internal/config"
	"github.com/okian/jobmatch/internal/domain/scoring"
	"github.com/okian/jobmatch/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, "jobmatch:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("jobmatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print results as JSON")
	memory := fs.Bool("memory", false, "do not open the configured database")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logger.Init(
		logger.WithFormat(cfg.LogFormat),
		logger.WithOutput(stderr),
		logger.WithLevel(level),
	); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithBatchWorkers(cfg.BatchWorkers),
		service.WithScorer(scoring.New(cfg.ScoringOptions()...)),
		service.WithSeedSample(cfg.SeedSample),
	}
	var store *repository.SQLStore
	if !*memory {
		store, err = repository.Open(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithStore(store))
		log.Debug(ctx, "snapshot store opened", logger.String("driver", cfg.DBDriver))
	}

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		if store != nil {
			_ = store.Close()
		}
		return err
	}
	defer svc.Stop()

	c := cli.New(svc, cfg,
		cli.WithOutput(stdout),
		cli.WithErrorOutput(stderr),
		cli.WithJSON(*asJSON),
		cli.WithLogger(log.Named("cli")),
	)
	return c.Run(ctx, fs.Args())
}
