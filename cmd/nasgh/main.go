package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/haithamsoil/nasgh/internal/advisor"
	"github.com/haithamsoil/nasgh/internal/cli"
	"github.com/haithamsoil/nasgh/internal/config"
	"github.com/haithamsoil/nasgh/internal/db"
	"github.com/haithamsoil/nasgh/internal/llm"
	"github.com/haithamsoil/nasgh/internal/repository"
	"github.com/haithamsoil/nasgh/internal/targets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("NASGH_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Redis serves the range cache when configured; SQLite otherwise.
	var rangeStore repository.RangeStore
	if cfg.RedisURL != "" {
		redisStore, err := repository.NewRedisRangeStore(context.Background(), cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer redisStore.Close()
		rangeStore = redisStore
	} else {
		rangeStore = repository.NewSQLiteRangeStore(database)
	}

	client := llm.NewGeminiClient(cfg.LLM.Endpoint, cfg.LLM.APIKey)
	chain, err := llm.NewChain(client, cfg.LLM.Backends, cfg.LLM.AttemptTimeout(),
		llm.NewSlogObserver(logger))
	if err != nil {
		return fmt.Errorf("configuring model chain: %w", err)
	}

	app := &cli.App{
		Config:   &cfg,
		Resolver: targets.NewResolver(rangeStore, targets.NewGenerator(chain), logger),
		Advisor:  advisor.NewAdvisor(chain),
		Readings: repository.NewSQLiteReadingLog(database, cfg.Retention),
		Sessions: repository.NewSQLiteSessionStore(database, cfg.Retention),
		Logger:   logger,
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger writes human-readable logs on a terminal and JSON
// otherwise, so piped or supervised output stays machine-parseable.
func newLogger() *slog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
