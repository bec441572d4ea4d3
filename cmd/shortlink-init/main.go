// Command shortlink-init prepares a MongoDB database for the shortlink
// service: it creates the unique index on shortlinks.text and seeds the
// shortlinkId counter. It is meant to run exactly once per database; a
// second run fails on the counter insert and leaves the counter untouched.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vadimbarashkov/shortlink-service/internal/adapter/repository/mongodb"
	"github.com/vadimbarashkov/shortlink-service/internal/app"
	"github.com/vadimbarashkov/shortlink-service/internal/config"
	"github.com/vadimbarashkov/shortlink-service/pkg/mongo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", slog.Any("err", err))
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg).Logger

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, mongodb.ErrAlreadyBootstrapped) {
			logger.Error("database is already initialized", slog.String("db", cfg.Mongo.DB), slog.Any("err", err))
		} else {
			logger.Error("failed to initialize database", slog.String("db", cfg.Mongo.DB), slog.Any("err", err))
		}
		os.Exit(1)
	}

	logger.Info("database initialized", slog.String("db", cfg.Mongo.DB))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	client, err := mongo.New(
		ctx,
		cfg.Mongo.URI,
		mongo.WithConnectTimeout(cfg.Mongo.ConnectTimeout),
		mongo.WithServerSelectionTimeout(cfg.Mongo.ServerSelectionTimeout),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("failed to disconnect from mongo", slog.Any("err", err))
		}
	}()

	return mongodb.Bootstrap(ctx, client.Database(cfg.Mongo.DB))
}
