package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vadimbarashkov/shortlink-service/internal/adapter/repository/memory"
	"github.com/vadimbarashkov/shortlink-service/internal/adapter/repository/mongodb"
	"github.com/vadimbarashkov/shortlink-service/internal/config"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
	"github.com/vadimbarashkov/shortlink-service/internal/usecase"
	"github.com/vadimbarashkov/shortlink-service/pkg/mongo"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortlink-service/internal/adapter/delivery/http"
)

const serviceName = "shortlink-service"

type shortlinkRepository interface {
	NextID(ctx context.Context) (uint64, error)
	Save(ctx context.Context, sl *entity.Shortlink) (*entity.Shortlink, error)
	RetrieveByKey(ctx context.Context, key string) (*entity.Shortlink, error)
	RetrieveAndUpdateStats(ctx context.Context, key string) (*entity.Shortlink, error)
	RetrieveAll(ctx context.Context) ([]*entity.Shortlink, error)
	Remove(ctx context.Context, key string) error
}

// NewLogger builds the service logger: JSON in prod, human readable otherwise.
func NewLogger(cfg *config.Config) *httplog.Logger {
	return httplog.NewLogger(serviceName, httplog.Options{
		JSON:           cfg.Env == config.EnvProd,
		LogLevel:       cfg.SlogLevel(),
		Concise:        cfg.Env != config.EnvProd,
		RequestHeaders: cfg.Env != config.EnvProd,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := NewLogger(cfg)

	repo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Error("failed to close storage", slog.Any("err", err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := delivery.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("%s: failed to register metrics: %w", op, err)
	}

	shortlinkUseCase := usecase.NewShortlinkUseCase(repo)
	checker := usecase.NewRedirectChecker(
		repo,
		&http.Client{Timeout: cfg.Checker.RequestTimeout},
		logger.Logger,
		usecase.WithWorkers(cfg.Checker.Workers),
		usecase.WithProgressInterval(cfg.Checker.ProgressInterval),
	)

	router := delivery.NewRouter(logger, metrics, cfg.BaseURL, shortlinkUseCase, checker)

	g, ctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g.Go(func() error {
		var err error

		logger.Info("starting server", slog.String("addr", server.Addr), slog.String("storage", cfg.Storage))

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	if cfg.Checker.Interval > 0 {
		g.Go(func() error {
			runPeriodicCheck(ctx, cfg.Checker.Interval, checker, metrics, logger.Logger)
			return nil
		})
	}

	return g.Wait()
}

func newRepository(ctx context.Context, cfg *config.Config) (shortlinkRepository, func() error, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.NewShortlinkRepository(), func() error { return nil }, nil
	default:
		client, err := mongo.New(
			ctx,
			cfg.Mongo.URI,
			mongo.WithConnectTimeout(cfg.Mongo.ConnectTimeout),
			mongo.WithServerSelectionTimeout(cfg.Mongo.ServerSelectionTimeout),
			mongo.WithMaxPoolSize(cfg.Mongo.MaxPoolSize),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}

		closeFn := func() error {
			return client.Disconnect(context.Background())
		}

		return mongodb.NewShortlinkRepository(client.Database(cfg.Mongo.DB)), closeFn, nil
	}
}

type redirectChecker interface {
	Check(ctx context.Context) (*entity.CheckReport, error)
}

func runPeriodicCheck(ctx context.Context, interval time.Duration, c redirectChecker, metrics *delivery.Metrics, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := c.Check(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("periodic redirect check failed", slog.Any("err", err))
				}
				continue
			}

			metrics.ObserveCheck(report)
		}
	}
}
