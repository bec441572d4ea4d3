package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vadimbarashkov/shortlink-service/internal/entity"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCheckerWorkers   = 100
	defaultProgressInterval = 10 * time.Second
	maxDrainedBodyBytes     = 4 << 10
)

type checkerRepository interface {
	RetrieveAll(ctx context.Context) ([]*entity.Shortlink, error)
	Remove(ctx context.Context, key string) error
}

type CheckerOption func(*RedirectChecker)

func WithWorkers(n int) CheckerOption {
	return func(c *RedirectChecker) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithProgressInterval(d time.Duration) CheckerOption {
	return func(c *RedirectChecker) {
		if d > 0 {
			c.progressInterval = d
		}
	}
}

// RedirectChecker deactivates shortlinks whose redirect targets stopped answering with 200 OK.
type RedirectChecker struct {
	repo             checkerRepository
	client           *http.Client
	logger           *slog.Logger
	workers          int
	progressInterval time.Duration
}

func NewRedirectChecker(repo checkerRepository, client *http.Client, logger *slog.Logger, opts ...CheckerOption) *RedirectChecker {
	c := &RedirectChecker{
		repo:             repo,
		client:           client,
		logger:           logger,
		workers:          defaultCheckerWorkers,
		progressInterval: defaultProgressInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check fetches every redirect URL of every active shortlink. A response other
// than 200 OK deactivates the shortlink; a failed request only counts as unreachable.
func (c *RedirectChecker) Check(ctx context.Context) (*entity.CheckReport, error) {
	const op = "usecase.RedirectChecker.Check"

	start := time.Now()

	shortlinks, err := c.repo.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list shortlinks: %w", op, err)
	}

	var checked, deactivated, unreachable atomic.Int64

	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()
	go c.logProgress(progressCtx, len(shortlinks), &checked)

	var g errgroup.Group
	g.SetLimit(c.workers)

	for _, sl := range shortlinks {
		g.Go(func() error {
			defer checked.Add(1)

			broken, failed := c.checkShortlink(ctx, sl)
			unreachable.Add(int64(failed))

			if !broken {
				return nil
			}

			if err := c.repo.Remove(ctx, sl.Key); err != nil {
				if !errors.Is(err, entity.ErrShortlinkNotFound) {
					c.logger.Error("failed to deactivate shortlink",
						slog.String("key", sl.Key),
						slog.Any("err", err),
					)
				}
				return nil
			}

			deactivated.Add(1)
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: check interrupted: %w", op, err)
	}

	report := &entity.CheckReport{
		Checked:     int(checked.Load()),
		Deactivated: int(deactivated.Load()),
		Unreachable: int(unreachable.Load()),
	}

	c.logger.Info("redirect check finished",
		slog.Int("checked", report.Checked),
		slog.Int("deactivated", report.Deactivated),
		slog.Int("unreachable", report.Unreachable),
		slog.Duration("took", time.Since(start)),
	)

	return report, nil
}

// checkShortlink reports whether any redirect answered with a non-200 status
// and how many redirects could not be fetched at all.
func (c *RedirectChecker) checkShortlink(ctx context.Context, sl *entity.Shortlink) (broken bool, unreachable int) {
	for _, r := range sl.Redirects {
		status, err := c.fetch(ctx, r.URL)
		if err != nil {
			c.logger.Warn("failed to fetch redirect url",
				slog.String("key", sl.Key),
				slog.String("url", r.URL),
				slog.Any("err", err),
			)
			unreachable++
			continue
		}

		if status != http.StatusOK {
			c.logger.Info("invalid redirect status, deactivating shortlink",
				slog.String("key", sl.Key),
				slog.String("url", r.URL),
				slog.Int("status", status),
			)
			return true, unreachable
		}
	}

	return false, unreachable
}

func (c *RedirectChecker) fetch(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainedBodyBytes))

	return resp.StatusCode, nil
}

func (c *RedirectChecker) logProgress(ctx context.Context, total int, checked *atomic.Int64) {
	ticker := time.NewTicker(c.progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.logger.Info("redirect check in progress",
				slog.Int64("checked", checked.Load()),
				slog.Int("total", total),
			)
		}
	}
}
