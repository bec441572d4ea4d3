package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"

	delivery "github.com/vadimbarashkov/shortlink-service/internal/adapter/delivery/http"
)

type stubChecker struct {
	calls  atomic.Int32
	stopAt int32
	cancel context.CancelFunc
	err    error
}

func (c *stubChecker) Check(ctx context.Context) (*entity.CheckReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.calls.Add(1) >= c.stopAt {
		c.cancel()
	}
	if c.err != nil {
		return nil, c.err
	}
	return &entity.CheckReport{Checked: 3, Deactivated: 1}, nil
}

func TestRunPeriodicCheck(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("reports are recorded", func(t *testing.T) {
		metrics, err := delivery.NewMetrics(prometheus.NewRegistry())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		c := &stubChecker{stopAt: 2, cancel: cancel}

		runPeriodicCheck(ctx, 5*time.Millisecond, c, metrics, logger)

		assert.Equal(t, int32(2), c.calls.Load())

		rec := httptest.NewRecorder()
		metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Contains(t, rec.Body.String(), "redirect_checks_total 2")
		assert.Contains(t, rec.Body.String(), "redirect_check_deactivated_total 2")
	})

	t.Run("errors do not stop the loop", func(t *testing.T) {
		metrics, err := delivery.NewMetrics(prometheus.NewRegistry())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		c := &stubChecker{stopAt: 3, cancel: cancel, err: errors.New("unknown error")}

		runPeriodicCheck(ctx, 5*time.Millisecond, c, metrics, logger)

		assert.Equal(t, int32(3), c.calls.Load())
	})
}
