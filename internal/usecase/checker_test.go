package usecase

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/shortlink-service/internal/adapter/repository/memory"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
)

func TestRedirectChecker_Check(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	target := httptest.NewServer(mux)
	t.Cleanup(target.Close)

	repo := memory.NewShortlinkRepository()

	seed := map[string][]string{
		"healthy":     {target.URL + "/ok", target.URL + "/ok"},
		"broken":      {target.URL + "/ok", target.URL + "/gone"},
		"unreachable": {"http://127.0.0.1:1/unreachable"},
	}
	for key, urls := range seed {
		var redirects []entity.Redirect
		for i, u := range urls {
			redirects = append(redirects, entity.Redirect{From: i, To: i + 1, URL: u})
		}

		_, err := repo.Save(ctx, &entity.Shortlink{Key: key, Redirects: redirects})
		require.NoError(t, err)
	}

	checker := NewRedirectChecker(
		repo,
		&http.Client{Timeout: 2 * time.Second},
		logger,
		WithWorkers(2),
		WithProgressInterval(time.Millisecond),
	)

	report, err := checker.Check(ctx)

	require.NoError(t, err)
	assert.Equal(t, &entity.CheckReport{Checked: 3, Deactivated: 1, Unreachable: 1}, report)

	_, err = repo.RetrieveByKey(ctx, "broken")
	assert.ErrorIs(t, err, entity.ErrShortlinkNotFound)

	for _, key := range []string{"healthy", "unreachable"} {
		_, err = repo.RetrieveByKey(ctx, key)
		assert.NoError(t, err, key)
	}
}

func TestRedirectChecker_Check_Canceled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewRedirectChecker(memory.NewShortlinkRepository(), http.DefaultClient, logger)

	report, err := checker.Check(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}
