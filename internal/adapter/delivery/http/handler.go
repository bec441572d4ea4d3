package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type shortlinkUseCase interface {
	Generate(ctx context.Context, keyType entity.KeyType, redirects []entity.Redirect) (*entity.Shortlink, error)
	Resolve(ctx context.Context, key string, keyType entity.KeyType, t time.Time) (string, error)
	Stats(ctx context.Context, key string) (*entity.Shortlink, error)
	List(ctx context.Context) ([]*entity.Shortlink, error)
	Deactivate(ctx context.Context, key string) error
}

type redirectChecker interface {
	Check(ctx context.Context) (*entity.CheckReport, error)
}

type shortlinkHandler struct {
	baseURL  string
	useCase  shortlinkUseCase
	checker  redirectChecker
	metrics  *Metrics
	validate *validator.Validate
	now      func() time.Time
}

func newShortlinkHandler(
	baseURL string,
	useCase shortlinkUseCase,
	checker redirectChecker,
	metrics *Metrics,
	validate *validator.Validate,
) *shortlinkHandler {
	return &shortlinkHandler{
		baseURL:  baseURL,
		useCase:  useCase,
		checker:  checker,
		metrics:  metrics,
		validate: validate,
		now:      time.Now,
	}
}

func (h *shortlinkHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	sl, err := h.useCase.Generate(r.Context(), entity.KeyType(req.KeyType), req.toRedirects())
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toShortlinkResponse(sl, h.baseURL))
}

func (h *shortlinkHandler) list(w http.ResponseWriter, r *http.Request) {
	shortlinks, err := h.useCase.List(r.Context())
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	resp := make([]shortlinkResponse, 0, len(shortlinks))
	for _, sl := range shortlinks {
		resp = append(resp, toShortlinkResponse(sl, h.baseURL))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *shortlinkHandler) stats(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	sl, err := h.useCase.Stats(r.Context(), key)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toShortlinkStatsResponse(sl, h.baseURL))
}

func (h *shortlinkHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.useCase.Deactivate(r.Context(), key); err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *shortlinkHandler) redirect(keyType entity.KeyType, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, param)

		url, err := h.useCase.Resolve(r.Context(), key, keyType, h.now())
		if err != nil {
			h.renderLookupError(w, r, err)
			return
		}

		http.Redirect(w, r, url, http.StatusFound)
	}
}

func (h *shortlinkHandler) checkRedirects(w http.ResponseWriter, r *http.Request) {
	report, err := h.checker.Check(r.Context())
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	h.metrics.ObserveCheck(report)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toCheckReportResponse(report))
}

func (h *shortlinkHandler) renderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, entity.ErrShortlinkNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, shortlinkNotFoundResponse)
		return
	}

	httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, serverErrorResponse)
}
