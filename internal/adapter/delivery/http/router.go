// Package http provides the HTTP delivery layer for the shortlink service.
// This package contains the HTTP handlers and related types used for processing
// incoming requests, validating input, and formatting responses.
package http

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
	"github.com/vadimbarashkov/shortlink-service/pkg/middleware/recoverer"
)

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the shortlink API.
func NewRouter(
	logger *httplog.Logger,
	metrics *Metrics,
	baseURL string,
	useCase shortlinkUseCase,
	checker redirectChecker,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger))
	r.Use(metrics.instrument)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	h := newShortlinkHandler(baseURL, useCase, checker, metrics, getValidate())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/shortlinks", func(r chi.Router) {
			r.Post("/", h.generate)
			r.Get("/", h.list)

			r.Route("/{key}", func(r chi.Router) {
				r.Delete("/", h.deactivate)
				r.Get("/stats", h.stats)
			})
		})
	})

	r.Get("/cron/checkRedirects", h.checkRedirects)

	r.Get("/u/{uuid}", h.redirect(entity.KeyTypeUUID, "uuid"))
	r.Get("/{key}", h.redirect(entity.KeyTypeStandard, "key"))

	return r
}

// getValidate reports validation errors under their json field names.
func getValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}
