package http

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
)

const statusError = "error"

// redirectRequest is one entry of the hour-of-day schedule of a new shortlink.
type redirectRequest struct {
	From int    `json:"from" validate:"min=0,max=23"`
	To   int    `json:"to" validate:"min=1,max=24,gtfield=From"`
	URL  string `json:"url" validate:"required,url"`
}

// generateRequest represents the structure for a request to generate a shortlink.
type generateRequest struct {
	KeyType   string            `json:"key_type" validate:"omitempty,oneof=standard uuid"`
	Redirects []redirectRequest `json:"redirects" validate:"required,min=1,max=24,dive"`
}

func (req *generateRequest) toRedirects() []entity.Redirect {
	redirects := make([]entity.Redirect, 0, len(req.Redirects))
	for _, r := range req.Redirects {
		redirects = append(redirects, entity.Redirect(r))
	}
	return redirects
}

type redirectResponse struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	URL  string `json:"url"`
}

// shortlinkResponse represents the structure for a response containing shortlink information.
type shortlinkResponse struct {
	Key       string             `json:"key"`
	KeyType   string             `json:"key_type"`
	ShortURL  string             `json:"short_url"`
	Redirects []redirectResponse `json:"redirects"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func toShortlinkResponse(sl *entity.Shortlink, baseURL string) shortlinkResponse {
	redirects := make([]redirectResponse, 0, len(sl.Redirects))
	for _, r := range sl.Redirects {
		redirects = append(redirects, redirectResponse(r))
	}

	return shortlinkResponse{
		Key:       sl.Key,
		KeyType:   string(sl.KeyType.OrDefault()),
		ShortURL:  sl.ShortURL(baseURL),
		Redirects: redirects,
		CreatedAt: sl.CreatedAt,
		UpdatedAt: sl.UpdatedAt,
	}
}

// shortlinkStatsResponse extends shortlinkResponse with visit statistics.
type shortlinkStatsResponse struct {
	shortlinkResponse
	Stats shortlinkStats `json:"stats"`
}

type shortlinkStats struct {
	Visits int64 `json:"visits"`
}

func toShortlinkStatsResponse(sl *entity.Shortlink, baseURL string) shortlinkStatsResponse {
	return shortlinkStatsResponse{
		shortlinkResponse: toShortlinkResponse(sl, baseURL),
		Stats: shortlinkStats{
			Visits: sl.Visits,
		},
	}
}

type checkReportResponse struct {
	Checked     int `json:"checked"`
	Deactivated int `json:"deactivated"`
	Unreachable int `json:"unreachable"`
}

func toCheckReportResponse(report *entity.CheckReport) checkReportResponse {
	return checkReportResponse(*report)
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	shortlinkNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "shortlink not found",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "oneof":
		return "unsupported value"
	case "min", "max":
		return "value out of range"
	case "gtfield":
		return "must be greater than from"
	default:
		return "invalid value"
	}
}

// fieldPath drops the request struct name from a validator namespace,
// e.g. "generateRequest.redirects[0].url" becomes "redirects[0].url".
func fieldPath(namespace string) string {
	if _, path, ok := strings.Cut(namespace, "."); ok {
		return path
	}
	return namespace
}

func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   fieldPath(e.Namespace()),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
