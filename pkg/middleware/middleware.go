// Package middleware holds net/http middlewares shared by the HTTP adapters.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler
