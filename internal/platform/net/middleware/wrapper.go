// Package middleware adapts chi and go-chi/cors middleware and adds the in-house
// request context, access log and panic recovery
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pnet "snipjar/internal/platform/net"
	pstrings "snipjar/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-ID
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP sets RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache disables client and proxy caching; classifications are never cacheable
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress gzips/deflates responses at level
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return func(next http.Handler) http.Handler { return c.Handler(next) }
}

// StripSlashes drops a trailing slash before routing
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before any other middleware runs
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// Throttle caps in-flight requests
func Throttle(limit int) func(http.Handler) http.Handler { return chimw.Throttle(limit) }

// RequestSize caps request bodies at n bytes
func RequestSize(n int64) func(http.Handler) http.Handler { return chimw.RequestSize(n) }

// AllowContentType rejects bodies with other content types
func AllowContentType(ct ...string) func(http.Handler) http.Handler {
	return chimw.AllowContentType(ct...)
}

// CORSOptions is the subset of go-chi/cors we expose
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors with the methods and headers the clients use by default
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			pnet.ClientHeader,
		}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the base stack for a bare router outside the API mount
func Defaults() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RealIP(),
		RequestID(),
		RequestContext(),
		RecoverJSON,
		Timeout(30 * time.Second),
		Compress(flate.DefaultCompression),
		NoCache(),
	}
}
