package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"snipjar/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; zero values pick the defaults
type StackOptions struct {
	Timeout  time.Duration
	Slow     time.Duration
	Throttle int
	CORS     middleware.CORSOptions
}

// CommonStack returns the middleware every API route runs behind
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = time.Second
	}
	mw := []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestContext(),

		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: o.Slow,
			Skip: []string{"/api/v1/meta/health"},
		}),

		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
	if o.Throttle > 0 {
		mw = append(mw, middleware.Throttle(o.Throttle))
	}
	return mw
}
