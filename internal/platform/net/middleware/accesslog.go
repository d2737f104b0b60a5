package middleware

import (
	"net/http"
	"time"

	"snipjar/internal/platform/logger"
	pnet "snipjar/internal/platform/net"
)

// RequestContext copies the chi request id and the X-Client header into the
// context so logger.C and handlers can see them. Mount it after RequestID
func RequestContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := pnet.RequestID(r.Context())
			client := r.Header.Get(pnet.ClientHeader)
			if len(client) > 64 {
				client = client[:64]
			}
			ctx := pnet.WithClient(r.Context(), client)
			ctx = logger.WithRequest(ctx, reqID, client)
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLogOptions configures AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at warn when they take at least Slow; 0 disables
	Slow time.Duration
	// Skip lists exact paths that are never logged (probes)
	Skip []string
}

type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// AccessLogZerolog writes one line per request through the request scoped logger.
// Bodies are never logged
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(opt.Skip))
	for _, p := range opt.Skip {
		skip[p] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case cw.status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}
