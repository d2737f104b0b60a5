package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "snipjar/internal/platform/errors"
	"snipjar/internal/platform/logger"
	pnet "snipjar/internal/platform/net"
)

type panicWire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code"`
	Error      string         `json:"error"`
	RequestID  string         `json:"request_id,omitempty"`
}

// RecoverJSON turns a panic into the standard JSON 500 envelope and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, wire := perr.HTTP(perr.PanicErrf("internal error"))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(panicWire{
				StatusCode: status,
				Status:     http.StatusText(status),
				Code:       wire.Code,
				Error:      wire.Message,
				RequestID:  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
