package middleware_test

import (
	"compress/flate"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pnet "snipjar/internal/platform/net"
	"snipjar/internal/platform/net/middleware"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestWrappersNonNil(t *testing.T) {
	for i, mw := range []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Timeout(time.Second),
		middleware.NoCache(),
		middleware.StripSlashes(),
		middleware.Heartbeat("/ping"),
		middleware.Throttle(10),
		middleware.RequestSize(1 << 20),
		middleware.AllowContentType("application/json"),
	} {
		if mw == nil {
			t.Fatalf("wrapper %d is nil", i)
		}
	}
}

func TestCompress(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Repeat(`{"category":"text"}`, 256))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	middleware.Compress(flate.DefaultCompression)(h).ServeHTTP(rr, req)

	if rr.Result().Header.Get("Content-Encoding") == "" {
		t.Fatalf("expected compressed response")
	}
}

func TestCORSPreflightAllowsClientHeader(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://app.example"}})
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/classify", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", pnet.ClientHeader)
	rr := httptest.NewRecorder()
	cors(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK && rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("origin not allowed: %v", rr.Header())
	}
	if rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatalf("client header not allowed")
	}
}

func TestDefaultsChain(t *testing.T) {
	chain := middleware.Defaults()
	var seenID, seenClient string
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = pnet.RequestID(r.Context())
		seenClient = pnet.Client(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(pnet.ClientHeader, "cli/dev")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if seenID == "" || seenClient != "cli/dev" {
		t.Fatalf("id=%q client=%q", seenID, seenClient)
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("NoCache not applied")
	}
}
