package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	kit "snipjar/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"  nonsense ", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "snipjar-api",
		Component:    "classify",
		Writer:       &buf,
		StaticFields: map[string]string{"region": "kr"},
	})
	l.Info().Str("category", "email").Msg("classified")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %v (%s)", err, buf.String())
	}
	for k, want := range map[string]string{
		"service": "snipjar-api", "component": "classify", "region": "kr",
		"category": "email", "message": "classified",
	} {
		if line[k] != want {
			t.Fatalf("%s = %v want %q", k, line[k], want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Format: "json", Writer: &buf})
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info emitted at warn level: %s", buf.String())
	}
}

func TestInitAndRequestChild(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "console", Service: "svc-a", Writer: &buf})

	ctx := WithRequest(context.Background(), "req-123", "macos/1.4")
	C(ctx).Info().Msg("ctx-msg")
	Named("api").Info().Msg("named-msg")
	C(context.Background()).Info().Msg("bare")

	out := buf.String()
	if !strings.Contains(out, "svc-a") {
		// another test may have initialised the root first
		t.Skip("root logger initialised elsewhere")
	}
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "req-123")
	kit.MustContain(t, out, "macos/1.4")
	kit.MustContain(t, out, "named-msg")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" {
		t.Fatalf("unexpected options %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample mismatch %+v", opt)
	}
}
