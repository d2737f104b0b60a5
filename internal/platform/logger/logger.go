// Package logger wraps zerolog with the defaults shared by the API and the CLI,
// plus request scoped child loggers
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"snipjar/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the logger
type Options struct {
	Level        string
	Format       string // console | json
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw view so config can import this package
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(rc.Get("LEVEL", "info")),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", ""),
		Component:   rc.Get("COMPONENT", ""),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

// Logger is the project-wide logging type
type Logger = zerolog.Logger

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Get returns the process root logger, initialising it from env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger; only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		l := New(opt)
		root.Store(&l)
	})
}

// New builds a standalone logger from opt without touching the root
func New(opt Options) Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	fields := map[string]string{"service": opt.Service, "component": opt.Component}
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		fields["go_version"] = bi.GoVersion
	}
	for k, v := range opt.StaticFields {
		fields[k] = v
	}

	zc := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	for k, v := range fields {
		if v != "" {
			zc = zc.Str(k, v)
		}
	}
	if opt.WithCaller {
		zc = zc.Caller()
	}

	log := zc.Logger()
	if opt.SampleEvery > 1 {
		log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return log
}

var levelAliases = map[string]string{"warning": "warn", "off": "disabled"}

// parseLevel falls back to info for blank or unknown names
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if a, ok := levelAliases[s]; ok {
		s = a
	}
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"req_id"}
	keyClient    = ctxKey{"client"}
)

// WithRequest stores the request id and the calling client (X-Client header) on ctx
func WithRequest(ctx context.Context, reqID, client string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if client != "" {
		ctx = context.WithValue(ctx, keyClient, client)
	}
	return ctx
}

// C returns a child of the root logger carrying request_id and client from ctx
func C(ctx context.Context) *Logger {
	b := Get().With()
	if s, ok := ctx.Value(keyRequestID).(string); ok && s != "" {
		b = b.Str("request_id", s)
	}
	if s, ok := ctx.Value(keyClient).(string); ok && s != "" {
		b = b.Str("client", s)
	}
	ll := b.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
