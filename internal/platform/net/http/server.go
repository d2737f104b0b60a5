package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"snipjar/internal/platform/logger"
)

// ServerOptions configures NewServer; zero values take the defaults below
type ServerOptions struct {
	Addr              string        // default ":4000"
	ReadHeaderTimeout time.Duration // default 10s
	ReadTimeout       time.Duration // default 30s
	WriteTimeout      time.Duration // default 60s
	IdleTimeout       time.Duration // default 120s
	ShutdownTimeout   time.Duration // default 15s
}

// Server owns the stdlib server and the root router
type Server struct {
	opt    ServerOptions
	router Router
	srv    *stdhttp.Server
}

// NewServer builds a server over a fresh chi router
func NewServer(opt ServerOptions) *Server {
	def := func(d *time.Duration, v time.Duration) {
		if *d <= 0 {
			*d = v
		}
	}
	if opt.Addr == "" {
		opt.Addr = ":4000"
	}
	def(&opt.ReadHeaderTimeout, 10*time.Second)
	def(&opt.ReadTimeout, 30*time.Second)
	def(&opt.WriteTimeout, 60*time.Second)
	def(&opt.IdleTimeout, 120*time.Second)
	def(&opt.ShutdownTimeout, 15*time.Second)

	r := NewRouter()
	return &Server{
		opt:    opt,
		router: r,
		srv: &stdhttp.Server{
			Addr:              opt.Addr,
			Handler:           r.Mux(),
			ReadHeaderTimeout: opt.ReadHeaderTimeout,
			ReadTimeout:       opt.ReadTimeout,
			WriteTimeout:      opt.WriteTimeout,
			IdleTimeout:       opt.IdleTimeout,
		},
	}
}

// Router returns the root router
func (s *Server) Router() Router { return s.router }

// Addr returns the listen address
func (s *Server) Addr() string { return s.opt.Addr }

// Handler returns the root handler, handy for httptest
func (s *Server) Handler() stdhttp.Handler { return s.srv.Handler }

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.opt.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.opt.ShutdownTimeout)
	defer cancel()
	log.Info().Dur("grace", s.opt.ShutdownTimeout).Msg("http shutting down")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
