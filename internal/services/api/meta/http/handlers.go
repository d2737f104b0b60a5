// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"snipjar/internal/core/category"
	"snipjar/internal/core/classifier"
	"snipjar/internal/core/version"
	"snipjar/internal/modkit/httpkit"
)

// Pinger is satisfied by store adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Engine is the classifier surface meta reports on
type Engine interface {
	Locale() string
	RuleSource() string
	Detectors() []string
}

// Deps are the handler dependencies; nil backends are reported as skipped
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	PG           any
	CH           any
	Engine       Engine
	ReadyTimeout time.Duration
	Now          func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/classifier", h.classifier)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"snipjar-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single backend check
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes the process
type ServiceResponse struct {
	Name    string `json:"name"    example:"snipjar-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ClassifierResponse reports what the running classifier was built from
type ClassifierResponse struct {
	Version        int               `json:"classifier_version" example:"1"`
	Locale         string            `json:"locale"             example:"ko-KR"`
	Rules          string            `json:"rules"              example:"embedded"`
	Detectors      []string          `json:"detectors"`
	HighConfidence float64           `json:"high_confidence"    example:"0.8"`
	Build          version.BuildInfo `json:"build"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with backend checks; unconfigured backends are skipped
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "a configured backend failed"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		p, ok := c.(Pinger)
		if !ok {
			return ReadyCheck{Name: name, Status: "unknown"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}

	checks := []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)}
	out := ReadyResponse{Status: "ok", Checks: checks, Now: h.deps.Now().UTC().Format(time.RFC3339)}
	for _, c := range checks {
		if c.Status == "fail" {
			out.Status = "fail"
			return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
		}
	}
	return out, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/classifier Meta metaClassifier
// @Summary Classifier version, rule table and detector order
// @Tags Meta
// @Produce json
// @Success 200 {object} ClassifierResponse "ok"
// @Router /meta/classifier [get]
func (h *handlers) classifier(_ *http.Request) (any, error) {
	out := ClassifierResponse{
		Version:        classifier.Version,
		HighConfidence: category.HighConfidence,
		Build:          version.Info(),
	}
	if e := h.deps.Engine; e != nil {
		out.Locale, out.Rules, out.Detectors = e.Locale(), e.RuleSource(), e.Detectors()
	}
	return out, nil
}
