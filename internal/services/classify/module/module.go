// Package module wires classify into the API using modkit
package module

import (
	"context"
	"fmt"

	"snipjar/internal/core/classifier"
	"snipjar/internal/core/rulepack"
	modkit "snipjar/internal/modkit"
	"snipjar/internal/modkit/httpkit"
	"snipjar/internal/modkit/repokit"
	"snipjar/internal/platform/logger"
	classifyhttp "snipjar/internal/services/classify/http"
	classifyrepo "snipjar/internal/services/classify/repo"
	classifysvc "snipjar/internal/services/classify/service"
)

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	opts  Options
	log   *logger.Logger

	svc   *classifysvc.Svc
	ports Ports
}

var (
	_ modkit.Module   = (*Module)(nil)
	_ modkit.Migrator = (*Module)(nil)
)

// New builds the engine from the configured rule table and wires the service.
// Corrections persist only when Postgres is configured, events only when ClickHouse is
func New(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build([]modkit.Option{modkit.WithName("classify")}, opts...)
	log := deps.Logger(b.Name)

	pack, err := rulepack.LoadOrFile(o.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	engOpts := []classifier.Option{classifier.WithLogger(log)}
	svcOpts := []classifysvc.Option{classifysvc.WithLogger(log)}
	if deps.HasPG() {
		r := repokit.MustBind(classifyrepo.NewPG(), deps.PG)
		engOpts = append(engOpts, classifier.WithRecorder(classifysvc.NewRecorder(r)))
		svcOpts = append(svcOpts, classifysvc.WithRepo(r))
	}
	switch {
	case o.Events && deps.HasCH():
		svcOpts = append(svcOpts, classifysvc.WithEvents(classifyrepo.NewCH(deps.CH)))
	case o.Events:
		log.Warn().Msg("classification events enabled but clickhouse is not configured")
	}

	eng, err := classifier.New(pack, engOpts...)
	if err != nil {
		return nil, err
	}
	svc := classifysvc.New(eng, classifysvc.Options{Workers: o.Workers, BatchLimit: o.BatchLimit}, svcOpts...)

	log.Info().
		Str("locale", eng.Locale()).
		Str("rules", eng.RuleSource()).
		Bool("corrections_persisted", deps.HasPG()).
		Bool("events", o.Events && deps.HasCH()).
		Msg("classifier ready")

	return &Module{
		deps:  deps,
		built: b,
		opts:  o,
		log:   log,
		svc:   svc,
		ports: Ports{Service: svc, Engine: svc.Engine()},
	}, nil
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { classifyhttp.Register(rr, m.svc) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Migrate creates the corrections and events tables for the configured backends
func (m *Module) Migrate(ctx context.Context) error {
	if !m.opts.Migrate {
		return nil
	}
	if m.deps.HasPG() {
		if err := classifyrepo.EnsurePG(ctx, m.deps.PG); err != nil {
			return err
		}
	}
	if m.opts.Events && m.deps.HasCH() {
		if err := classifyrepo.EnsureCH(ctx, m.deps.CH); err != nil {
			return err
		}
	}
	m.log.Debug().Bool("pg", m.deps.HasPG()).Bool("ch", m.opts.Events && m.deps.HasCH()).Msg("classify schema ensured")
	return nil
}
