// Package module wires meta endpoints into the API
package module

import (
	"time"

	modkit "snipjar/internal/modkit"
	"snipjar/internal/modkit/httpkit"

	metahttp "snipjar/internal/services/api/meta/http"
)

// Module implements modkit.Module
type Module struct {
	built     modkit.Built
	hdeps     metahttp.Deps
	startedAt time.Time
}

// Ports are borrowed from other modules through modkit.WithPorts
type Ports struct {
	// Engine is the classifier /meta/classifier reports on; nil leaves those fields blank
	Engine metahttp.Engine
}

// New constructs the meta module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)

	var engine metahttp.Engine
	if p, ok := b.Ports.(Ports); ok {
		engine = p.Engine
	}

	m := &Module{built: b, startedAt: time.Now()}
	m.hdeps = metahttp.Deps{
		ServiceName: "snipjar-api",
		StartedAt:   m.startedAt,
		Engine:      engine,
	}
	// assign only configured backends so the checks see an untyped nil
	if deps.HasPG() {
		m.hdeps.PG = deps.PG
	}
	if deps.HasCH() {
		m.hdeps.CH = deps.CH
	}
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.hdeps) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports implements modkit.Module; meta lends nothing
func (m *Module) Ports() any { return nil }
