package modkit

import (
	"net/http"
	"strings"

	phttp "snipjar/internal/platform/net/http"
	str "snipjar/internal/platform/strings"
)

// Built is the resolved option set a module reads in New
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	Subrouter func(phttp.Router) phttp.Router
	Register  func(phttp.Router)
}

// Build applies opts over defaults. defaults are applied first so callers can override them
func Build(defaults []Option, opts ...Option) Built {
	var b Built
	for _, o := range append(append([]Option(nil), defaults...), opts...) {
		o(&b)
	}
	if b.Subrouter == nil {
		b.Subrouter = func(r phttp.Router) phttp.Router { return r }
	}
	if b.Register == nil {
		b.Register = func(phttp.Router) {}
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount routes a module under b.Prefix with its middleware, then runs own and the extra register hook.
// An empty prefix mounts the module as a group at the router root
func (b Built) Mount(r phttp.Router, own func(phttp.Router)) {
	mount := func(rr phttp.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		rr = b.Subrouter(rr)
		if own != nil {
			own(rr)
		}
		b.Register(rr)
	}
	if strings.TrimSpace(b.Prefix) == "" {
		r.Group(mount)
		return
	}
	r.Route(str.MustPrefix(b.Prefix), mount)
}
