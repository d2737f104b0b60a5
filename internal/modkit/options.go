package modkit

import (
	"net/http"

	phttp "snipjar/internal/platform/net/http"
)

// Option adjusts the Built a module constructor resolves
type Option func(*Built)

// WithName names the module for logs and Names
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts the module under prefix; empty mounts at the router root
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module ports another module owns, e.g. meta reading the classify engine
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// WithSubrouter wraps the module router before any route is registered
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

// WithRegister adds endpoints after the module's own
func WithRegister(fn func(phttp.Router)) Option {
	return func(b *Built) { b.Register = fn }
}
