// Package module defines the contract every API module satisfies
package module

import (
	phttp "snipjar/internal/platform/net/http"
)

// Module mounts routes and exposes a port set other modules can borrow
// it lives apart from modkit so a module's own ports package can import it without a cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Names returns the module names in order
func Names(mods []Module) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		if m == nil {
			continue
		}
		out = append(out, m.Name())
	}
	return out
}
