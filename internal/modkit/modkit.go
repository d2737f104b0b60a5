// Package modkit wires API modules: shared deps, build options and the module contract
package modkit

import (
	"context"

	"snipjar/internal/modkit/module"
)

// Module is the contract every API module satisfies
type Module = module.Module

// Migrator is implemented by modules that own storage and can create it
type Migrator interface {
	Migrate(ctx context.Context) error
}
