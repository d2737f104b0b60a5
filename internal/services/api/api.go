// Package api assembles the HTTP API from its modules
package api

import (
	"context"
	"fmt"

	"snipjar/internal/platform/config"
	"snipjar/internal/platform/logger"
	phttp "snipjar/internal/platform/net/http"
	"snipjar/internal/platform/net/middleware"
	"snipjar/internal/platform/store"

	"snipjar/internal/modkit"
	"snipjar/internal/modkit/httpkit"
	"snipjar/internal/modkit/module"
	"snipjar/internal/modkit/swaggerkit"

	metamod "snipjar/internal/services/api/meta/module"
	classifydomain "snipjar/internal/services/classify/domain"
	classifymod "snipjar/internal/services/classify/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store // nil runs without backends
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// API owns the constructed modules
type API struct {
	opt  Options
	log  *logger.Logger
	mods []module.Module
}

// New constructs every module. classify comes first since meta reports on its engine
func New(opt Options) (*API, error) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}
	deps := modkit.DepsFrom(opt.Config, opt.Store, *log)

	classify, err := classifymod.New(deps, classifymod.FromConfig(opt.Config))
	if err != nil {
		return nil, err
	}
	engine := module.MustPortsOf[classifydomain.EngineInfo](classify)

	return &API{
		opt: opt,
		log: log,
		mods: []module.Module{
			metamod.New(deps,
				modkit.WithPorts(metamod.Ports{Engine: engine}),
				modkit.WithMiddlewares(middleware.NoCache()),
			),
			classify,
		},
	}, nil
}

// Modules returns the module names in mount order
func (a *API) Modules() []string { return module.Names(a.mods) }

// Migrate runs every module that owns schema
func (a *API) Migrate(ctx context.Context) error {
	for _, m := range a.mods {
		mg, ok := m.(modkit.Migrator)
		if !ok {
			continue
		}
		if err := mg.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate %s: %w", m.Name(), err)
		}
	}
	return nil
}

// Mount mounts docs, the profiler and /api/v1 onto r
func (a *API) Mount(r phttp.Router) {
	swaggerkit.Mount(r, a.opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", a.opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(a.opt.Stack), func(api httpkit.Router) {
		for _, m := range a.mods {
			m.MountRoutes(api)
		}
	})
	a.log.Debug().Strs("modules", a.Modules()).Msg("api mounted")
}

// StackFromConfig reads CORE_API_* middleware settings
func StackFromConfig(cfg config.Conf) httpkit.StackOptions {
	c := cfg.Prefix("CORE_API_")
	return httpkit.StackOptions{
		Timeout:  c.MayDuration("TIMEOUT", 0),
		Slow:     c.MayDuration("SLOW", 0),
		Throttle: c.MayInt("THROTTLE", 0),
		CORS: middleware.CORSOptions{
			AllowedOrigins: c.MayCSV("CORS_ORIGINS", nil),
		},
	}
}
