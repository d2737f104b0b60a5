// @title         snipjar API
// @version       0.1.0
// @description   Classifies pasted snippets into content categories and records user corrections
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"snipjar/internal/platform/config"
	"snipjar/internal/platform/logger"
	phttp "snipjar/internal/platform/net/http"
	"snipjar/internal/platform/store"

	"snipjar/internal/services/api"
)

func main() {
	// .env first so LOG_* and CORE_* see it
	loaded, dotErr := config.LoadDotenv()

	logger.Init(logger.FromEnv())
	l := logger.Get()
	if dotErr != nil {
		l.Warn().Err(dotErr).Msg("dotenv not loaded")
	} else if len(loaded) > 0 {
		l.Debug().Strs("files", loaded).Msg("dotenv loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// backends are optional; an unset DBURL leaves the seam nil
	st, err := store.Open(ctx, store.ConfigFromEnv("snipjar-api", root), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	a, err := api.New(api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Stack:          api.StackFromConfig(root),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("api.New failed")
	}
	if err := a.Migrate(ctx); err != nil {
		l.Fatal().Err(err).Msg("migrate failed")
	}

	srv := phttp.NewServer(phttp.ServerOptions{
		Addr:            apiCfg.MayPort("PORT", "4000"),
		ShutdownTimeout: apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 0),
	})
	a.Mount(srv.Router())

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		return
	}
	l.Info().Msg("bye")
}
