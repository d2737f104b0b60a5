package store

import (
	"context"
	"fmt"
	"time"

	chx "snipjar/internal/platform/store/ch"
	"snipjar/internal/platform/store/pg"
)

// pingWithRetry pings with exponential backoff until success, ctx end or attempts run out
func pingWithRetry(ctx context.Context, s *Store, name string, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)
	if attempts <= 0 {
		attempts = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = ping(pctx)
		cancel()
		if lastErr == nil {
			return nil
		}
		s.Log.Debug().Err(lastErr).Str("backend", name).Int("attempt", i+1).Msg("ping failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("%s ping failed after %d attempts: %w", name, attempts, lastErr)
}

func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}
	// ping the pool directly so boot retries stay out of the SQL trace
	if err := pingWithRetry(ctx, s, "postgres", cfg.PG.ConnectRetries, cfg.PG.PingTimeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: "api", Tag: cfg.AppName})
	if err != nil {
		return nil, err
	}
	if err := pingWithRetry(ctx, s, "clickhouse", cfg.CH.ConnectRetries, cfg.CH.PingTimeout, c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCHAdapter(c), nil
}
