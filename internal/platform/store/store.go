// Package store opens the optional Postgres and ClickHouse backends behind
// small seams so services never import a driver directly
package store

import (
	"context"
	"errors"
	"fmt"

	"snipjar/internal/platform/logger"
)

// Store holds the enabled backends; a nil seam means the backend is disabled
type Store struct {
	Log logger.Logger

	// PG stores recorded corrections
	PG TxRunner

	// CH receives anonymous classification events
	CH Clickhouse
}

// Row is the single row scan contract
type Row interface {
	Scan(dest ...any) error
}

// Rows is the result set contract
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports write results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the SQL surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactions to RowQuerier
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar write seam; rows are positional in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects every backend enabled in cfg. A failure closes what was already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Named("store").With().Logger()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		pgc, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = pgc
	}
	if cfg.CH.Enabled {
		chc, err := openCH(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = chc
	}

	s.Log.Info().Bool("pg", s.PG != nil).Bool("ch", s.CH != nil).Msg("store opened")
	return s, nil
}

// Guard pings every enabled backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if p, ok := s.CH.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ch: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every opened backend
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
