package store

import (
	"context"

	"snipjar/internal/platform/store/ch"
)

type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// clickhouseAdapter narrows a ch client to the Clickhouse seam
type clickhouseAdapter struct{ inner chClient }

var _ Clickhouse = (*clickhouseAdapter)(nil)

func newCHAdapter(c chClient) *clickhouseAdapter { return &clickhouseAdapter{inner: c} }

func (a *clickhouseAdapter) Insert(ctx context.Context, table string, rows [][]any) error {
	return a.inner.Insert(ctx, table, rows)
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r: r}, nil
}

func (a *clickhouseAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return a.inner.Exec(ctx, sql, args...)
}

func (a *clickhouseAdapter) Ping(ctx context.Context) error { return a.inner.Ping(ctx) }

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

// chRows drops the error from Close to match Rows
type chRows struct{ r ch.Rows }

func (x chRows) Next() bool            { return x.r.Next() }
func (x chRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x chRows) Err() error            { return x.r.Err() }
func (x chRows) Close()                { _ = x.r.Close() }
func (x chRows) Columns() []string     { return x.r.Columns() }
