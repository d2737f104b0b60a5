// Package repokit holds the seams repositories are written against
package repokit

import (
	"context"

	"snipjar/internal/platform/store"
)

type (
	// Queryer is the read and write surface for SQL repos
	Queryer = store.RowQuerier

	// TxRunner can run a function inside a transaction
	TxRunner = store.TxRunner

	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// CommandTag is the result of a write
	CommandTag = store.CommandTag

	// Columnar is the append-only ClickHouse seam
	Columnar = store.Clickhouse
)

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// InsertOne appends a single positional row to a columnar table
func InsertOne(ctx context.Context, c Columnar, table string, row ...any) error {
	return c.Insert(ctx, table, [][]any{row})
}
