package store

import (
	"context"
	"fmt"

	perr "snipjar/internal/platform/errors"
)

// ExecOne runs a write that must touch exactly one row
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return fmt.Errorf("store: expected 1 row affected, got %d", n)
	}
	return nil
}

// Scalar scans the first column of the first row
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	return v, err
}

// One maps exactly one row with scan; no rows is perr not found
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	items, err := Many(ctx, q, scan, sql, args...)
	var zero T
	switch {
	case err != nil:
		return zero, err
	case len(items) == 0:
		return zero, perr.NotFoundf("not found")
	case len(items) > 1:
		return zero, fmt.Errorf("store: expected 1 row, got %d", len(items))
	}
	return items[0], nil
}

// Many maps every row with scan
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []T
	for rs.Next() {
		item, err := scan(rs)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rs.Err()
}
