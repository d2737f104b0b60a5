package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22001", ErrorCodeInvalidArgument},
		{"25006", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"42P01", ErrorCodeDB},
		{"XXXXX", ErrorCodeDB},
	}
	for _, tc := range cases {
		got, ok := DBErrorCode(&pgconn.PgError{Code: tc.code})
		if !ok || got != tc.want {
			t.Fatalf("DBErrorCode(%s) = %v,%v want %v", tc.code, got, ok, tc.want)
		}
	}
	if got, ok := DBErrorCode(pgx.ErrNoRows); !ok || got != ErrorCodeNotFound {
		t.Fatalf("no rows = %v,%v", got, ok)
	}
	if _, ok := DBErrorCode(stderrs.New("plain")); ok {
		t.Fatalf("plain error should not map")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
	err := FromPostgres(fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42P01"}), "list corrections")
	if !IsUndefinedTable(err) || CodeOf(err) != ErrorCodeDB {
		t.Fatalf("unexpected %v", err)
	}
	if !IsCode(FromPostgres(stderrs.New("eof"), "x"), ErrorCodeDB) {
		t.Fatalf("non pg error should be db")
	}
	if !IsDuplicateKey(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("duplicate key not detected")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{fmt.Errorf("q: %w", context.DeadlineExceeded), false},
		{&pgconn.PgError{Code: "40001"}, true},
		{&pgconn.PgError{Code: "57P03"}, true},
		{&pgconn.PgError{Code: "23505"}, false},
		{stderrs.New("commit unexpectedly resulted in rollback"), true},
		{stderrs.New("syntax error"), false},
	}
	for i, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("case %d: IsRetryable(%v) = %v", i, tc.err, got)
		}
	}
}
