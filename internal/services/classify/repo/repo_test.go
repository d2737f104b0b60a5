package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"snipjar/internal/modkit/repokit"
	perr "snipjar/internal/platform/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag int64

func (t tag) String() string      { return "INSERT 0 1" }
func (t tag) RowsAffected() int64 { return int64(t) }

type fakeRows struct {
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dst ...any) error {
	row := r.data[r.i-1]
	if len(dst) != len(row) {
		return errors.New("column count mismatch")
	}
	for i := range dst {
		reflect.ValueOf(dst[i]).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type recorder struct {
	sql   []string
	args  [][]any
	rows  [][]any
	err   error
	txErr error
}

func (f *recorder) Exec(_ context.Context, sql string, args ...any) (repokit.CommandTag, error) {
	f.sql, f.args = append(f.sql, sql), append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return tag(1), nil
}

func (f *recorder) Query(_ context.Context, sql string, args ...any) (repokit.Rows, error) {
	f.sql, f.args = append(f.sql, sql), append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{data: f.rows}, nil
}

func (f *recorder) QueryRow(context.Context, string, ...any) repokit.Row { return nil }

func (f *recorder) Tx(_ context.Context, fn func(repokit.Queryer) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return fn(f)
}

func TestInsertCorrection(t *testing.T) {
	t.Parallel()
	q := &recorder{}
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewPG().Bind(q)

	err := r.InsertCorrection(context.Background(), CorrectionRow{
		ID:                "7b0c1a9e-3c55-4e0e-9d7a-2f1f7f0c8a11",
		Content:           "Seoul",
		ContentKey:        "seoul",
		Predicted:         "name",
		Confidence:        0.5,
		Corrected:         "address",
		ClassifierVersion: 1,
		CreatedAt:         at,
	})
	require.NoError(t, err)
	require.Len(t, q.args, 1)
	assert.Contains(t, q.sql[0], "insert into classification_corrections")
	args := q.args[0]
	assert.Len(t, args, 9)
	assert.Nil(t, args[3], "blank script stores NULL")
	assert.Equal(t, at, args[8])
}

func TestInsertCorrectionMapsPgErrors(t *testing.T) {
	t.Parallel()
	q := &recorder{err: &pgconn.PgError{Code: "23505"}}
	err := NewPG().Bind(q).InsertCorrection(context.Background(), CorrectionRow{ID: "x"})
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeDuplicateKey, perr.CodeOf(err))
}

func TestListCorrections(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	q := &recorder{rows: [][]any{
		{"id-1", "Seoul", "seoul", "Latin", "name", 0.5, "address", 1, at},
		{"id-2", "4111", "4111", "", "text", 0.3, "creditCard", 1, at},
	}}

	got, err := NewPG().Bind(q).ListCorrections(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id-1", got[0].ID)
	assert.Equal(t, "address", got[0].Corrected)
	assert.Equal(t, "", got[1].Script)
	assert.Equal(t, []any{25}, q.args[0])
}

func TestListCorrectionsError(t *testing.T) {
	t.Parallel()
	q := &recorder{err: &pgconn.PgError{Code: "42P01"}}
	_, err := NewPG().Bind(q).ListCorrections(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, perr.IsUndefinedTable(err))
}

func TestEnsurePG(t *testing.T) {
	t.Parallel()
	q := &recorder{}
	require.NoError(t, EnsurePG(context.Background(), q))
	assert.Len(t, q.sql, len(PGSchema))

	q = &recorder{err: errors.New("boom")}
	assert.Error(t, EnsurePG(context.Background(), q))
}

type fakeCH struct {
	table string
	rows  [][]any
	ddl   []string
	err   error
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.rows = table, rows
	return f.err
}
func (f *fakeCH) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.ddl = append(f.ddl, sql)
	return f.err
}
func (f *fakeCH) Close() error { return nil }

func TestEmitEvents(t *testing.T) {
	t.Parallel()
	c := &fakeCH{}
	ev := NewCH(c)

	require.NoError(t, ev.Emit(context.Background()))
	assert.Empty(t, c.table, "no events means no insert")

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("KST", 9*3600))
	require.NoError(t, ev.Emit(context.Background(), Event{
		At: at, Category: "email", Confidence: 0.95, Detector: "email", Runes: 20, Confident: true, ClassifierVersion: 1,
	}))
	assert.Equal(t, EventsTable, c.table)
	require.Len(t, c.rows, 1)
	assert.Len(t, c.rows[0], 8)
	assert.Equal(t, time.UTC, c.rows[0][0].(time.Time).Location())

	require.NoError(t, ev.Emit(context.Background(), Event{At: at, Category: "url"}, Event{At: at, Category: "text"}))
	require.Len(t, c.rows, 2)
	assert.Equal(t, "text", c.rows[1][1])

	c.err = errors.New("down")
	err := ev.Emit(context.Background(), Event{At: at})
	assert.Equal(t, perr.ErrorCodeDB, perr.CodeOf(err))
}

func TestEnsureCH(t *testing.T) {
	t.Parallel()
	c := &fakeCH{}
	require.NoError(t, EnsureCH(context.Background(), c))
	require.Len(t, c.ddl, 1)
	assert.True(t, strings.Contains(c.ddl[0], EventsTable))
	assert.NotContains(t, c.ddl[0], "content")

	require.NoError(t, Discard{}.Emit(context.Background(), Event{}))
}
