// Package repo persists corrections in Postgres and classification events in ClickHouse
package repo

import (
	"context"
	"time"

	"snipjar/internal/modkit/repokit"
	perr "snipjar/internal/platform/errors"
	"snipjar/internal/platform/store"
	str "snipjar/internal/platform/strings"
)

// Repo is the corrections persistence surface
type Repo interface {
	InsertCorrection(ctx context.Context, row CorrectionRow) error
	ListCorrections(ctx context.Context, limit int) ([]CorrectionRow, error)
}

// CorrectionRow is one stored relabel
type CorrectionRow struct {
	ID                string
	Content           string
	ContentKey        string
	Script            string
	Predicted         string
	Confidence        float64
	Corrected         string
	ClassifierVersion int
	CreatedAt         time.Time
}

type (
	// PG binds Repo to a Postgres queryer
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns the Postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) InsertCorrection(ctx context.Context, row CorrectionRow) error {
	const sql = `
insert into classification_corrections
(id, content, content_key, script, predicted, confidence, corrected, classifier_version, created_at)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9)
`
	err := store.ExecOne(ctx, r.q, sql,
		row.ID,
		row.Content,
		row.ContentKey,
		str.SQLNull(row.Script),
		row.Predicted,
		row.Confidence,
		row.Corrected,
		row.ClassifierVersion,
		row.CreatedAt,
	)
	if err != nil {
		return perr.FromPostgres(err, "insert correction")
	}
	return nil
}

func (r *queries) ListCorrections(ctx context.Context, limit int) ([]CorrectionRow, error) {
	const sql = `
select id::text, content, content_key, coalesce(script, ''), predicted, confidence, corrected,
classifier_version, created_at
from classification_corrections
order by created_at desc, id
limit $1
`
	out, err := store.Many(ctx, r.q, scanCorrection, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list corrections")
	}
	return out, nil
}

func scanCorrection(row store.Row) (CorrectionRow, error) {
	var c CorrectionRow
	err := row.Scan(
		&c.ID,
		&c.Content,
		&c.ContentKey,
		&c.Script,
		&c.Predicted,
		&c.Confidence,
		&c.Corrected,
		&c.ClassifierVersion,
		&c.CreatedAt,
	)
	return c, err
}
