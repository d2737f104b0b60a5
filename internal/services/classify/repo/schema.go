package repo

import (
	"context"

	"snipjar/internal/modkit/repokit"
	perr "snipjar/internal/platform/errors"
)

// PGSchema creates the corrections table; every statement is idempotent
var PGSchema = []string{
	`create table if not exists classification_corrections (
  id uuid primary key,
  content text not null,
  content_key text not null,
  script text,
  predicted text not null,
  confidence double precision not null,
  corrected text not null,
  classifier_version integer not null,
  created_at timestamptz not null default now()
)`,
	`create index if not exists classification_corrections_key_idx on classification_corrections (content_key)`,
	`create index if not exists classification_corrections_created_idx on classification_corrections (created_at desc)`,
}

// CHSchema creates the events table. content is never stored, only its shape
var CHSchema = []string{
	`create table if not exists ` + EventsTable + ` (
  at DateTime64(3, 'UTC'),
  category LowCardinality(String),
  confidence Float64,
  detector LowCardinality(String),
  runes UInt32,
  confident Bool,
  client LowCardinality(String),
  classifier_version UInt16
) engine = MergeTree
partition by toYYYYMM(at)
order by (category, at)`,
}

// EnsurePG applies PGSchema in one transaction
func EnsurePG(ctx context.Context, tx repokit.TxRunner) error {
	return repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		for _, stmt := range PGSchema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return perr.FromPostgres(err, "apply corrections schema")
			}
		}
		return nil
	})
}

// EnsureCH applies CHSchema
func EnsureCH(ctx context.Context, c repokit.Columnar) error {
	for _, stmt := range CHSchema {
		if err := c.Exec(ctx, stmt); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "apply events schema")
		}
	}
	return nil
}
