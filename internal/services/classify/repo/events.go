package repo

import (
	"context"
	"time"

	"snipjar/internal/modkit/repokit"
	perr "snipjar/internal/platform/errors"
)

// EventsTable is the ClickHouse table classification events land in
const EventsTable = "classification_events"

// Event is the anonymous shape of one classification
type Event struct {
	At                time.Time
	Category          string
	Confidence        float64
	Detector          string
	Runes             uint32
	Confident         bool
	Client            string
	ClassifierVersion uint16
}

// Events appends classification events
type Events interface {
	Emit(ctx context.Context, evs ...Event) error
}

type chEvents struct{ c repokit.Columnar }

// NewCH returns an Events writer over ClickHouse
func NewCH(c repokit.Columnar) Events { return chEvents{c: c} }

func (e chEvents) Emit(ctx context.Context, evs ...Event) error {
	var err error
	switch len(evs) {
	case 0:
		return nil
	case 1:
		err = repokit.InsertOne(ctx, e.c, EventsTable, evs[0].row()...)
	default:
		rows := make([][]any, 0, len(evs))
		for _, ev := range evs {
			rows = append(rows, ev.row())
		}
		err = e.c.Insert(ctx, EventsTable, rows)
	}
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "emit classification events")
	}
	return nil
}

// row is ev in EventsTable column order
func (ev Event) row() []any {
	return []any{
		ev.At.UTC(),
		ev.Category,
		ev.Confidence,
		ev.Detector,
		ev.Runes,
		ev.Confident,
		ev.Client,
		ev.ClassifierVersion,
	}
}

// Discard drops every event; used when ClickHouse is not configured or events are off
type Discard struct{}

// Emit implements Events
func (Discard) Emit(context.Context, ...Event) error { return nil }
