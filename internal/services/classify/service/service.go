// Package service contains the classify workflows: single and batch classification,
// corrections and the category listing
package service

import (
	"context"
	"time"
	"unicode/utf8"

	"snipjar/internal/core/category"
	"snipjar/internal/core/classifier"
	perr "snipjar/internal/platform/errors"
	"snipjar/internal/platform/logger"
	pnet "snipjar/internal/platform/net"
	"snipjar/internal/services/classify/domain"
	"snipjar/internal/services/classify/repo"

	"golang.org/x/sync/errgroup"
)

// Service is the classify contract
type Service interface{ domain.ServicePort }

// Options tunes the service
type Options struct {
	// Workers bounds batch fan-out
	Workers int
	// BatchLimit is the largest batch Reclassify accepts
	BatchLimit int
	// ListLimit caps ListCorrections
	ListLimit int
}

// Defaults for Options
const (
	DefaultWorkers    = 4
	DefaultBatchLimit = 500
	DefaultListLimit  = 500
)

// Svc implements Service
type Svc struct {
	engine *classifier.Engine
	repo   repo.Repo
	events repo.Events
	opts   Options
	log    *logger.Logger
	now    func() time.Time
}

// Option customizes Svc beyond Options
type Option func(*Svc)

// WithRepo enables ListCorrections; without it the export is empty
func WithRepo(r repo.Repo) Option { return func(s *Svc) { s.repo = r } }

// WithEvents sends classification events to ev
func WithEvents(ev repo.Events) Option { return func(s *Svc) { s.events = ev } }

// WithLogger overrides the service logger
func WithLogger(l *logger.Logger) Option { return func(s *Svc) { s.log = l } }

// WithClock overrides the event timestamp source
func WithClock(now func() time.Time) Option { return func(s *Svc) { s.now = now } }

// New creates the service over engine
func New(engine *classifier.Engine, o Options, opts ...Option) *Svc {
	if engine == nil {
		panic("classify.Service requires a non nil engine")
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.BatchLimit <= 0 {
		o.BatchLimit = DefaultBatchLimit
	}
	if o.ListLimit <= 0 {
		o.ListLimit = DefaultListLimit
	}
	s := &Svc{engine: engine, opts: o, events: repo.Discard{}, now: time.Now}
	for _, fn := range opts {
		fn(s)
	}
	if s.log == nil {
		s.log = logger.Named("classify")
	}
	return s
}

// Engine exposes the engine for meta endpoints
func (s *Svc) Engine() domain.EngineInfo { return s.engine }

// Classify runs the engine and decorates the result for clients
func (s *Svc) Classify(ctx context.Context, in domain.ClassifyInput) domain.ClassifyOutput {
	res := s.engine.Classify(in.Content)
	s.emit(ctx, s.event(ctx, res, in.Content))
	return output(res)
}

// Reclassify classifies items concurrently and returns results in input order.
// Batches over the limit are rejected whole; a cancelled ctx aborts the batch
func (s *Svc) Reclassify(ctx context.Context, items []domain.Item) ([]domain.ItemResult, error) {
	if len(items) > s.opts.BatchLimit {
		return nil, perr.WithField(
			perr.InvalidArgf("batch of %d items exceeds the limit of %d", len(items), s.opts.BatchLimit),
			"items",
		)
	}

	out := make([]domain.ItemResult, len(items))
	results := make([]classifier.Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i := range items {
		if gctx.Err() != nil {
			break
		}
		i := i // per-iteration copy; go.mod targets go 1.21
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.engine.Classify(items[i].Content)
			out[i] = domain.ItemResult{ID: items[i].ID, ClassifyOutput: output(results[i])}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "reclassify cancelled")
	}

	evs := make([]repo.Event, len(items))
	for i := range items {
		evs[i] = s.event(ctx, results[i], items[i].Content)
	}
	s.emit(ctx, evs...)

	s.log.Debug().Int("items", len(items)).Int("workers", s.opts.Workers).Msg("batch reclassified")
	return out, nil
}

// RecordCorrection hands the relabel to the engine. Once the category is valid it always succeeds
func (s *Svc) RecordCorrection(ctx context.Context, in domain.CorrectionInput) (domain.CorrectionAccepted, error) {
	if !in.Category.Valid() {
		return domain.CorrectionAccepted{}, perr.WithField(perr.InvalidArgf("unknown category %q", in.Category), "category")
	}
	c := s.engine.RecordCorrection(ctx, in.Content, in.Category)
	return domain.CorrectionAccepted{
		Accepted:   true,
		Predicted:  c.Predicted.Category,
		Confidence: c.Predicted.Confidence,
	}, nil
}

// ListCorrections returns the newest stored corrections, at most limit.
// Without a repo the list is empty
func (s *Svc) ListCorrections(ctx context.Context, limit int) ([]domain.Correction, error) {
	if s.repo == nil {
		return []domain.Correction{}, nil
	}
	if limit <= 0 || limit > s.opts.ListLimit {
		limit = s.opts.ListLimit
	}
	rows, err := s.repo.ListCorrections(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Correction, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Correction{
			ID:         r.ID,
			Content:    r.Content,
			ContentKey: r.ContentKey,
			Script:     r.Script,
			Predicted:  category.Category(r.Predicted),
			Confidence: r.Confidence,
			Corrected:  category.Category(r.Corrected),
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}

// Categories lists every category with its presentation
func (s *Svc) Categories() []domain.CategoryInfo {
	all := category.All()
	out := make([]domain.CategoryInfo, 0, len(all))
	for _, c := range all {
		out = append(out, domain.CategoryInfo{Name: c, Icon: c.Icon(), Color: c.Color()})
	}
	return out
}

func output(r classifier.Result) domain.ClassifyOutput {
	return domain.ClassifyOutput{
		Category:          r.Category,
		Confidence:        r.Confidence,
		Detector:          r.Detector,
		Confident:         r.Confident(),
		Icon:              r.Category.Icon(),
		Color:             r.Category.Color(),
		ClassifierVersion: classifier.Version,
	}
}

func (s *Svc) event(ctx context.Context, r classifier.Result, content string) repo.Event {
	return repo.Event{
		At:                s.now().UTC(),
		Category:          r.Category.String(),
		Confidence:        r.Confidence,
		Detector:          r.Detector,
		Runes:             uint32(utf8.RuneCountInString(content)),
		Confident:         r.Confident(),
		Client:            pnet.Client(ctx),
		ClassifierVersion: uint16(classifier.Version),
	}
}

// emit never fails the caller; events are best effort
func (s *Svc) emit(ctx context.Context, evs ...repo.Event) {
	if err := s.events.Emit(ctx, evs...); err != nil {
		s.log.Warn().Err(err).Int("events", len(evs)).Msg("classification events dropped")
	}
}
