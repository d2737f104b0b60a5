package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"snipjar/internal/core/category"
	"snipjar/internal/core/classifier"
	"snipjar/internal/core/rulepack"
	perr "snipjar/internal/platform/errors"
	pnet "snipjar/internal/platform/net"
	"snipjar/internal/services/classify/domain"
	"snipjar/internal/services/classify/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu        sync.Mutex
	inserted  []repo.CorrectionRow
	insertErr error
	rows      []repo.CorrectionRow
	lastLimit int
}

func (f *fakeRepo) InsertCorrection(_ context.Context, row repo.CorrectionRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, row)
	return f.insertErr
}

func (f *fakeRepo) ListCorrections(_ context.Context, limit int) ([]repo.CorrectionRow, error) {
	f.lastLimit = limit
	return f.rows, nil
}

type fakeEvents struct {
	mu  sync.Mutex
	got []repo.Event
	err error
}

func (f *fakeEvents) Emit(_ context.Context, evs ...repo.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, evs...)
	return f.err
}

var at = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newSvc(t *testing.T, o Options, r *fakeRepo, ev *fakeEvents) *Svc {
	t.Helper()
	p, err := rulepack.Load()
	require.NoError(t, err)

	nop := zerolog.Nop()
	engOpts := []classifier.Option{classifier.WithLogger(&nop), classifier.WithClock(func() time.Time { return at })}
	svcOpts := []Option{WithLogger(&nop), WithClock(func() time.Time { return at })}
	if r != nil {
		engOpts = append(engOpts, classifier.WithRecorder(NewRecorder(r)))
		svcOpts = append(svcOpts, WithRepo(r))
	}
	if ev != nil {
		svcOpts = append(svcOpts, WithEvents(ev))
	}
	eng, err := classifier.New(p, engOpts...)
	require.NoError(t, err)
	return New(eng, o, svcOpts...)
}

func TestNewPanicsWithoutEngine(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil, Options{}) })
}

func TestClassifyDecoratesAndEmits(t *testing.T) {
	t.Parallel()
	ev := &fakeEvents{}
	s := newSvc(t, Options{}, nil, ev)

	ctx := pnet.WithClient(context.Background(), "macos/1.4.0")
	out := s.Classify(ctx, domain.ClassifyInput{Content: "test@example.com"})

	assert.Equal(t, category.Email, out.Category)
	assert.Equal(t, 0.95, out.Confidence)
	assert.True(t, out.Confident)
	assert.Equal(t, "envelope.fill", out.Icon)
	assert.Equal(t, "blue", out.Color)
	assert.Equal(t, classifier.Version, out.ClassifierVersion)

	require.Len(t, ev.got, 1)
	e := ev.got[0]
	assert.Equal(t, "email", e.Category)
	assert.Equal(t, uint32(16), e.Runes)
	assert.Equal(t, "macos/1.4.0", e.Client)
	assert.True(t, e.At.Equal(at))
}

func TestClassifyEmptyAndFallback(t *testing.T) {
	t.Parallel()
	s := newSvc(t, Options{}, nil, nil)

	out := s.Classify(context.Background(), domain.ClassifyInput{Content: "   "})
	assert.Equal(t, category.Text, out.Category)
	assert.Zero(t, out.Confidence)
	assert.False(t, out.Confident)
	assert.Equal(t, "doc.plaintext", out.Icon)

	out = s.Classify(context.Background(), domain.ClassifyInput{Content: "just some text"})
	assert.Equal(t, category.Text, out.Category)
	assert.Equal(t, classifier.FallbackConfidence, out.Confidence)
	assert.Equal(t, classifier.FallbackDetector, out.Detector)
}

func TestClassifySurvivesEventFailure(t *testing.T) {
	t.Parallel()
	ev := &fakeEvents{err: errors.New("clickhouse down")}
	s := newSvc(t, Options{}, nil, ev)
	out := s.Classify(context.Background(), domain.ClassifyInput{Content: "192.168.0.1"})
	assert.Equal(t, category.IPAddress, out.Category)
}

func TestReclassifyPreservesOrder(t *testing.T) {
	t.Parallel()
	ev := &fakeEvents{}
	s := newSvc(t, Options{Workers: 3}, nil, ev)

	inputs := []struct {
		content string
		want    category.Category
	}{
		{"test@example.com", category.Email},
		{"192.168.0.1", category.IPAddress},
		{"4532015112830366", category.CreditCard},
		{"12345", category.PostalCode},
		{"just some text", category.Text},
	}
	var items []domain.Item
	for i := 0; i < 40; i++ {
		in := inputs[i%len(inputs)]
		items = append(items, domain.Item{ID: fmt.Sprintf("memo-%d", i), Content: in.content})
	}

	got, err := s.Reclassify(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, got, len(items))
	for i, r := range got {
		assert.Equal(t, items[i].ID, r.ID)
		assert.Equal(t, inputs[i%len(inputs)].want, r.Category, "item %d", i)
	}
	assert.Len(t, ev.got, len(items))
	assert.Equal(t, "email", ev.got[0].Category)
}

func TestReclassifyRejectsOversizedBatch(t *testing.T) {
	t.Parallel()
	s := newSvc(t, Options{BatchLimit: 2}, nil, nil)
	_, err := s.Reclassify(context.Background(), make([]domain.Item, 3))
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "items", e.Field())
}

func TestReclassifyHonoursCancellation(t *testing.T) {
	t.Parallel()
	ev := &fakeEvents{}
	s := newSvc(t, Options{}, nil, ev)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Reclassify(ctx, []domain.Item{{ID: "a", Content: "x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
	assert.Empty(t, ev.got)
}

func TestReclassifyEmpty(t *testing.T) {
	t.Parallel()
	s := newSvc(t, Options{}, nil, nil)
	got, err := s.Reclassify(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordCorrectionStoresSanitizedRow(t *testing.T) {
	t.Parallel()
	r := &fakeRepo{}
	s := newSvc(t, Options{}, r, nil)

	content := "Seoul\x00 Gangnam-gu"
	predicted := s.engine.Classify(content)

	ack, err := s.RecordCorrection(context.Background(), domain.CorrectionInput{Content: content, Category: category.Address})
	require.NoError(t, err)
	assert.True(t, ack.Accepted)
	assert.Equal(t, predicted.Category, ack.Predicted)

	require.Len(t, r.inserted, 1)
	row := r.inserted[0]
	_, err = uuid.Parse(row.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Seoul Gangnam-gu", row.Content)
	assert.Equal(t, "seoul gangnam-gu", row.ContentKey)
	assert.Equal(t, "Latin", row.Script)
	assert.Equal(t, "address", row.Corrected)
	assert.Equal(t, predicted.Category.String(), row.Predicted)
	assert.Equal(t, classifier.Version, row.ClassifierVersion)
	assert.True(t, row.CreatedAt.Equal(at))

	assert.Equal(t, predicted, s.engine.Classify(content), "corrections never change results")
}

func TestRecordCorrectionIgnoresRepoFailure(t *testing.T) {
	t.Parallel()
	r := &fakeRepo{insertErr: errors.New("pg down")}
	s := newSvc(t, Options{}, r, nil)
	ack, err := s.RecordCorrection(context.Background(), domain.CorrectionInput{Content: "홍길동", Category: category.Name})
	require.NoError(t, err)
	assert.True(t, ack.Accepted)
	assert.Equal(t, category.Name, ack.Predicted)
}

func TestRecordCorrectionRejectsUnknownCategory(t *testing.T) {
	t.Parallel()
	s := newSvc(t, Options{}, nil, nil)
	_, err := s.RecordCorrection(context.Background(), domain.CorrectionInput{Content: "x", Category: "rocket"})
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
}

func TestListCorrections(t *testing.T) {
	t.Parallel()

	s := newSvc(t, Options{}, nil, nil)
	got, err := s.ListCorrections(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	r := &fakeRepo{rows: []repo.CorrectionRow{{
		ID: "id-1", Content: "Seoul", ContentKey: "seoul", Script: "Latin",
		Predicted: "name", Confidence: 0.6, Corrected: "address", CreatedAt: at,
	}}}
	s = newSvc(t, Options{ListLimit: 100}, r, nil)

	got, err = s.ListCorrections(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 100, r.lastLimit)
	require.Len(t, got, 1)
	assert.Equal(t, category.Address, got[0].Corrected)
	assert.Equal(t, category.Name, got[0].Predicted)

	_, err = s.ListCorrections(context.Background(), 5000)
	require.NoError(t, err)
	assert.Equal(t, 100, r.lastLimit)

	_, err = s.ListCorrections(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, r.lastLimit)
}

func TestCategories(t *testing.T) {
	t.Parallel()
	s := newSvc(t, Options{}, nil, nil)
	got := s.Categories()
	require.Len(t, got, len(category.All()))
	assert.Equal(t, domain.CategoryInfo{Name: category.Email, Icon: "envelope.fill", Color: "blue"}, got[0])
}

func TestEngineInfo(t *testing.T) {
	t.Parallel()
	s := newSvc(t, Options{}, nil, nil)
	info := s.Engine()
	assert.Equal(t, "embedded", info.RuleSource())
	assert.NotEmpty(t, info.Locale())
	assert.Len(t, info.Detectors(), len(classifier.Order))
}
