package classifier

import (
	"context"
	"time"
	"unicode/utf8"

	"snipjar/internal/core/category"
)

// Correction is a user relabel of content the engine classified
type Correction struct {
	Content   string
	Predicted Result
	Corrected category.Category
	At        time.Time
}

// Recorder stores corrections for offline review
type Recorder interface {
	RecordCorrection(ctx context.Context, c Correction) error
}

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(ctx context.Context, c Correction) error

// RecordCorrection calls f
func (f RecorderFunc) RecordCorrection(ctx context.Context, c Correction) error { return f(ctx, c) }

// RecordCorrection logs the relabel and hands it to the configured Recorder.
// It never fails and never changes what Classify returns; recorder errors are logged
func (e *Engine) RecordCorrection(ctx context.Context, content string, corrected category.Category) Correction {
	c := Correction{
		Content:   content,
		Predicted: e.Classify(content),
		Corrected: corrected,
		At:        e.opts.Now().UTC(),
	}

	// raw content is never logged
	e.opts.Log.Info().
		Str("predicted", c.Predicted.Category.String()).
		Float64("confidence", c.Predicted.Confidence).
		Str("corrected", corrected.String()).
		Int("runes", utf8.RuneCountInString(content)).
		Msg("classification corrected")

	if e.opts.Recorder == nil {
		return c
	}
	if err := e.opts.Recorder.RecordCorrection(ctx, c); err != nil {
		e.opts.Log.Warn().Err(err).Str("corrected", corrected.String()).Msg("correction not recorded")
	}
	return c
}
