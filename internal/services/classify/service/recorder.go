package service

import (
	"context"

	"snipjar/internal/core/classifier"
	"snipjar/internal/core/langhint"
	"snipjar/internal/core/normalize"
	"snipjar/internal/services/classify/repo"

	"github.com/google/uuid"
)

// NewRecorder stores engine corrections through r.
// Content is sanitized first since Postgres text rejects NUL
func NewRecorder(r repo.Repo) classifier.Recorder {
	return classifier.RecorderFunc(func(ctx context.Context, c classifier.Correction) error {
		content := normalize.Sanitize(c.Content)
		return r.InsertCorrection(ctx, repo.CorrectionRow{
			ID:                uuid.NewString(),
			Content:           content,
			ContentKey:        normalize.Key(content),
			Script:            langhint.Script(content),
			Predicted:         c.Predicted.Category.String(),
			Confidence:        c.Predicted.Confidence,
			Corrected:         c.Corrected.String(),
			ClassifierVersion: classifier.Version,
			CreatedAt:         c.At,
		})
	})
}
