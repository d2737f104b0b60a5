package domain

import "context"

// ServicePort is the classify contract other modules and transports use
type ServicePort interface {
	Classify(ctx context.Context, in ClassifyInput) ClassifyOutput
	Reclassify(ctx context.Context, items []Item) ([]ItemResult, error)
	RecordCorrection(ctx context.Context, in CorrectionInput) (CorrectionAccepted, error)
	ListCorrections(ctx context.Context, limit int) ([]Correction, error)
	Categories() []CategoryInfo
}

// EngineInfo describes the loaded classifier for meta endpoints
type EngineInfo interface {
	Locale() string
	RuleSource() string
	Detectors() []string
}
