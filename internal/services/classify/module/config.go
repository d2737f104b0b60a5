package module

import (
	"snipjar/internal/platform/config"
	"snipjar/internal/services/classify/service"
)

// Options configures the classify module
type Options struct {
	// RulesFile replaces the embedded rule table when set
	RulesFile string
	Workers   int
	// BatchLimit bounds POST /classify/batch
	BatchLimit int
	// Events sends anonymous classification events to ClickHouse
	Events bool
	// Migrate creates tables at startup
	Migrate bool
}

// FromConfig reads CORE_CLASSIFY_* keys
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CLASSIFY_")
	return Options{
		RulesFile:  c.MayString("RULES_FILE", ""),
		Workers:    c.MayInt("WORKERS", service.DefaultWorkers),
		BatchLimit: c.MayInt("BATCH_LIMIT", service.DefaultBatchLimit),
		Events:     c.MayBool("EVENTS", false),
		Migrate:    c.MayBool("MIGRATE", true),
	}
}
