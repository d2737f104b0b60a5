// Package classifier assigns a category and confidence to clipboard content.
// Detectors run in a fixed priority order and the first one that accepts wins
package classifier

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"snipjar/internal/core/category"
	"snipjar/internal/core/rulepack"
	"snipjar/internal/platform/logger"
)

// Version is bumped whenever a change to detectors or the default table can change results
const Version = 1

// FallbackConfidence is returned with category.Text when no detector accepts
const FallbackConfidence = 0.3

// FallbackDetector names the result produced when nothing accepts
const FallbackDetector = "fallback"

// Order is the detector priority, most specific first
var Order = []category.Category{
	category.CreditCard,
	category.Email,
	category.Phone,
	category.URL,
	category.PassportNumber,
	category.DeclarationNumber,
	category.VehiclePlate,
	category.IPAddress,
	category.BirthDate,
	category.PostalCode,
	category.BankAccount,
	category.Address,
	category.Name,
}

// Result is the outcome of a single Classify call
type Result struct {
	Category   category.Category `json:"category"   example:"email"`
	Confidence float64           `json:"confidence" example:"0.95"`
	// Detector is diagnostic only: "" for empty input, FallbackDetector when nothing matched
	Detector string `json:"detector,omitempty" example:"email"`
}

// Confident reports whether the result clears the high confidence bar used by clients
func (r Result) Confident() bool { return r.Confidence >= category.HighConfidence }

// Options configures an Engine
type Options struct {
	Recorder Recorder
	Log      *logger.Logger
	Now      func() time.Time
}

// Option mutates Options
type Option func(*Options)

// WithRecorder forwards corrections to r
func WithRecorder(r Recorder) Option { return func(o *Options) { o.Recorder = r } }

// WithLogger overrides the component logger
func WithLogger(l *logger.Logger) Option { return func(o *Options) { o.Log = l } }

// WithClock overrides the correction timestamp source
func WithClock(now func() time.Time) Option { return func(o *Options) { o.Now = now } }

// Engine runs the detector cascade; it is immutable after New and safe for concurrent use
type Engine struct {
	pack      *rulepack.Pack
	detectors []Detector
	opts      Options
}

// New builds an Engine over the given rule table
func New(p *rulepack.Pack, opts ...Option) (*Engine, error) {
	if p == nil {
		return nil, fmt.Errorf("classifier: nil rule pack")
	}
	o := Options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Log == nil {
		o.Log = logger.Named("classifier")
	}
	if o.Now == nil {
		o.Now = time.Now
	}

	ds, err := buildDetectors(p)
	if err != nil {
		return nil, err
	}
	return &Engine{pack: p, detectors: ds, opts: o}, nil
}

// Classify trims content and returns the first accepting detector's result
// empty input yields (text, 0) and unmatched input yields (text, FallbackConfidence)
func (e *Engine) Classify(content string) Result {
	s := strings.TrimSpace(content)
	if s == "" {
		return Result{Category: category.Text, Confidence: 0}
	}
	for i := range e.detectors {
		if r, ok := e.detectors[i].Detect(s); ok {
			return r
		}
	}
	return Result{Category: category.Text, Confidence: FallbackConfidence, Detector: FallbackDetector}
}

// Detectors returns the detector names in evaluation order
func (e *Engine) Detectors() []string {
	out := make([]string, len(e.detectors))
	for i, d := range e.detectors {
		out[i] = d.Name
	}
	return out
}

// Locale returns the locale of the loaded rule table
func (e *Engine) Locale() string { return e.pack.Locale }

// RuleSource returns where the rule table came from
func (e *Engine) RuleSource() string { return e.pack.Source }

var defaultEngine = sync.OnceValue(func() *Engine {
	p, err := rulepack.Load()
	if err != nil {
		panic(err)
	}
	e, err := New(p)
	if err != nil {
		panic(err)
	}
	return e
})

// Default returns the process-wide engine built from the embedded rule table
func Default() *Engine { return defaultEngine() }

// Classify runs the default engine
func Classify(content string) Result { return Default().Classify(content) }
