// Package rulepack loads the locale rule table used by the classifier.
// The default table is the embedded rules.json; a YAML file with the same shape can replace it
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.json
var embedded []byte

// SupportedVersion is the only table layout Load understands
const SupportedVersion = 1

// Input names how a detector prepares the trimmed string before matching
type Input string

// Input preparations
const (
	InputTrimmed       Input = "trimmed"
	InputLower         Input = "lower"
	InputDigits        Input = "digits"
	InputDigitsHyphens Input = "digits_hyphens"
)

// Check names a mandatory verification applied after a pattern matches
type Check string

// Known checks
const (
	CheckNone   Check = ""
	CheckLuhn   Check = "luhn"
	CheckOctets Check = "octets"
	CheckIPv6   Check = "ipv6"
)

type rawRule struct {
	Pattern    string   `json:"pattern"            yaml:"pattern"`
	Confidence float64  `json:"confidence"         yaml:"confidence"`
	Input      string   `json:"input,omitempty"    yaml:"input,omitempty"`
	Check      string   `json:"check,omitempty"    yaml:"check,omitempty"`
	Note       string   `json:"note,omitempty"     yaml:"note,omitempty"`
	Examples   []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

type rawAddress struct {
	Suffixes           []string `json:"suffixes"            yaml:"suffixes"`
	Streets            []string `json:"streets"             yaml:"streets"`
	MinSuffixRunes     int      `json:"min_suffix_runes"    yaml:"min_suffix_runes"`
	Markers            []string `json:"markers"             yaml:"markers"`
	Words              []string `json:"words"               yaml:"words"`
	MinKeywords        int      `json:"min_keywords"        yaml:"min_keywords"`
	KeywordConfidence  float64  `json:"keyword_confidence"  yaml:"keyword_confidence"`
	DigitRun           string   `json:"digit_run"           yaml:"digit_run"`
	Alphabet           string   `json:"alphabet"            yaml:"alphabet"`
	FallbackConfidence float64  `json:"fallback_confidence" yaml:"fallback_confidence"`
}

type rawPack struct {
	Version   int                  `json:"version"   yaml:"version"`
	Locale    string               `json:"locale"    yaml:"locale"`
	Meta      map[string]any       `json:"meta"      yaml:"meta"`
	Detectors map[string][]rawRule `json:"detectors" yaml:"detectors"`
	Address   rawAddress           `json:"address"   yaml:"address"`
}

// Rule is one compiled (pattern, confidence) entry for a detector
type Rule struct {
	Pattern    string
	Confidence float64
	Input      Input
	Check      Check
	Examples   []string
	Compiled   *regexp.Regexp
}

// Address holds the keyword heuristic data for the address detector.
// A Suffixes token (강남구, 역삼동) counts only next to another counted token;
// a Streets token (테헤란로, 2층) counts only when it carries or precedes a house number
type Address struct {
	Suffixes          []string
	Streets           []string
	MinSuffixRunes    int
	Markers           []string
	Words             map[string]struct{} // lowercased
	MinKeywords       int
	KeywordConfidence float64

	DigitRun           *regexp.Regexp
	Alphabet           *regexp.Regexp
	FallbackConfidence float64
}

// Pack is a compiled locale rule table
type Pack struct {
	Version int
	Locale  string
	Meta    map[string]any
	Source  string // "embedded" or the file path

	// detector name -> rules in evaluation order
	Rules   map[string][]Rule
	Address Address
}

// For returns the rules for a detector in evaluation order
func (p *Pack) For(detector string) []Rule {
	if p == nil {
		return nil
	}
	return p.Rules[detector]
}

// Detectors returns the detector names that carry rules, sorted
func (p *Pack) Detectors() []string {
	out := make([]string, 0, len(p.Rules))
	for k := range p.Rules {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	return compile(rp, "embedded")
}

// LoadFile reads a YAML (or JSON, which is valid YAML) rule table from path
func LoadFile(path string) (*Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulepack: read %s: %w", path, err)
	}
	var rp rawPack
	if err := yaml.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse %s: %w", path, err)
	}
	return compile(rp, path)
}

// LoadOrFile loads path when set and falls back to the embedded table otherwise
func LoadOrFile(path string) (*Pack, error) {
	if strings.TrimSpace(path) == "" {
		return Load()
	}
	return LoadFile(path)
}

func compile(rp rawPack, source string) (*Pack, error) {
	if rp.Version != SupportedVersion {
		return nil, fmt.Errorf("rulepack: unsupported version %d (want %d)", rp.Version, SupportedVersion)
	}

	p := &Pack{
		Version: rp.Version,
		Locale:  rp.Locale,
		Meta:    rp.Meta,
		Source:  source,
		Rules:   make(map[string][]Rule, len(rp.Detectors)),
	}

	for name, rules := range rp.Detectors {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("rulepack: empty detector name")
		}
		out := make([]Rule, 0, len(rules))
		for i, r := range rules {
			rule, err := compileRule(r)
			if err != nil {
				return nil, fmt.Errorf("rulepack: %s[%d]: %w", name, i, err)
			}
			out = append(out, rule)
		}
		p.Rules[name] = out
	}

	addr, err := compileAddress(rp.Address)
	if err != nil {
		return nil, fmt.Errorf("rulepack: address: %w", err)
	}
	p.Address = addr

	return p, nil
}

func compileRule(r rawRule) (Rule, error) {
	if err := checkConfidence(r.Confidence); err != nil {
		return Rule{}, err
	}
	in := Input(strings.ToLower(strings.TrimSpace(r.Input)))
	switch in {
	case "":
		in = InputTrimmed
	case InputTrimmed, InputLower, InputDigits, InputDigitsHyphens:
	default:
		return Rule{}, fmt.Errorf("unknown input %q", r.Input)
	}
	ck := Check(strings.ToLower(strings.TrimSpace(r.Check)))
	switch ck {
	case CheckNone, CheckLuhn, CheckOctets, CheckIPv6:
	default:
		return Rule{}, fmt.Errorf("unknown check %q", r.Check)
	}
	if r.Pattern == "" {
		return Rule{}, fmt.Errorf("empty pattern")
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compile %q: %w", r.Pattern, err)
	}
	return Rule{
		Pattern:    r.Pattern,
		Confidence: r.Confidence,
		Input:      in,
		Check:      ck,
		Examples:   r.Examples,
		Compiled:   re,
	}, nil
}

func compileAddress(ra rawAddress) (Address, error) {
	a := Address{
		MinSuffixRunes:     ra.MinSuffixRunes,
		MinKeywords:        ra.MinKeywords,
		KeywordConfidence:  ra.KeywordConfidence,
		FallbackConfidence: ra.FallbackConfidence,
		Words:              make(map[string]struct{}, len(ra.Words)),
	}
	if a.MinKeywords <= 0 {
		a.MinKeywords = 2
	}
	if a.MinSuffixRunes <= 0 {
		a.MinSuffixRunes = 2
	}
	if err := checkConfidence(a.KeywordConfidence); err != nil {
		return Address{}, fmt.Errorf("keyword_confidence: %w", err)
	}
	if err := checkConfidence(a.FallbackConfidence); err != nil {
		return Address{}, fmt.Errorf("fallback_confidence: %w", err)
	}

	a.Suffixes = trimmed(ra.Suffixes)
	a.Streets = trimmed(ra.Streets)

	a.Markers = trimmed(ra.Markers)
	for _, s := range ra.Words {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			a.Words[s] = struct{}{}
		}
	}

	if ra.DigitRun != "" {
		re, err := regexp.Compile(ra.DigitRun)
		if err != nil {
			return Address{}, fmt.Errorf("digit_run: %w", err)
		}
		a.DigitRun = re
	}
	if ra.Alphabet != "" {
		re, err := regexp.Compile(ra.Alphabet)
		if err != nil {
			return Address{}, fmt.Errorf("alphabet: %w", err)
		}
		a.Alphabet = re
	}
	return a, nil
}

func checkConfidence(c float64) error {
	if math.IsNaN(c) || c < 0 || c > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", c)
	}
	return nil
}

func trimmed(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
