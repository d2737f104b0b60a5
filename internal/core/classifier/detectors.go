package classifier

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"snipjar/internal/core/category"
	"snipjar/internal/core/luhn"
	"snipjar/internal/core/rulepack"
)

// Detector is one stage of the cascade
// detect receives the trimmed input and either declines or returns a confidence
type Detector struct {
	Name     string
	Category category.Category
	detect   func(s string) (float64, bool)
}

// Detect runs the detector against already trimmed input
func (d Detector) Detect(s string) (Result, bool) {
	if d.detect == nil {
		return Result{}, false
	}
	c, ok := d.detect(s)
	if !ok {
		return Result{}, false
	}
	return Result{Category: d.Category, Confidence: c, Detector: d.Name}, true
}

// requiredChecks lists detectors whose rules must carry a verification step
// a pattern match alone is never enough for these
var requiredChecks = map[category.Category][]rulepack.Check{
	category.CreditCard: {rulepack.CheckLuhn},
	category.IPAddress:  {rulepack.CheckOctets, rulepack.CheckIPv6},
}

func buildDetectors(p *rulepack.Pack) ([]Detector, error) {
	out := make([]Detector, 0, len(Order))
	for _, c := range Order {
		name := c.String()
		if c == category.Address {
			out = append(out, addressDetector(p.Address))
			continue
		}

		rules := p.For(name)
		if allowed, ok := requiredChecks[c]; ok {
			for i, r := range rules {
				if !hasCheck(allowed, r.Check) {
					return nil, fmt.Errorf("classifier: %s[%d] must declare one of %v", name, i, allowed)
				}
			}
		}

		d := patternDetector(c, rules)
		if c == category.BankAccount {
			d = declinePrefix(d, "P")
		}
		out = append(out, d)
	}
	return out, nil
}

func hasCheck(allowed []rulepack.Check, c rulepack.Check) bool {
	for _, a := range allowed {
		if a == c {
			return true
		}
	}
	return false
}

// patternDetector tries rules in order; the first match whose check passes wins
func patternDetector(c category.Category, rules []rulepack.Rule) Detector {
	return Detector{
		Name:     c.String(),
		Category: c,
		detect: func(s string) (float64, bool) {
			for i := range rules {
				r := &rules[i]
				in := prepare(s, r.Input)
				if in == "" || !r.Compiled.MatchString(in) {
					continue
				}
				if !verify(r.Check, in) {
					continue
				}
				return r.Confidence, true
			}
			return 0, false
		},
	}
}

// declinePrefix rejects input starting with prefix (case-insensitive) before d runs
func declinePrefix(d Detector, prefix string) Detector {
	inner := d.detect
	d.detect = func(s string) (float64, bool) {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			return 0, false
		}
		return inner(s)
	}
	return d
}

func prepare(s string, in rulepack.Input) string {
	switch in {
	case rulepack.InputLower:
		return strings.ToLower(s)
	case rulepack.InputDigits:
		return keep(s, false)
	case rulepack.InputDigitsHyphens:
		return keep(s, true)
	default:
		return s
	}
}

// keep returns the ASCII digits of s, plus hyphens when hyphens is set
func keep(s string, hyphens bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (hyphens && c == '-') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func verify(c rulepack.Check, s string) bool {
	switch c {
	case rulepack.CheckNone:
		return true
	case rulepack.CheckLuhn:
		return luhn.Valid(s)
	case rulepack.CheckOctets:
		return octetsInRange(s)
	case rulepack.CheckIPv6:
		return ipv6Shaped(s)
	default:
		return false
	}
}

// octetsInRange reports whether s is four dot separated integers in [0,255]
func octetsInRange(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// ipv6Shaped is a loose check: colon separated hex groups of at most 4 digits,
// either all 8 groups present or exactly one "::" standing in for the rest.
// Only the "::" itself may be empty, so "::1:" and ":1::2" fail
func ipv6Shaped(s string) bool {
	if strings.Contains(s, ":::") {
		return false
	}
	switch strings.Count(s, "::") {
	case 0:
		n, ok := hexGroups(s)
		return ok && n == 8
	case 1:
		head, tail, _ := strings.Cut(s, "::")
		nh, okh := hexGroups(head)
		nt, okt := hexGroups(tail)
		return okh && okt && nh+nt <= 7
	default:
		return false
	}
}

// hexGroups validates a colon separated run of 1..4 digit hex groups; "" is zero groups
func hexGroups(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	groups := strings.Split(s, ":")
	for _, g := range groups {
		if g == "" || len(g) > 4 {
			return 0, false
		}
		for i := 0; i < len(g); i++ {
			if !isHex(g[i]) {
				return 0, false
			}
		}
	}
	return len(groups), true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// addressDetector counts address-indicative tokens and falls back to a
// postal-code-plus-local-script check at lower confidence
func addressDetector(a rulepack.Address) Detector {
	markers := newMarkerSet(a.Markers)
	return Detector{
		Name:     category.Address.String(),
		Category: category.Address,
		detect: func(s string) (float64, bool) {
			if addressTokens(a, markers, strings.Fields(s)) >= a.MinKeywords && a.KeywordConfidence > 0 {
				return a.KeywordConfidence, true
			}
			if a.DigitRun != nil && a.Alphabet != nil && a.FallbackConfidence > 0 &&
				a.DigitRun.MatchString(s) && a.Alphabet.MatchString(s) {
				return a.FallbackConfidence, true
			}
			return 0, false
		},
	}
}

// addressTokens counts tokens that read as part of an address. Words and markers
// always count. Unit suffixes double as particles and verb endings (친구, 가면),
// so a unit token only counts when it joins a chain of counted tokens
func addressTokens(a rulepack.Address, markers *markerSet, toks []string) int {
	counted := make([]bool, len(toks))
	unit := make([]bool, len(toks))
	for i, tok := range toks {
		bare := strings.TrimRight(tok, ",;")
		switch {
		case isAddressWord(a, markers, bare):
			counted[i] = true
		case hasSuffix(a, a.Streets, bare):
			counted[i] = hasDigit(bare) || (i+1 < len(toks) && isHouseNumber(toks[i+1]))
		case hasSuffix(a, a.Suffixes, bare):
			unit[i] = true
			counted[i] = hasDigit(bare)
		}
	}
	for grew := true; grew; {
		grew = false
		for i := range toks {
			if !unit[i] || counted[i] {
				continue
			}
			if (i > 0 && counted[i-1]) || (i+1 < len(toks) && counted[i+1]) {
				counted[i] = true
				grew = true
			}
		}
	}
	n := 0
	for _, c := range counted {
		if c {
			n++
		}
	}
	return n
}

func isAddressWord(a rulepack.Address, markers *markerSet, bare string) bool {
	if _, ok := a.Words[strings.ToLower(bare)]; ok {
		return true
	}
	return markers.contains(bare)
}

func hasSuffix(a rulepack.Address, suffixes []string, bare string) bool {
	if utf8.RuneCountInString(bare) < a.MinSuffixRunes {
		return false
	}
	for _, suf := range suffixes {
		if strings.HasSuffix(bare, suf) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// isHouseNumber accepts 152, 152-3 and 152, as written after a road name
func isHouseNumber(tok string) bool {
	tok = strings.TrimRight(tok, ",;")
	head, tail, split := strings.Cut(tok, "-")
	if !allDigits(head) {
		return false
	}
	return !split || allDigits(tail)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
