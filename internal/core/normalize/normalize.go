// Package normalize builds the folded key stored next to recorded corrections
// so the same snippet copied with different width, case or spacing groups together.
// Pipeline order
// 1 Sanitize control bytes and drop invalid UTF-8
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 NFC recomposition so Hangul syllables survive
// 7 Collapse whitespace runs to single spaces and trim
//
// Classification itself never sees this form, detectors work on the trimmed original
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxKeyRunes caps the key so very large clipboards still index cheaply
const MaxKeyRunes = 512

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // combining marks
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
			norm.NFC,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Key returns the folded correction key for s
func (n *Normalizer) Key(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ks, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return truncateRunes(collapseSpaces(ks), MaxKeyRunes)
}

// Key is a convenience over a zero Normalizer
func Key(s string) string { return New().Key(s) }

// collapseSpaces converts every whitespace run to one ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
