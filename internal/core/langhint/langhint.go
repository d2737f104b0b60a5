// Package langhint tags snippets with a coarse writing system.
// Recorded corrections carry the tag so reviewers can split them by region
package langhint

import (
	"unicode"
)

// scripts in tie-break order; specific scripts beat Latin on equal counts
var scripts = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Hangul", unicode.Hangul},
	{"Hiragana", unicode.Hiragana},
	{"Katakana", unicode.Katakana},
	{"Han", unicode.Han},
	{"Arabic", unicode.Arabic},
	{"Hebrew", unicode.Hebrew},
	{"Thai", unicode.Thai},
	{"Greek", unicode.Greek},
	{"Cyrillic", unicode.Cyrillic},
	{"Devanagari", unicode.Devanagari},
	{"Latin", unicode.Latin},
}

// Digits is returned for letterless input that contains at least one decimal digit
const Digits = "Digits"

// Script returns the predominant script of the letters in s.
// Digit-only content like card numbers reports Digits, anything else without letters reports ""
func Script(s string) string {
	counts := make([]int, len(scripts))
	letters, digits := 0, 0

	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
			continue
		}
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}

	if letters == 0 {
		if digits > 0 {
			return Digits
		}
		return ""
	}

	best := -1
	for i, c := range counts {
		if c > 0 && (best < 0 || c > counts[best]) {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return scripts[best].name
}

// Lang maps a script to a BCP-47 language only where the mapping is unambiguous
func Lang(script string) string {
	switch script {
	case "Hangul":
		return "ko"
	case "Hiragana", "Katakana":
		return "ja"
	case "Thai":
		return "th"
	case "Greek":
		return "el"
	case "Hebrew":
		return "he"
	default:
		return ""
	}
}
