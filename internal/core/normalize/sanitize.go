package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what a stored correction must never carry: invalid UTF-8,
// C0 controls other than tab, CR and LF, DEL, C1 controls and the byte order mark.
// Clean input comes back as the same string
func Sanitize(s string) string {
	first := firstDropped(s)
	if first < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:first])
	for i := first; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if kept(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// firstDropped returns the byte offset of the first rune Sanitize removes, or -1
func firstDropped(s string) int {
	for i := 0; i < len(s); {
		if c := s[i]; c >= 0x20 && c < 0x7F {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if !kept(r, size) {
			return i
		}
		i += size
	}
	return -1
}

func kept(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size <= 1:
		return false
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20, r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	case r == '\uFEFF':
		return false
	}
	return true
}
