// Package strings holds small string and slice helpers used by routing and repos
package strings

import std "strings"

// IfEmpty returns def when in is empty
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes a mount path like "classify/" to "/classify".
// It panics on an empty or root-only path
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// SQLNull returns nil for blank s so optional text columns store NULL
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}
