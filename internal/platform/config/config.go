// Package config reads service settings from environment variables, optionally
// seeded from dotenv files
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"snipjar/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a namespaced view over environment variables ("CORE_API_", "SERVICE_PGSQL_")
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view, prefixes nest
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// LoadDotenv merges the given files into the environment without overriding
// variables that are already set. Missing files are skipped
func LoadDotenv(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

func (c Conf) fail(k, value, msg string) {
	ev := logger.Get().Panic().Str("key", c.key(k))
	if value != "" {
		ev = ev.Str("value", value)
	}
	ev.Msg(msg)
}

// MustString panics when key is missing or blank
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		c.fail(key, "", "missing required env")
	}
	return v
}

// MustInt panics when key is missing or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		c.fail(key, s, "invalid int value")
	}
	return v
}

// MustPort returns a listen addr like ":4000" after checking 1..65535
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	if !validPort(s) {
		c.fail(key, s, "invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// MayPort is MustPort with a default port number
func (c Conf) MayPort(key, def string) string {
	s := c.MayString(key, def)
	if !validPort(s) {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Str("default", def).Msg("invalid port; using default")
		s = def
	}
	return ":" + s
}

func validPort(s string) bool {
	p, err := strconv.Atoi(s)
	return err == nil && p >= 1 && p <= 65535
}

// MayString returns the value or def when blank
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def; invalid values are logged and replaced by def
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayBool returns the value or def; invalid values are logged and replaced by def
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def; invalid values are logged and replaced by def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV splits a comma separated value, dropping blanks
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed, def when blank, and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
