// Package slug derives URL-safe unique identifiers from display names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

// FallbackBase is used when a name normalizes to nothing (all punctuation,
// all whitespace). The uniqueness counter still applies on top of it.
const FallbackBase = "item"

const maxBaseLength = 50

var nonAlphanumeric = regexp.MustCompile("[^a-z0-9]+")

// Make normalizes a display name into a slug base: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, trimmed.
// Example: "Fire Safety!" -> "fire-safety"
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxBaseLength {
		s = strings.Trim(s[:maxBaseLength], "-")
	}
	return s
}

// Taken reports whether a candidate slug is already held by another record.
// Implementations must exclude the record being saved from the check.
type Taken func(slug string) (bool, error)

// Resolve turns a display name into a unique slug. The base token is tried
// first, then base-1, base-2, ... until taken reports a free candidate. The
// walk is deterministic and terminates as long as the existing row set is
// finite. Names that normalize to an empty token fall back to FallbackBase.
func Resolve(name string, taken Taken) (string, error) {
	base := Make(name)
	if base == "" {
		base = FallbackBase
	}

	candidate := base
	for counter := 1; ; counter++ {
		inUse, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("slug lookup for %q: %w", candidate, err)
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Valid reports whether s is a well-formed slug
func Valid(s string) bool {
	if s == "" || len(s) > 100 {
		return false
	}
	matched, _ := regexp.MatchString("^[a-z0-9]+(?:-[a-z0-9]+)*$", s)
	return matched
}
