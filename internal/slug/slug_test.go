package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Fire Safety", "fire-safety"},
		{"punctuation collapses", "Fire Safety!", "fire-safety"},
		{"mixed separators", "Smoke  Detector -- A", "smoke-detector-a"},
		{"uppercase", "ICT/Telecommunication", "ict-telecommunication"},
		{"leading trailing", "  --Solar Panels--  ", "solar-panels"},
		{"digits kept", "Detector 2000", "detector-2000"},
		{"all punctuation", "!!! ??? ...", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestResolve_NoCollision(t *testing.T) {
	got, err := Resolve("Fire Safety", func(string) (bool, error) { return false, nil })
	assert.NoError(t, err)
	assert.Equal(t, "fire-safety", got)
}

func TestResolve_CollisionWalk(t *testing.T) {
	existing := map[string]bool{
		"fire-safety":   true,
		"fire-safety-1": true,
		"fire-safety-2": true,
	}
	got, err := Resolve("Fire Safety!", func(s string) (bool, error) { return existing[s], nil })
	assert.NoError(t, err)
	assert.Equal(t, "fire-safety-3", got)
}

func TestResolve_CreationOrderSuffixes(t *testing.T) {
	existing := map[string]bool{}
	taken := func(s string) (bool, error) { return existing[s], nil }

	var got []string
	for i := 0; i < 3; i++ {
		s, err := Resolve("Smoke Detector", taken)
		assert.NoError(t, err)
		existing[s] = true
		got = append(got, s)
	}
	assert.Equal(t, []string{"smoke-detector", "smoke-detector-1", "smoke-detector-2"}, got)
}

func TestResolve_EmptyNameFallback(t *testing.T) {
	for _, name := range []string{"", "   ", "!!!", "?!.,;:", "---"} {
		got, err := Resolve(name, func(string) (bool, error) { return false, nil })
		assert.NoError(t, err)
		assert.Equal(t, FallbackBase, got)
		assert.True(t, Valid(got))
	}
}

func TestResolve_EmptyNameFallbackCollides(t *testing.T) {
	existing := map[string]bool{"item": true}
	got, err := Resolve("???", func(s string) (bool, error) { return existing[s], nil })
	assert.NoError(t, err)
	assert.Equal(t, "item-1", got)
}

func TestResolve_LookupError(t *testing.T) {
	lookupErr := errors.New("db closed")
	_, err := Resolve("Fire Safety", func(string) (bool, error) { return false, lookupErr })
	assert.ErrorIs(t, err, lookupErr)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("fire-safety"))
	assert.True(t, Valid("fire-safety-3"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("-leading"))
	assert.False(t, Valid("Has-Caps"))
	assert.False(t, Valid("double--hyphen"))
}
