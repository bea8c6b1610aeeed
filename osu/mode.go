package osu

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode represents an osu! game mode
type Mode int8

const (
	// ModeOsu is osu!standard
	ModeOsu Mode = iota
	// ModeTaiko is osu!taiko
	ModeTaiko
	// ModeFruits is osu!catch
	ModeFruits
	// ModeMania is osu!mania
	ModeMania
)

// Modes lists every game mode in code order.
var Modes = []Mode{ModeOsu, ModeTaiko, ModeFruits, ModeMania}

// Code returns the numeric code used by the legacy API.
func (m Mode) Code() int8 {
	return int8(m)
}

// String returns the canonical lowercase name used by the modern API.
func (m Mode) String() string {
	switch m {
	case ModeOsu:
		return "osu"
	case ModeTaiko:
		return "taiko"
	case ModeFruits:
		return "fruits"
	case ModeMania:
		return "mania"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the four known modes.
func (m Mode) Valid() bool {
	return m >= ModeOsu && m <= ModeMania
}

// ParseMode accepts either the canonical name or the numeric code.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		if s == m.String() {
			return m, nil
		}
	}
	if code, err := strconv.ParseInt(s, 10, 8); err == nil {
		if m := Mode(code); m.Valid() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown game mode: %q", s)
}

// ModeFormat selects which representation of a Mode a query carries.
type ModeFormat int

const (
	// ModeName encodes the lowercase name, e.g. "mania".
	ModeName ModeFormat = iota
	// ModeCode encodes the numeric code, e.g. "3".
	ModeCode
)
