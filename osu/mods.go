package osu

import (
	"fmt"
	"strings"
)

// Mod is a gameplay modifier.
type Mod int

const (
	NoMod Mod = iota
	NoFail
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore
	Flashlight
	Autoplay
	SpunOut
	Autopilot
	Perfect
	Key4
	Key5
	Key6
	Key7
	Key8
	FadeIn
	Random
	Cinema
	Target
	Key9
	KeyCoop
	Key1
	Key3
	Key2
	ScoreV2
	Mirror
	// KeyMod and FreeModAllowed are multiplayer groupings without a bit of
	// their own. Every encoder drops them.
	KeyMod
	FreeModAllowed
)

type modInfo struct {
	bit   int64
	short string
}

var modTable = map[Mod]modInfo{
	NoMod:       {0, "NM"},
	NoFail:      {1 << 0, "NF"},
	Easy:        {1 << 1, "EZ"},
	TouchDevice: {1 << 2, "TD"},
	Hidden:      {1 << 3, "HD"},
	HardRock:    {1 << 4, "HR"},
	SuddenDeath: {1 << 5, "SD"},
	DoubleTime:  {1 << 6, "DT"},
	Relax:       {1 << 7, "RX"},
	HalfTime:    {1 << 8, "HT"},
	Nightcore:   {1 << 9, "NC"},
	Flashlight:  {1 << 10, "FL"},
	Autoplay:    {1 << 11, "AT"},
	SpunOut:     {1 << 12, "SO"},
	Autopilot:   {1 << 13, "AP"},
	Perfect:     {1 << 14, "PF"},
	Key4:        {1 << 15, "4K"},
	Key5:        {1 << 16, "5K"},
	Key6:        {1 << 17, "6K"},
	Key7:        {1 << 18, "7K"},
	Key8:        {1 << 19, "8K"},
	FadeIn:      {1 << 20, "FI"},
	Random:      {1 << 21, "RD"},
	Cinema:      {1 << 22, "CN"},
	Target:      {1 << 23, "TP"},
	Key9:        {1 << 24, "9K"},
	KeyCoop:     {1 << 25, "CO"},
	Key1:        {1 << 26, "1K"},
	Key3:        {1 << 27, "3K"},
	Key2:        {1 << 28, "2K"},
	ScoreV2:     {1 << 29, "V2"},
	Mirror:      {1 << 30, "MR"},
}

// Bit returns the legacy bitmask value of m. Symbolic mods return 0.
func (m Mod) Bit() int64 {
	return modTable[m].bit
}

// String returns the two-letter acronym of m, or "" for symbolic mods.
func (m Mod) String() string {
	return modTable[m].short
}

// Symbolic reports whether m has no encoding at all.
func (m Mod) Symbolic() bool {
	_, ok := modTable[m]
	return !ok
}

// Mods is an ordered list of modifiers.
type Mods []Mod

// Bits returns the legacy bitmask: the sum of every member's bit.
func (ms Mods) Bits() int64 {
	var bits int64
	for _, m := range ms {
		bits |= m.Bit()
	}
	return bits
}

// Strings returns the acronyms in list order, skipping symbolic mods.
func (ms Mods) Strings() []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		if m.Symbolic() {
			continue
		}
		out = append(out, m.String())
	}
	return out
}

// String joins the acronyms, e.g. "HDDT".
func (ms Mods) String() string {
	return strings.Join(ms.Strings(), "")
}

// Has reports whether m is in the list.
func (ms Mods) Has(m Mod) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

// ModsFromBits decodes a legacy enabled_mods bitmask in bit order. A zero
// mask yields NoMod.
func ModsFromBits(bits int64) Mods {
	if bits == 0 {
		return Mods{NoMod}
	}
	var out Mods
	for m := NoFail; m <= Mirror; m++ {
		if bits&m.Bit() != 0 {
			out = append(out, m)
		}
	}
	return out
}

// ParseMod looks up a single acronym, case-insensitively.
func ParseMod(s string) (Mod, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for m, info := range modTable {
		if info.short == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mod: %q", s)
}

// ParseMods reads a list such as "HD,DT", "+HDDT" or "hd dt". Every acronym
// is two characters, so separators are optional.
func ParseMods(s string) (Mods, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '+', '|':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return nil, nil
	}
	if len(cleaned)%2 != 0 {
		return nil, fmt.Errorf("invalid mod list: %q", s)
	}

	out := make(Mods, 0, len(cleaned)/2)
	for i := 0; i < len(cleaned); i += 2 {
		m, err := ParseMod(cleaned[i : i+2])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
