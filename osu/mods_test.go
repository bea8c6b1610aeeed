package osu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModBits(t *testing.T) {
	assert.Equal(t, int64(8), Hidden.Bit())
	assert.Equal(t, int64(64), DoubleTime.Bit())
	assert.Equal(t, int64(1<<30), Mirror.Bit())
	assert.Equal(t, int64(0), NoMod.Bit())

	t.Run("bits are distinct", func(t *testing.T) {
		seen := map[int64]Mod{}
		for m := NoFail; m <= Mirror; m++ {
			prev, dup := seen[m.Bit()]
			assert.False(t, dup, "%s shares bit %d with %s", m, m.Bit(), prev)
			seen[m.Bit()] = m
		}
	})

	t.Run("acronyms are distinct and two characters", func(t *testing.T) {
		seen := map[string]bool{}
		for m := NoMod; m <= Mirror; m++ {
			assert.Len(t, m.String(), 2)
			assert.False(t, seen[m.String()], "duplicate acronym %s", m)
			seen[m.String()] = true
		}
	})
}

func TestSymbolicMods(t *testing.T) {
	for _, m := range []Mod{KeyMod, FreeModAllowed} {
		assert.True(t, m.Symbolic())
		assert.Equal(t, int64(0), m.Bit())
		assert.Equal(t, "", m.String())
	}
	assert.False(t, Hidden.Symbolic())
}

func TestModsBitsAndStrings(t *testing.T) {
	ms := Mods{Hidden, DoubleTime, KeyMod}
	assert.Equal(t, int64(72), ms.Bits())
	assert.Equal(t, []string{"HD", "DT"}, ms.Strings())
	assert.Equal(t, "HDDT", ms.String())
	assert.True(t, ms.Has(DoubleTime))
	assert.False(t, ms.Has(HardRock))
}

func TestModsFromBits(t *testing.T) {
	tests := []struct {
		name     string
		bits     int64
		expected Mods
	}{
		{"nomod", 0, Mods{NoMod}},
		{"hidden doubletime", 72, Mods{Hidden, DoubleTime}},
		{"nightcore carries doubletime", 576, Mods{DoubleTime, Nightcore}},
		{"mirror", 1 << 30, Mods{Mirror}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModsFromBits(tt.bits)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.bits, got.Bits())
		})
	}
}

func TestParseMods(t *testing.T) {
	tests := []struct {
		in       string
		expected Mods
		wantErr  bool
	}{
		{in: "HD,DT", expected: Mods{Hidden, DoubleTime}},
		{in: "+hddt", expected: Mods{Hidden, DoubleTime}},
		{in: "HD HR FL", expected: Mods{Hidden, HardRock, Flashlight}},
		{in: "4K", expected: Mods{Key4}},
		{in: "", expected: nil},
		{in: "HDD", wantErr: true},
		{in: "XX", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMods(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
