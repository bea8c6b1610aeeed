package osu

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeRepresentations(t *testing.T) {
	tests := []struct {
		mode Mode
		code int8
		name string
	}{
		{ModeOsu, 0, "osu"},
		{ModeTaiko, 1, "taiko"},
		{ModeFruits, 2, "fruits"},
		{ModeMania, 3, "mania"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.mode.Code())
			assert.Equal(t, tt.name, tt.mode.String())
			assert.True(t, tt.mode.Valid())
		})
	}
}

func TestModeRoundTrip(t *testing.T) {
	seenCodes := map[int8]bool{}
	seenNames := map[string]bool{}

	for _, m := range Modes {
		byName, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, byName)

		byCode, err := ParseMode(strconv.Itoa(int(m.Code())))
		require.NoError(t, err)
		assert.Equal(t, m, byCode)

		assert.False(t, seenCodes[m.Code()], "duplicate code %d", m.Code())
		assert.False(t, seenNames[m.String()], "duplicate name %s", m.String())
		seenCodes[m.Code()] = true
		seenNames[m.String()] = true
	}
}

func TestParseModeInvalid(t *testing.T) {
	for _, in := range []string{"", "4", "-1", "ctb", "standard"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseMode(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown game mode")
		})
	}
}

func TestParseModeNormalizes(t *testing.T) {
	m, err := ParseMode("  Mania ")
	require.NoError(t, err)
	assert.Equal(t, ModeMania, m)
}

func TestModeUnknown(t *testing.T) {
	assert.Equal(t, "unknown", Mode(9).String())
	assert.False(t, Mode(9).Valid())
}
