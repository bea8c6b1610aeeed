package osu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyQuery(t *testing.T) {
	mania := ModeMania

	tests := []struct {
		name     string
		params   []Param
		expected string
	}{
		{
			name: "absent values are skipped",
			params: []Param{
				Int8("m", nil),
				Int16("limit", Ptr[int16](5)),
			},
			expected: "&limit=5",
		},
		{
			name: "zero is a present value",
			params: []Param{
				Int64("a", Ptr[int64](0)),
			},
			expected: "&a=0",
		},
		{
			name: "empty string is a present value",
			params: []Param{
				String("h", Ptr("")),
			},
			expected: "&h=",
		},
		{
			name: "input order is kept",
			params: []Param{
				Int64("s", Ptr[int64](1730502)),
				Int64("b", Ptr[int64](3536583)),
				ModeParam("m", &mania, ModeCode),
				Int32("x", Ptr[int32](-1)),
			},
			expected: "&s=1730502&b=3536583&m=3&x=-1",
		},
		{
			name: "values are not escaped",
			params: []Param{
				String("u", Ptr("some player")),
			},
			expected: "&u=some player",
		},
		{
			name: "mods pack into one bitmask",
			params: []Param{
				ModsParam("mods", Mods{Hidden, DoubleTime}),
			},
			expected: "&mods=72",
		},
		{
			name: "nomod is bitmask zero",
			params: []Param{
				ModsParam("mods", Mods{NoMod}),
			},
			expected: "&mods=0",
		},
		{
			name: "empty and symbolic mod lists are absent",
			params: []Param{
				ModsParam("mods", nil),
				ModsParam("mods", Mods{KeyMod, FreeModAllowed}),
			},
			expected: "",
		},
		{
			name:     "nothing at all",
			params:   nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q LegacyQuery
			q.Add(tt.params...)
			assert.Equal(t, tt.expected, q.String())
		})
	}
}

func TestLegacyQueryWithUser(t *testing.T) {
	mania := ModeMania

	var q LegacyQuery
	q.Add(ModeParam("m", &mania, ModeCode)).AddUser(UserID(18267600))

	assert.Equal(t, "&m=3&u=18267600&type=id", q.String())
	assert.Equal(t, []Pair{
		{Key: "m", Value: "3"},
		{Key: "u", Value: "18267600"},
		{Key: "type", Value: "id"},
	}, q.Pairs())
}

func TestModernQuery(t *testing.T) {
	osuMode := ModeOsu
	mania := ModeMania

	tests := []struct {
		name     string
		params   []Param
		expected string
	}{
		{
			name: "one segment per mod with the same key",
			params: []Param{
				ModsParam("mods", Mods{Hidden, DoubleTime}),
			},
			expected: "mods=HD&mods=DT",
		},
		{
			name: "symbolic mods are dropped",
			params: []Param{
				ModsParam("mods", Mods{Hidden, KeyMod, HardRock}),
			},
			expected: "mods=HD&mods=HR",
		},
		{
			name: "mode as name",
			params: []Param{
				ModeParam("mode", &mania, ModeName),
			},
			expected: "mode=mania",
		},
		{
			name: "mode as code",
			params: []Param{
				ModeParam("mode", &osuMode, ModeCode),
			},
			expected: "mode=0",
		},
		{
			name: "values are percent-encoded",
			params: []Param{
				String("filename", Ptr("Artist - Title (Mapper) [Insane].osu")),
			},
			expected: "filename=Artist+-+Title+%28Mapper%29+%5BInsane%5D.osu",
		},
		{
			name: "keys are percent-encoded",
			params: []Param{
				ModsParam("mods[]", Mods{Flashlight}),
			},
			expected: "mods%5B%5D=FL",
		},
		{
			name: "insertion order is kept",
			params: []Param{
				String("type", Ptr("global")),
				Int64("id", Ptr[int64](75)),
				String("checksum", nil),
			},
			expected: "type=global&id=75",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q ModernQuery
			q.Add(tt.params...)
			assert.Equal(t, tt.expected, q.Encode())
		})
	}
}

func TestModernQueryAppendTo(t *testing.T) {
	var q ModernQuery
	assert.Equal(t, "https://osu.ppy.sh/api/v2/beatmaps/lookup", q.AppendTo("https://osu.ppy.sh/api/v2/beatmaps/lookup"))

	q.Add(Int64("id", Ptr[int64](75)))
	assert.Equal(t, "https://osu.ppy.sh/api/v2/beatmaps/lookup?id=75", q.AppendTo("https://osu.ppy.sh/api/v2/beatmaps/lookup"))
	assert.Equal(t, "https://example.com/x?a=1&id=75", q.AppendTo("https://example.com/x?a=1"))
}

func TestAssemble(t *testing.T) {
	params := []Param{
		ModsParam("mods", Mods{Hidden, DoubleTime}),
		Int8("m", nil),
	}

	assert.Equal(t, []Pair{{Key: "mods", Value: "72"}}, Assemble(Legacy, params...))
	assert.Equal(t, []Pair{{Key: "mods", Value: "HD"}, {Key: "mods", Value: "DT"}}, Assemble(Modern, params...))
}
