package osu

import "strconv"

// Encoding selects the serialization policy of an API generation.
type Encoding int

const (
	// Legacy is the v1 policy: bitmask mods, verbatim values.
	Legacy Encoding = iota
	// Modern is the v2 policy: one segment per mod, percent-encoded.
	Modern
)

// Value is a present query parameter value. The kinds are closed:
// Int64Value, Int32Value, Int16Value, Int8Value, StringValue, ModeValue
// and ModsValue.
type Value interface {
	// render returns the textual values for key, one per segment.
	render(enc Encoding) []string
}

type (
	Int64Value  int64
	Int32Value  int32
	Int16Value  int16
	Int8Value   int8
	StringValue string
	ModsValue   Mods
)

// ModeValue carries a mode and the representation the call site wants.
type ModeValue struct {
	Mode   Mode
	Format ModeFormat
}

func (v Int64Value) render(Encoding) []string {
	return []string{strconv.FormatInt(int64(v), 10)}
}

func (v Int32Value) render(Encoding) []string {
	return []string{strconv.FormatInt(int64(v), 10)}
}

func (v Int16Value) render(Encoding) []string {
	return []string{strconv.FormatInt(int64(v), 10)}
}

func (v Int8Value) render(Encoding) []string {
	return []string{strconv.FormatInt(int64(v), 10)}
}

func (v StringValue) render(Encoding) []string {
	return []string{string(v)}
}

func (v ModeValue) render(Encoding) []string {
	if v.Format == ModeCode {
		return []string{strconv.Itoa(int(v.Mode.Code()))}
	}
	return []string{v.Mode.String()}
}

func (v ModsValue) render(enc Encoding) []string {
	names := Mods(v).Strings()
	if len(names) == 0 {
		return nil
	}
	if enc == Legacy {
		return []string{strconv.FormatInt(Mods(v).Bits(), 10)}
	}
	return names
}

// Param is a named query parameter. A nil Value means absent.
type Param struct {
	Key   string
	Value Value
}

// Present reports whether p carries a value.
func (p Param) Present() bool {
	return p.Value != nil
}

// Int64 builds an optional int64 parameter from a pointer.
func Int64(key string, v *int64) Param {
	if v == nil {
		return Param{Key: key}
	}
	return Param{Key: key, Value: Int64Value(*v)}
}

// Int32 builds an optional int32 parameter from a pointer.
func Int32(key string, v *int32) Param {
	if v == nil {
		return Param{Key: key}
	}
	return Param{Key: key, Value: Int32Value(*v)}
}

// Int16 builds an optional int16 parameter from a pointer.
func Int16(key string, v *int16) Param {
	if v == nil {
		return Param{Key: key}
	}
	return Param{Key: key, Value: Int16Value(*v)}
}

// Int8 builds an optional int8 parameter from a pointer.
func Int8(key string, v *int8) Param {
	if v == nil {
		return Param{Key: key}
	}
	return Param{Key: key, Value: Int8Value(*v)}
}

// String builds an optional string parameter from a pointer.
func String(key string, v *string) Param {
	if v == nil {
		return Param{Key: key}
	}
	return Param{Key: key, Value: StringValue(*v)}
}

// ModeParam builds an optional mode parameter in the given format.
func ModeParam(key string, m *Mode, format ModeFormat) Param {
	if m == nil {
		return Param{Key: key}
	}
	return Param{Key: key, Value: ModeValue{Mode: *m, Format: format}}
}

// ModsParam builds a mods parameter. An empty list is absent.
func ModsParam(key string, ms Mods) Param {
	if len(ms) == 0 {
		return Param{Key: key}
	}
	return Param{Key: key, Value: ModsValue(ms)}
}

// Ptr returns a pointer to v, for filling optional query fields.
func Ptr[T any](v T) *T {
	return &v
}
