// Package osu holds the pieces shared by the legacy (v1) and modern (v2)
// osu! API clients: game modes, mods, user references, the query
// assemblers and the response decoder.
//
// # Parameters
//
// Every optional query parameter is a Param whose Value is nil when absent.
// Absent params never reach the wire; zero values do:
//
//	var q osu.LegacyQuery
//	q.Add(
//		osu.ModeParam("m", nil, osu.ModeCode), // skipped
//		osu.Int16("limit", osu.Ptr[int16](5)),
//		osu.Param{Key: "a", Value: osu.Int8Value(0)},
//	)
//	q.String() // "&limit=5&a=0"
//
// The two API generations serialize differently and the package keeps them
// apart. LegacyQuery writes "&key=value" verbatim and packs mods into one
// bitmask. ModernQuery percent-encodes and writes one segment per mod.
//
// # Errors
//
// Client calls fail in one of three ways, all detectable with errors.Is or
// Classify:
//
//   - ErrNoData: the service answered but had nothing (empty list, null error)
//   - ErrMalformedPayload: the body did not match the expected shape (*PayloadError)
//   - ErrTransport: network failure or non-2xx status (*APIError)
package osu
