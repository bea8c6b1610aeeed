package osu

import (
	"net/url"
	"strings"
)

// Pair is one serialized key/value segment.
type Pair struct {
	Key   string
	Value string
}

// Assemble renders params in order under enc, skipping absent ones.
func Assemble(enc Encoding, params ...Param) []Pair {
	var pairs []Pair
	for _, p := range params {
		if !p.Present() {
			continue
		}
		for _, v := range p.Value.render(enc) {
			pairs = append(pairs, Pair{Key: p.Key, Value: v})
		}
	}
	return pairs
}

// LegacyQuery accumulates parameters for the v1 API. Values go on the wire
// verbatim: the legacy service parses the raw query text.
type LegacyQuery struct {
	pairs []Pair
}

// Add appends params in order.
func (q *LegacyQuery) Add(params ...Param) *LegacyQuery {
	q.pairs = append(q.pairs, Assemble(Legacy, params...)...)
	return q
}

// AddUser appends the "u" and "type" pair for ref.
func (q *LegacyQuery) AddUser(ref UserRef) *LegacyQuery {
	q.pairs = AppendUser(q.pairs, ref)
	return q
}

// Pairs returns a copy of the assembled pairs.
func (q *LegacyQuery) Pairs() []Pair {
	return append([]Pair(nil), q.pairs...)
}

// String renders every pair as "&key=value". The leading "?k=<api key>" is
// the caller's.
func (q *LegacyQuery) String() string {
	var sb strings.Builder
	for _, p := range q.pairs {
		sb.WriteByte('&')
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// ModernQuery accumulates parameters for the v2 API.
type ModernQuery struct {
	pairs []Pair
}

// Add appends params in order.
func (q *ModernQuery) Add(params ...Param) *ModernQuery {
	q.pairs = append(q.pairs, Assemble(Modern, params...)...)
	return q
}

// Pairs returns a copy of the assembled pairs.
func (q *ModernQuery) Pairs() []Pair {
	return append([]Pair(nil), q.pairs...)
}

// Encode percent-encodes every pair and joins them with "&". Unlike
// url.Values.Encode the insertion order is kept.
func (q *ModernQuery) Encode() string {
	parts := make([]string, 0, len(q.pairs))
	for _, p := range q.pairs {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// AppendTo adds the encoded query to rawURL, with "?" or "&" depending on
// whether rawURL already has a query.
func (q *ModernQuery) AppendTo(rawURL string) string {
	enc := q.Encode()
	if enc == "" {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + enc
	}
	return rawURL + "?" + enc
}
