// Package scalarconv implements the scalar string-to-number conversion
// the HTTP parser needs for Content-Length (and any caller-facing
// numeric header/param lookups), wrapping spf13/cast so the conversion
// rules (whitespace, sign, overflow) match one well-tested
// implementation instead of a hand-rolled parse.
package scalarconv

import "github.com/spf13/cast"

// ToUint64 parses s as an unsigned 64-bit integer, returning def for any
// value that doesn't parse cleanly (including negative or non-numeric
// strings) rather than an error, matching the to_uint64(string, default)
// contract.
func ToUint64(s string, def uint64) uint64 {
	v, err := cast.ToUint64E(s)
	if err != nil {
		return def
	}
	return v
}
