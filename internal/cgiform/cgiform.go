// Package cgiform decodes CGI-style query and x-www-form-urlencoded
// bodies behind the str(key, default)/strs(key) contract the HTTP
// parser needs for its Param/Params operations. It wraps net/url's
// query-string parser the same way the teacher's own http_parser.go
// already leaned on net/url for URI decoding.
package cgiform

import "net/url"

// Decoder answers key lookups against a single decoded query/form string.
type Decoder struct {
	values url.Values
}

// New parses raw (a query string or a urlencoded body, without any
// leading '?') into a Decoder. Malformed pairs are skipped and the
// well-formed ones are kept, rather than returning an error, since every
// lookup already has a caller-supplied default to fall back to.
func New(raw string) *Decoder {
	values, _ := url.ParseQuery(raw)
	return &Decoder{values: values}
}

// Str returns the first value for key, or def if key is absent or empty.
func (d *Decoder) Str(key, def string) string {
	if d == nil || d.values == nil {
		return def
	}
	v, ok := d.values[key]
	if !ok || len(v) == 0 || v[0] == "" {
		return def
	}
	return v[0]
}

// Strs returns every value for key, in order of appearance.
func (d *Decoder) Strs(key string) []string {
	if d == nil || d.values == nil {
		return nil
	}
	return d.values[key]
}
