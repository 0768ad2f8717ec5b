package laju

// Location selects which part of a request a Param/Params lookup reads
// from: the header block, the URI's query string, or a
// x-www-form-urlencoded body.
type Location int

const (
	// LocationHeader looks up a header by name (case-insensitive).
	LocationHeader Location = iota
	// LocationQuery looks up a key in the URI's query string.
	LocationQuery
	// LocationBody looks up a key in a x-www-form-urlencoded body.
	LocationBody
)

// HeadersFunc is invoked once per request, as soon as the request line
// and header block have been parsed. It precedes every body-chunk and
// RequestEndFunc callback for that request; it is not invoked when the
// request line is malformed.
type HeadersFunc func(p *Parser)

// BodyChunkFunc is invoked once per chunk of a chunked-transfer body,
// between on_headers and the terminal callback, when registered. If
// nil, chunk payloads are accumulated instead and handed to
// RequestEndFunc as a single body.
type BodyChunkFunc func(p *Parser, chunk []byte)

// RequestEndFunc is invoked exactly once per request on success, after
// on_headers and any body-chunk callbacks.
type RequestEndFunc func(p *Parser, body []byte)

// ParsingErrorFunc is invoked once when a request fails to parse, and
// again on every Parse call made after the parser reached its terminal
// state. The failing parser's Err() holds the error that caused it.
type ParsingErrorFunc func(p *Parser)
