package laju

import "github.com/pkg/errors"

// Sentinel errors for the parser's two user-visible failure modes, plus
// the misuse case of feeding bytes into an already-complete parser.
// Call sites wrap these with github.com/pkg/errors so errors.Is still
// matches the sentinel while a log line keeps the offending detail.
var (
	// ErrMalformedRequest means the request line was missing a method,
	// URI, or protocol token, or the header block had no line
	// terminator.
	ErrMalformedRequest = errors.New("laju: malformed request")

	// ErrMalformedChunkSize means a chunk-size line had no leading hex
	// digit, or its leading hex digits do not fit in an int64.
	ErrMalformedChunkSize = errors.New("laju: malformed chunk size")

	// ErrParserClosed means Parse was called on a parser that already
	// reached its terminal state.
	ErrParserClosed = errors.New("laju: parser already complete")
)
