// Package laju implements a streaming HTTP/1.x request parser core: an
// AsyncByteReader-driven HttpParser state machine and a HttpParserGroup
// that pools parsers across connections. Response generation, routing,
// TLS, HTTP/2, multipart uploads, and keep-alive pipelining beyond
// release-and-reinit are out of scope.
package laju

import "go.uber.org/automaxprocs/maxprocs"

func init() {
	// Make GOMAXPROCS reflect a container's real CPU quota; the group's
	// free-list mutex and condition variable see contention that scales
	// with GOMAXPROCS under concurrent acquire/release.
	_, _ = maxprocs.Set()
}
