// Package asyncreader implements the demand-driven byte accumulator the
// HTTP parser pulls from. A caller feeds bytes as they arrive from the
// transport; the reader only ever holds one outstanding pull request at
// a time (a fixed byte count, or a delimiter) and invokes the
// registered continuation synchronously as soon as that pull can be
// satisfied from whatever has been buffered so far.
package asyncreader

import (
	"bytes"

	"github.com/sigilhq/laju/internal/bytebuf"
)

// Continuation receives the bytes that satisfied the most recent pull.
// The slice aliases the reader's internal buffer and is only valid for
// the duration of the call.
type Continuation func(view []byte)

type pullKind int

const (
	pullNone pullKind = iota
	pullBytes
	pullDelimiter
)

// Reader accumulates fed bytes and serves them out against at most one
// outstanding pull request at a time. Scheduling a new pull from inside
// a continuation replaces whatever pull was active, which is how the
// HTTP parser chains header/body-chunk/footer boundaries together.
type Reader struct {
	buf         *bytebuf.Buffer
	readCursor  int
	kind        pullKind
	need        int
	delim       []byte
	cont        Continuation
	currentView []byte
	arg         interface{}
	draining    bool
}

// New returns a Reader whose accumulation buffer starts with at least
// initialCap bytes of backing capacity.
func New(initialCap int) *Reader {
	return &Reader{buf: bytebuf.New(initialCap)}
}

// SetArg attaches caller-defined state to the reader, mirroring the
// parser's own SetArg/Arg pair.
func (r *Reader) SetArg(v interface{}) { r.arg = v }

// Arg returns whatever was last passed to SetArg.
func (r *Reader) Arg() interface{} { return r.arg }

// Data returns the view delivered to the continuation currently
// executing, or nil outside of one.
func (r *Reader) Data() []byte { return r.currentView }

// DataLength is len(Data()).
func (r *Reader) DataLength() int { return len(r.currentView) }

// AdvanceBytes registers a pull for exactly n more bytes. If n bytes are
// already buffered, cont is invoked synchronously before this call
// returns and the return value is true; otherwise the pull is left
// outstanding until enough bytes are Fed and the return value is false.
// Called from inside a continuation, it only registers the pull and
// returns false; the running drain loop satisfies it after that
// continuation returns.
func (r *Reader) AdvanceBytes(n int, cont Continuation) bool {
	r.kind = pullBytes
	r.need = n
	r.delim = nil
	r.cont = cont
	return r.pump()
}

// AdvanceToString registers a pull for the next occurrence of delim.
// Same synchronous-invocation semantics as AdvanceBytes. Re-scanning the
// full unread region on every Feed naturally handles a delimiter split
// across two separate Feed calls, with no special partial-match state
// to track.
func (r *Reader) AdvanceToString(delim []byte, cont Continuation) bool {
	r.kind = pullDelimiter
	r.delim = delim
	r.cont = cont
	return r.pump()
}

// Feed appends newly arrived bytes and, if a pull is outstanding,
// attempts to satisfy it (and any pulls chained from its continuation)
// against the now-larger buffer.
func (r *Reader) Feed(data []byte) {
	r.compactIfNeeded()
	r.buf.Append(data)
	r.pump()
}

// Clear discards all buffered bytes and any outstanding pull, readying
// the reader for reuse by a fresh request.
func (r *Reader) Clear() {
	r.buf.Reset()
	r.readCursor = 0
	r.kind = pullNone
	r.need = 0
	r.delim = nil
	r.cont = nil
	r.currentView = nil
}

// Destroy releases the reader's backing buffer for good.
func (r *Reader) Destroy() {
	if r.buf == nil {
		return
	}
	r.buf.Destroy()
	r.buf = nil
}

// pump drains as many chained pulls as the currently buffered bytes
// allow. It is re-entrant-safe: a continuation that schedules a new
// pull just updates the reader's fields, and the outer pump loop (the
// only one actually iterating) picks the new pull up on its next pass.
func (r *Reader) pump() bool {
	if r.draining {
		return false
	}
	r.draining = true
	defer func() { r.draining = false }()

	satisfiedOwn := false
	first := true
	for r.kind != pullNone {
		view, ok := r.trySatisfy()
		if !ok {
			break
		}
		if first {
			satisfiedOwn = true
			first = false
		}
		cont := r.cont
		r.kind = pullNone
		r.cont = nil
		r.currentView = view
		cont(view)
		r.currentView = nil
	}
	return satisfiedOwn
}

func (r *Reader) trySatisfy() ([]byte, bool) {
	data := r.buf.Data()
	unread := data[r.readCursor:]
	switch r.kind {
	case pullBytes:
		if len(unread) < r.need {
			return nil, false
		}
		view := unread[:r.need]
		r.readCursor += r.need
		return view, true
	case pullDelimiter:
		idx := bytes.Index(unread, r.delim)
		if idx == -1 {
			return nil, false
		}
		end := idx + len(r.delim)
		view := unread[:end]
		r.readCursor += end
		return view, true
	default:
		return nil, false
	}
}

// compactIfNeeded shifts the unread tail to the front of the buffer once
// the read cursor has consumed more than half of it. Only called at the
// top of Feed, between pulls, so it never invalidates a view currently
// live inside a continuation.
func (r *Reader) compactIfNeeded() {
	if r.readCursor == 0 {
		return
	}
	if r.readCursor*2 > cap(r.buf.Data()) {
		r.buf.Discard(r.readCursor)
		r.readCursor = 0
	}
}
