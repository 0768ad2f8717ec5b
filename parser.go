package laju

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sigilhq/laju/internal/asyncreader"
	"github.com/sigilhq/laju/internal/bytebuf"
	"github.com/sigilhq/laju/internal/cgiform"
	"github.com/sigilhq/laju/internal/region"
	"github.com/sigilhq/laju/internal/scalarconv"
)

// Parser is a single-threaded HTTP/1.x request parser. Exactly one
// caller owns a Parser at a time (acquired from a HttpParserGroup); it
// has no internal locking of its own. Feeding it bytes via Parse drives
// a demand-driven state machine that fires the group's registered
// callbacks as the request line, headers, and body become available.
type Parser struct {
	group  *ParserGroup
	region *region.Region
	reader *asyncreader.Reader

	state state
	done  bool
	err   error

	method   []byte
	uri      []byte
	protocol []byte
	headers  [][]byte

	contentLength int64
	chunked       bool

	pendingChunkSize int
	chunkBuf         *bytebuf.Buffer

	bodyView []byte

	queryDecoder *cgiform.Decoder
	bodyDecoder  *cgiform.Decoder

	id uuid.UUID

	arg interface{}

	pooled bool
	next   *Parser
}

// Method returns the request's method token (e.g. "GET").
func (p *Parser) Method() string { return b2s(p.method) }

// URI returns the request's URI token, as written on the wire.
func (p *Parser) URI() string { return b2s(p.uri) }

// Protocol returns the request's protocol token (e.g. "HTTP/1.1").
func (p *Parser) Protocol() string { return b2s(p.protocol) }

// Headers returns the raw "Name: Value" header lines, in wire order.
// The returned slice and its elements are owned by the parser's region
// and are only valid until Release.
func (p *Parser) Headers() [][]byte { return p.headers }

// RequestID returns the correlation id assigned to this parser when it
// was last acquired.
func (p *Parser) RequestID() uuid.UUID { return p.id }

// Err returns the error that moved this parser to its terminal state,
// or nil if it finished successfully or hasn't finished yet.
func (p *Parser) Err() error { return p.err }

// SetArg attaches caller-defined state to the parser.
func (p *Parser) SetArg(v interface{}) { p.arg = v }

// Arg returns whatever was last passed to SetArg.
func (p *Parser) Arg() interface{} { return p.arg }

// Param looks up a single value at loc: a header (case-insensitive name
// match), a URI query key, or a x-www-form-urlencoded body key. Returns
// def if loc doesn't apply to this request (e.g. LocationBody on a
// non-form body) or the key is absent or empty.
func (p *Parser) Param(loc Location, key, def string) string {
	switch loc {
	case LocationHeader:
		if v, ok := p.headerValue(key); ok && v != "" {
			return v
		}
		return def
	case LocationQuery:
		return p.queryDecoderFor().Str(key, def)
	case LocationBody:
		dec := p.bodyDecoderFor()
		if dec == nil {
			return def
		}
		return dec.Str(key, def)
	default:
		return def
	}
}

// Params returns every value for key at loc (only meaningful for
// LocationQuery and LocationBody; headers only ever carry one value per
// the raw-line model this parser uses).
func (p *Parser) Params(loc Location, key string) []string {
	switch loc {
	case LocationQuery:
		return p.queryDecoderFor().Strs(key)
	case LocationBody:
		dec := p.bodyDecoderFor()
		if dec == nil {
			return nil
		}
		return dec.Strs(key)
	default:
		return nil
	}
}

func (p *Parser) queryDecoderFor() *cgiform.Decoder {
	if p.queryDecoder == nil {
		p.queryDecoder = cgiform.New(queryString(p.uri))
	}
	return p.queryDecoder
}

func (p *Parser) bodyDecoderFor() *cgiform.Decoder {
	ct, _ := p.headerValue("Content-Type")
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), "application/x-www-form-urlencoded") {
		return nil
	}
	if p.bodyDecoder == nil {
		p.bodyDecoder = cgiform.New(b2s(p.bodyView))
	}
	return p.bodyDecoder
}

func queryString(uri []byte) string {
	idx := bytes.IndexByte(uri, '?')
	if idx == -1 {
		return ""
	}
	return b2s(uri[idx+1:])
}

// headerValue performs a case-insensitive prefix match of name against
// each raw header line; after matching the key, it skips spaces,
// requires a colon, skips spaces, and returns the remainder.
func (p *Parser) headerValue(name string) (string, bool) {
	for _, line := range p.headers {
		if len(line) < len(name) {
			continue
		}
		if !strings.EqualFold(b2s(line[:len(name)]), name) {
			continue
		}
		rest := line[len(name):]
		i := 0
		for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
			i++
		}
		if i >= len(rest) || rest[i] != ':' {
			continue
		}
		i++
		for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
			i++
		}
		return b2s(rest[i:]), true
	}
	return "", false
}

// Parse feeds newly arrived bytes into the parser. Feeding bytes into a
// parser already in its terminal state re-fires on_parsing_error with
// ErrParserClosed rather than touching any parsed state.
func (p *Parser) Parse(data []byte) error {
	if p.done {
		err := errors.Wrapf(ErrParserClosed, "parser %s: Parse called after terminal state %s", p.id, p.state)
		p.err = err
		if p.group.metrics != nil {
			p.group.metrics.RequestsErrored.Inc()
		}
		Logger().Error().Err(err).Msgf("laju: parser %s fed after completion", p.id)
		p.group.onParsingError(p)
		return err
	}
	p.reader.Feed(data)
	if p.done && p.err != nil {
		return p.err
	}
	return nil
}

// reinit resets the parser for a fresh request and arms the first pull.
func (p *Parser) reinit() {
	p.region.Clear()
	p.reader.Clear()

	p.state = stateReadingHeaders
	p.done = false
	p.err = nil
	p.method = nil
	p.uri = nil
	p.protocol = nil
	p.headers = p.headers[:0]
	p.contentLength = 0
	p.chunked = false
	p.pendingChunkSize = 0
	p.bodyView = nil
	p.queryDecoder = nil
	p.bodyDecoder = nil
	p.id = uuid.New()
	p.arg = nil

	p.reader.AdvanceToString(headerTerminator, p.onHeadersBoundary)
}

func (p *Parser) fail(err error) {
	if p.done {
		return
	}
	p.done = true
	p.state = stateComplete
	p.err = err
	if p.group.metrics != nil {
		p.group.metrics.RequestsErrored.Inc()
	}
	Logger().Error().Err(err).Msgf("laju: parser %s failed", p.id)
	p.group.onParsingError(p)
}

func (p *Parser) finish(body []byte) {
	if p.done {
		return
	}
	p.done = true
	p.state = stateComplete
	p.bodyView = body
	if p.group.metrics != nil {
		p.group.metrics.RequestsOK.Inc()
	}
	p.group.onRequestEnd(p, body)
}

// onHeadersBoundary is the continuation for the initial "\r\n\r\n" pull:
// view is the full request-line-plus-header block, including the
// terminating blank line.
func (p *Parser) onHeadersBoundary(view []byte) {
	idx := bytes.Index(view, lineTerminator)
	if idx == -1 {
		p.fail(errors.Wrap(ErrMalformedRequest, "header block has no request-line terminator"))
		return
	}
	requestLine := view[:idx]
	headerBlock := view[idx+len(lineTerminator):]

	method, uri, protocol, ok := parseRequestLine(requestLine)
	if !ok {
		p.fail(errors.Wrap(ErrMalformedRequest, "request line is missing a method, uri, or protocol token"))
		return
	}
	p.method = p.region.Strndup(method)
	p.uri = p.region.Strndup(uri)
	p.protocol = p.region.Strndup(protocol)

	for _, line := range bytes.Split(headerBlock, lineTerminator) {
		if len(line) == 0 {
			break
		}
		p.headers = append(p.headers, p.region.Strndup(line))
	}

	p.group.onHeaders(p)
	if p.done {
		return
	}
	p.afterHeaders()
}

// afterHeaders picks the body strategy: a Content-Length-delimited
// read, a chunked read, or no body at all.
func (p *Parser) afterHeaders() {
	if cl, ok := p.headerValue("Content-Length"); ok {
		n := scalarconv.ToUint64(cl, 0)
		if n > 0 {
			p.contentLength = int64(n)
			p.state = stateReadingWholeBody
			p.reader.AdvanceBytes(int(n), p.onWholeBody)
			return
		}
	}
	if te, ok := p.headerValue("Transfer-Encoding"); ok && strings.EqualFold(strings.TrimSpace(te), "chunked") {
		p.chunked = true
		p.state = stateReadingChunkSize
		p.reader.AdvanceToString(lineTerminator, p.onChunkSizeLine)
		return
	}
	p.finish(nil)
}

func (p *Parser) onWholeBody(view []byte) {
	p.finish(view)
}

// onChunkSizeLine is the continuation for a chunk-size line, including
// its trailing CRLF. Chunk extensions after ';' are discarded
// unconditionally; the size is parsed in hex, stopping at the first
// non-hex-digit byte.
func (p *Parser) onChunkSizeLine(view []byte) {
	size, ok := parseChunkSizeHex(view)
	if !ok {
		p.fail(errors.Wrap(ErrMalformedChunkSize, "chunk-size line has no valid leading hex number"))
		return
	}
	if size == 0 {
		p.state = stateReadingFooters
		p.reader.AdvanceToString(lineTerminator, p.onFooterLine)
		return
	}
	p.pendingChunkSize = int(size)
	p.state = stateReadingChunkData
	p.reader.AdvanceBytes(int(size)+len(lineTerminator), p.onChunkData)
}

// onChunkData is the continuation for one chunk's payload plus its
// trailing CRLF; view is exactly pendingChunkSize+2 bytes.
func (p *Parser) onChunkData(view []byte) {
	data := view[:p.pendingChunkSize]
	if p.group.onBodyChunk != nil {
		p.group.onBodyChunk(p, data)
	} else {
		if p.chunkBuf == nil {
			p.chunkBuf = bytebuf.New(p.group.cfg.ChunkBufferInitialCapacity)
		}
		p.chunkBuf.Append(data)
	}
	p.state = stateReadingChunkSize
	p.reader.AdvanceToString(lineTerminator, p.onChunkSizeLine)
}

// onFooterLine is the continuation for each trailer line (discarded
// unconditionally) up through the final blank line, which ends the
// request.
func (p *Parser) onFooterLine(view []byte) {
	if len(view) == len(lineTerminator) {
		var body []byte
		if p.group.onBodyChunk == nil && p.chunkBuf != nil {
			body = p.chunkBuf.Data()
		}
		p.finish(body)
		return
	}
	p.reader.AdvanceToString(lineTerminator, p.onFooterLine)
}

// parseRequestLine splits line into method, uri, and protocol: the
// method is the first whitespace-delimited token, the protocol is the
// last, and the uri is everything in between with surrounding
// whitespace trimmed.
func parseRequestLine(line []byte) (method, uri, protocol []byte, ok bool) {
	i := 0
	for i < len(line) && isSpaceOrTab(line[i]) {
		i++
	}
	start := i
	for i < len(line) && !isSpaceOrTab(line[i]) {
		i++
	}
	method = line[start:i]

	for i < len(line) && isSpaceOrTab(line[i]) {
		i++
	}
	uriStart := i

	j := len(line)
	for j > uriStart {
		j--
		if isSpaceOrTab(line[j]) {
			break
		}
	}
	if j <= uriStart {
		return nil, nil, nil, false
	}
	protocol = line[j+1:]

	uriEnd := j
	for uriEnd > uriStart && isSpaceOrTab(line[uriEnd-1]) {
		uriEnd--
	}
	uri = line[uriStart:uriEnd]

	ok = len(method) > 0 && len(uri) > 0 && len(protocol) > 0
	if !ok {
		return nil, nil, nil, false
	}
	return method, uri, protocol, true
}

func isSpaceOrTab(b byte) bool {
	return b == ' ' || b == '\t'
}

// parseChunkSizeHex parses the leading hex digits of line (stopping at
// the first non-hex-digit byte, which discards any ";extension" or the
// trailing CRLF along with it) as the chunk size.
func parseChunkSizeHex(line []byte) (int64, bool) {
	i := 0
	for i < len(line) && isHexDigit(line[i]) {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b2s(line[:i]), 16, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
