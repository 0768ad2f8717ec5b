package laju

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sigilhq/laju/internal/asyncreader"
	"github.com/sigilhq/laju/internal/groupmetrics"
	"github.com/sigilhq/laju/internal/region"
)

// ParserGroup is a pool of HttpParser instances sharing one set of
// callbacks. Its free list is capped at cfg.MaxPoolSize; requests past
// the cap still get a correctly working parser, it's simply never
// returned to the list. Destroy blocks until every parser constructed
// through the group — pooled or not — has been released back.
type ParserGroup struct {
	mu   sync.Mutex
	cond *sync.Cond

	cfg Config

	free        *Parser
	freeLen     int
	poolSize    int
	outstanding int
	destroyed   bool

	onHeaders      HeadersFunc
	onBodyChunk    BodyChunkFunc
	onRequestEnd   RequestEndFunc
	onParsingError ParsingErrorFunc

	metrics *groupmetrics.Collectors
}

// NewParserGroup validates the required callbacks (on_headers,
// on_request_end, on_parsing_error — on_body_chunk is optional) and
// returns a ready-to-use group. Every violated requirement is
// aggregated into the returned error rather than only the first.
func NewParserGroup(cfg Config, onHeaders HeadersFunc, onBodyChunk BodyChunkFunc, onRequestEnd RequestEndFunc, onParsingError ParsingErrorFunc) (*ParserGroup, error) {
	var merr *multierror.Error
	if onHeaders == nil {
		merr = multierror.Append(merr, errors.New("laju: on_headers callback is required"))
	}
	if onRequestEnd == nil {
		merr = multierror.Append(merr, errors.New("laju: on_request_end callback is required"))
	}
	if onParsingError == nil {
		merr = multierror.Append(merr, errors.New("laju: on_parsing_error callback is required"))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "laju: invalid HttpParserGroup configuration")
	}

	if cfg.MaxPoolSize <= 0 {
		cfg.MaxPoolSize = DefaultMaxPoolSize
	}
	if cfg.RegionChunkSize <= 0 {
		cfg.RegionChunkSize = DefaultRegionChunkSize
	}
	if cfg.ChunkBufferInitialCapacity <= 0 {
		cfg.ChunkBufferInitialCapacity = DefaultChunkBufferInitialCapacity
	}
	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = DefaultMetricsNamespace
	}

	g := &ParserGroup{
		cfg:            cfg,
		onHeaders:      onHeaders,
		onBodyChunk:    onBodyChunk,
		onRequestEnd:   onRequestEnd,
		onParsingError: onParsingError,
	}
	g.cond = sync.NewCond(&g.mu)
	if cfg.MetricsEnabled {
		g.metrics = groupmetrics.New(cfg.MetricsNamespace)
	}
	return g, nil
}

// RegisterMetrics registers the group's Prometheus collectors against
// reg. It is a no-op if the group was constructed with
// Config.MetricsEnabled false.
func (g *ParserGroup) RegisterMetrics(reg prometheus.Registerer) error {
	if g.metrics == nil {
		return nil
	}
	return g.metrics.Register(reg)
}

// Acquire returns a Parser armed to read a new request, reusing one
// from the free list when available, constructing a fresh one
// otherwise (counted against MaxPoolSize, or tracked as an over-cap
// parser if the pool is already full).
func (g *ParserGroup) Acquire() *Parser {
	g.mu.Lock()
	var p *Parser
	switch {
	case g.free != nil:
		p = g.free
		g.free = p.next
		p.next = nil
		g.freeLen--
	case g.poolSize < g.cfg.MaxPoolSize:
		p = g.newParser(true)
		g.poolSize++
		if g.metrics != nil {
			g.metrics.ParsersCreated.Inc()
		}
	default:
		p = g.newParser(false)
		if g.metrics != nil {
			g.metrics.ParsersCreated.Inc()
			g.metrics.ParsersOverCap.Inc()
		}
		Logger().Warn().Msgf("laju: parser group pool at cap (%d), constructing an unpooled parser", g.cfg.MaxPoolSize)
	}
	g.outstanding++
	if g.metrics != nil {
		g.metrics.PoolSize.Set(float64(g.freeLen))
	}
	g.mu.Unlock()

	p.reinit()
	return p
}

// Release returns p to the group. Pooled parsers go back on the free
// list (after their region and reader are cleared); over-cap parsers
// are torn down for good. Either way, any accumulated chunked-body
// buffer is discarded here.
func (g *ParserGroup) Release(p *Parser) {
	if p.chunkBuf != nil {
		p.chunkBuf.Destroy()
		p.chunkBuf = nil
	}
	if p.pooled {
		p.reader.Clear()
		p.region.Clear()
	}

	g.mu.Lock()
	g.outstanding--
	if p.pooled {
		p.next = g.free
		g.free = p
		g.freeLen++
	} else {
		p.reader.Destroy()
		p.region.Destroy()
	}
	if g.metrics != nil {
		g.metrics.PoolSize.Set(float64(g.freeLen))
	}
	g.cond.Broadcast()
	g.mu.Unlock()
}

// Destroy waits for every outstanding parser to be released, then tears
// down the free list. It blocks on a condition variable signalled by
// every Release, rather than sleeping and retrying.
func (g *ParserGroup) Destroy() {
	g.mu.Lock()
	for g.outstanding > 0 {
		g.cond.Wait()
	}
	for g.free != nil {
		p := g.free
		g.free = p.next
		p.reader.Destroy()
		p.region.Destroy()
	}
	g.freeLen = 0
	g.poolSize = 0
	g.destroyed = true
	g.mu.Unlock()
}

func (g *ParserGroup) newParser(pooled bool) *Parser {
	return &Parser{
		group:  g,
		region: region.New(g.cfg.RegionChunkSize),
		reader: asyncreader.New(g.cfg.ChunkBufferInitialCapacity),
		pooled: pooled,
	}
}
