package laju

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHeaders(p *Parser)              {}
func noopRequestEnd(p *Parser, b []byte) {}
func noopError(p *Parser)                {}

func TestNewParserGroupRequiresCallbacks(t *testing.T) {
	_, err := NewParserGroup(DefaultConfig(), nil, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_headers")
	assert.Contains(t, err.Error(), "on_request_end")
	assert.Contains(t, err.Error(), "on_parsing_error")
}

func TestNewParserGroupAllowsNilBodyChunk(t *testing.T) {
	g, err := NewParserGroup(DefaultConfig(), noopHeaders, nil, noopRequestEnd, noopError)
	require.NoError(t, err)
	require.NotNil(t, g)
	g.Destroy()
}

func TestAcquireReusesReleasedParsers(t *testing.T) {
	g, err := NewParserGroup(DefaultConfig(), noopHeaders, nil, noopRequestEnd, noopError)
	require.NoError(t, err)
	defer g.Destroy()

	p1 := g.Acquire()
	id1 := p1.RequestID()
	g.Release(p1)

	p2 := g.Acquire()
	defer g.Release(p2)

	assert.Same(t, p1, p2, "a released pooled parser should be handed back out again")
	assert.NotEqual(t, id1, p2.RequestID(), "reinit should assign a fresh request id")
}

// Invariant: the free list never grows past MaxPoolSize, but requests
// past the cap still receive a working, if unpooled, parser.
func TestPoolCapIsEnforced(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPoolSize = 2

	g, err := NewParserGroup(cfg, noopHeaders, nil, noopRequestEnd, noopError)
	require.NoError(t, err)
	defer g.Destroy()

	p1 := g.Acquire()
	p2 := g.Acquire()
	p3 := g.Acquire() // over cap

	require.NoError(t, p3.Parse([]byte("GET / HTTP/1.1\r\n\r\n")))

	g.Release(p1)
	g.Release(p2)
	g.Release(p3)

	assert.Equal(t, 2, g.poolSize)
	assert.Equal(t, 2, g.freeLen, "only pooled parsers should land back on the free list")
}

func TestDestroyBlocksUntilAllParsersReleased(t *testing.T) {
	g, err := NewParserGroup(DefaultConfig(), noopHeaders, nil, noopRequestEnd, noopError)
	require.NoError(t, err)

	p := g.Acquire()

	done := make(chan struct{})
	go func() {
		g.Destroy()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Destroy returned before the outstanding parser was released")
	case <-time.After(50 * time.Millisecond):
	}

	g.Release(p)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Destroy did not return after the outstanding parser was released")
	}
}

func TestDestroyReturnsOnceOnlyParserIsReleased(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPoolSize = 1
	g, err := NewParserGroup(cfg, noopHeaders, nil, noopRequestEnd, noopError)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	p := g.Acquire()
	go func() {
		defer wg.Done()
		g.Release(p)
	}()
	wg.Wait()

	done := make(chan struct{})
	go func() {
		g.Destroy()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Destroy should return once the only outstanding parser is released")
	}
}

func TestRegisterMetricsNoopWhenDisabled(t *testing.T) {
	g, err := NewParserGroup(DefaultConfig(), noopHeaders, nil, noopRequestEnd, noopError)
	require.NoError(t, err)
	defer g.Destroy()

	reg := prometheus.NewRegistry()
	assert.NoError(t, g.RegisterMetrics(reg))
}

func TestRegisterMetricsWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsNamespace = "laju_group_test"
	g, err := NewParserGroup(cfg, noopHeaders, nil, noopRequestEnd, noopError)
	require.NoError(t, err)
	defer g.Destroy()

	reg := prometheus.NewRegistry()
	require.NoError(t, g.RegisterMetrics(reg))

	p := g.Acquire()
	g.Release(p)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}
