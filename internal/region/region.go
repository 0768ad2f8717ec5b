// Package region implements the bump (arena) allocator the HTTP parser
// uses to own copies of method/URI/header bytes for the lifetime of a
// single request. It is a bump allocator that keeps over-sized blocks on
// a separate list: allocations that fit the configured chunk size are
// carved out of a shared, pooled chunk; anything larger gets its own
// slice, tracked separately and dropped on Clear.
package region

import "github.com/sigilhq/laju/internal/pool"

// DefaultChunkSize is used when a Region is constructed with a
// non-positive chunk size, and is also the only chunk size the shared
// pool below serves.
const DefaultChunkSize = 1024

// chunkPool pools the fixed-size backing chunks for regions configured
// with the default chunk size, the same way the teacher's internal/pool
// pools response buffers.
var chunkPool = pool.NewBuffer(DefaultChunkSize, func(size int) []byte {
	return make([]byte, 0, size)
})

// Region is a bump allocator: Calloc carves zeroed memory out of the
// current chunk, falling back to a fresh chunk (or, for oversized
// requests, a dedicated slice) when the current chunk is exhausted.
// Nothing allocated from a Region may be referenced after Clear or
// Destroy.
type Region struct {
	chunkSize int
	cur       []byte
	chunks    [][]byte
	oversized [][]byte
}

// New returns a Region that carves allocations out of chunkSize-sized
// backing chunks. A non-positive chunkSize uses DefaultChunkSize.
func New(chunkSize int) *Region {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Region{chunkSize: chunkSize}
}

func (r *Region) newChunk() []byte {
	if r.chunkSize == DefaultChunkSize {
		return chunkPool.Get()
	}
	return make([]byte, 0, r.chunkSize)
}

// Calloc returns size zeroed bytes owned by the region. The returned
// slice is valid until the next Clear or Destroy.
func (r *Region) Calloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	if size > r.chunkSize {
		b := make([]byte, size)
		r.oversized = append(r.oversized, b)
		return b
	}
	if r.cur == nil || cap(r.cur)-len(r.cur) < size {
		if r.cur != nil {
			r.chunks = append(r.chunks, r.cur)
		}
		r.cur = r.newChunk()
	}
	start := len(r.cur)
	r.cur = r.cur[:start+size]
	b := r.cur[start : start+size]
	for i := range b {
		b[i] = 0
	}
	return b
}

// Strndup copies p into a region-owned slice, the arena equivalent of
// strndup for the raw byte views the parser hands out.
func (r *Region) Strndup(p []byte) []byte {
	b := r.Calloc(len(p))
	copy(b, p)
	return b
}

// Clear releases every allocation made since the region was created or
// last cleared, returning default-sized chunks to the shared pool so a
// parser reused from the free list starts cold again.
func (r *Region) Clear() {
	if r.cur != nil {
		r.chunks = append(r.chunks, r.cur)
		r.cur = nil
	}
	if r.chunkSize == DefaultChunkSize {
		for _, c := range r.chunks {
			chunkPool.Put(c[:0])
		}
	}
	r.chunks = r.chunks[:0]
	r.oversized = r.oversized[:0]
}

// Destroy releases the region for good. For this allocator Destroy and
// Clear do the same work; Destroy exists so callers don't need to care
// which one a region needs at shutdown.
func (r *Region) Destroy() {
	r.Clear()
}
