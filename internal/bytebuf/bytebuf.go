// Package bytebuf provides the growable byte buffer used to accumulate
// bytes for the async byte reader and the chunk-accumulation fallback.
// It is a thin wrapper around bytebufferpool.ByteBuffer so the hot
// accumulation path benefits from the same pooled-growth discipline the
// rest of this lineage uses for response buffers.
package bytebuf

import "github.com/valyala/bytebufferpool"

// Buffer is a growable byte vector: init, append, data, length, destroy.
type Buffer struct {
	bb *bytebufferpool.ByteBuffer
}

// New returns a Buffer with at least initialCap bytes of backing capacity.
func New(initialCap int) *Buffer {
	bb := bytebufferpool.Get()
	if cap(bb.B) < initialCap {
		bytebufferpool.Put(bb)
		bb = &bytebufferpool.ByteBuffer{B: make([]byte, 0, initialCap)}
	}
	return &Buffer{bb: bb}
}

// Append appends p to the buffer, growing it as needed.
func (b *Buffer) Append(p []byte) {
	b.bb.B = append(b.bb.B, p...)
}

// Data returns the buffer's current contents. The returned slice aliases
// the buffer's backing array and is only valid until the next Append,
// Discard, or Reset.
func (b *Buffer) Data() []byte {
	return b.bb.B
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.bb.B)
}

// Reset discards all buffered bytes but keeps the backing array.
func (b *Buffer) Reset() {
	b.bb.Reset()
}

// Discard drops the first n bytes, shifting the remainder to the front.
// Used to compact the unread region once the read cursor has consumed
// more than half of the buffer's capacity.
func (b *Buffer) Discard(n int) {
	if n <= 0 {
		return
	}
	data := b.bb.B
	if n >= len(data) {
		b.bb.B = data[:0]
		return
	}
	copy(data, data[n:])
	b.bb.B = data[:len(data)-n]
}

// Destroy releases the backing array back to the shared pool.
func (b *Buffer) Destroy() {
	if b.bb == nil {
		return
	}
	bytebufferpool.Put(b.bb)
	b.bb = nil
}
