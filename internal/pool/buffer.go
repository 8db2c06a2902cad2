// Package pool provides a reusable, growable byte buffer pooled with
// sync.Pool. Every encoder in store, packed, and storedfields grows one of
// these instead of allocating a fresh []byte per document or value.
package pool

import "sync"

// Default and ceiling sizes for pooled buffers. Buffers larger than
// maxThreshold are discarded instead of being returned to the pool, so a
// single oversized segment write doesn't pin a huge buffer in the pool
// forever.
const (
	DefaultBufferSize  = 1024 * 16  // 16KiB
	MaxBufferThreshold = 1024 * 128 // 128KiB
)

// Buffer is a growable []byte with amortized geometric growth, intended to
// be reused across many encode operations via a Pool.
type Buffer struct {
	B []byte
}

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer(initialCap int) *Buffer {
	return &Buffer{B: make([]byte, 0, initialCap)}
}

// Bytes returns the buffer's current contents. The returned slice is valid
// until the next mutating call.
func (b *Buffer) Bytes() []byte { return b.B }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.B) }

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int { return cap(b.B) }

// Reset empties the buffer while retaining its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Slice returns b.B[start:end]. It panics if the range falls outside the
// buffer's capacity.
func (b *Buffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(b.B) {
		panic("pool: Slice: invalid range")
	}

	return b.B[start:end]
}

// SetLength sets the visible length of the buffer to n, which must not
// exceed the current capacity.
func (b *Buffer) SetLength(n int) {
	if n < 0 || n > cap(b.B) {
		panic("pool: SetLength: invalid length")
	}
	b.B = b.B[:n]
}

// Extend grows the visible length by n bytes if capacity already allows it,
// reporting whether it did so.
func (b *Buffer) Extend(n int) bool {
	cur := len(b.B)
	if cap(b.B)-cur < n {
		return false
	}
	b.B = b.B[:cur+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, reallocating first if needed.
func (b *Buffer) ExtendOrGrow(n int) {
	if b.Extend(n) {
		return
	}
	start := len(b.B)
	b.Grow(n)
	b.B = b.B[:start+n]
}

// Grow ensures the buffer can accept at least extra more bytes without a
// further reallocation. Small buffers grow by a fixed chunk; large buffers
// grow by a quarter of their current capacity, the same amortized strategy
// the teacher format library uses for its per-metric encoders.
func (b *Buffer) Grow(extra int) {
	available := cap(b.B) - len(b.B)
	if available >= extra {
		return
	}

	growBy := DefaultBufferSize
	if cap(b.B) > 4*DefaultBufferSize {
		growBy = cap(b.B) / 4
	}
	if growBy < extra {
		growBy = extra
	}

	next := make([]byte, len(b.B), len(b.B)+growBy)
	copy(next, b.B)
	b.B = next
}

// Write implements io.Writer, appending data and growing as needed.
func (b *Buffer) Write(data []byte) (int, error) {
	b.B = append(b.B, data...)
	return len(data), nil
}

// Pool manages a sync.Pool of Buffers of a given default size.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose Buffers start at defaultSize and are
// discarded rather than retained once they grow past maxThreshold.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return NewBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a Buffer from the pool, allocating one if the pool is empty.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	return buf
}

// Put returns buf to the pool for reuse, unless it has grown past the
// pool's maxThreshold.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var defaultPool = NewPool(DefaultBufferSize, MaxBufferThreshold)

// Get retrieves a Buffer from the package-level default pool.
func Get() *Buffer { return defaultPool.Get() }

// Put returns buf to the package-level default pool.
func Put(buf *Buffer) { defaultPool.Put(buf) }
