// Package pool recycles the scratch buffers the codec paths churn through:
// one tier for the gzip'd JSON index, one for Parquet row-group staging,
// and one for PNG/JPEG encoding. The tiers are separate because the three
// payloads differ by orders of magnitude; a single shared pool would either
// discard every image buffer or pin image-sized allocations under tiny
// index reads.
package pool

import "sync"

const (
	// IndexBufferDefaultSize is the chunk size the index inflate loop reads
	// in; a typical index.json.gz inflates within a few chunks.
	IndexBufferDefaultSize = 16 << 10

	// indexBufferRetainMax tracks the default 1 MiB inflated-index limit: a
	// buffer that grew past it came from an unusually large (or
	// limit-overridden) index and is not worth pinning.
	indexBufferRetainMax = 1 << 20

	// arrayBufferDefaultSize holds one Parquet row group of the widest
	// catalog row: 8192 rows of free-form sub-blocks at 60 bytes each is
	// 480KiB before column compression.
	arrayBufferDefaultSize = 768 << 10
	arrayBufferRetainMax   = 4 << 20

	// Encoded textures routinely dwarf both of the above, so the image tier
	// starts larger and tolerates much larger retained buffers.
	imageBufferDefaultSize = 2 << 20
	imageBufferRetainMax   = 64 << 20
)

// ByteBuffer is a growable byte slice serving two roles: the io.Writer the
// Parquet/gzip/image encoders stream into, and the raw scratch buffer the
// index inflate loop fills in place via Grow/SetLength.
type ByteBuffer struct {
	data []byte
}

func newByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{data: make([]byte, 0, capacity)}
}

// Bytes returns the filled portion of the buffer.
func (b *ByteBuffer) Bytes() []byte {
	return b.data
}

// Len returns the number of filled bytes.
func (b *ByteBuffer) Len() int {
	return len(b.data)
}

// Reset empties the buffer, keeping its capacity for reuse.
func (b *ByteBuffer) Reset() {
	b.data = b.data[:0]
}

// Write appends p, growing as needed. It never fails; the error return
// satisfies io.Writer.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)

	return len(p), nil
}

// Grow ensures capacity for at least n more bytes beyond the current
// length, doubling on reallocation so a streaming fill stays amortized O(1)
// per byte.
func (b *ByteBuffer) Grow(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}

	target := len(b.data) + n
	next := 2 * cap(b.data)
	if next < target {
		next = target
	}

	grown := make([]byte, len(b.data), next)
	copy(grown, b.data)
	b.data = grown
}

// SetLength resizes the filled portion within the current capacity. The
// index inflate loop uses this to expose spare capacity to io.Reader.Read,
// then trims back to the bytes actually read. Panics outside [0, cap].
func (b *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(b.data) {
		panic("pool: SetLength out of range")
	}

	b.data = b.data[:n]
}

// tier is one sync.Pool of ByteBuffers with a retention cap: buffers whose
// capacity outgrew the cap are dropped on put instead of retained, bounding
// the steady-state memory the pools can pin.
type tier struct {
	pool      sync.Pool
	retainMax int
}

func newTier(capacity, retainMax int) *tier {
	return &tier{
		pool:      sync.Pool{New: func() any { return newByteBuffer(capacity) }},
		retainMax: retainMax,
	}
}

func (t *tier) get() *ByteBuffer {
	b, _ := t.pool.Get().(*ByteBuffer)

	return b
}

func (t *tier) put(b *ByteBuffer) {
	if b == nil || cap(b.data) > t.retainMax {
		return
	}

	b.Reset()
	t.pool.Put(b)
}

var (
	indexTier = newTier(IndexBufferDefaultSize, indexBufferRetainMax)
	arrayTier = newTier(arrayBufferDefaultSize, arrayBufferRetainMax)
	imageTier = newTier(imageBufferDefaultSize, imageBufferRetainMax)
)

// GetIndexBuffer retrieves a buffer for decoding or encoding index.json.gz.
func GetIndexBuffer() *ByteBuffer {
	return indexTier.get()
}

// PutIndexBuffer returns a buffer to the index tier.
func PutIndexBuffer(b *ByteBuffer) {
	indexTier.put(b)
}

// GetArrayBuffer retrieves a buffer for staging one Parquet array member.
func GetArrayBuffer() *ByteBuffer {
	return arrayTier.get()
}

// PutArrayBuffer returns a buffer to the array tier.
func PutArrayBuffer(b *ByteBuffer) {
	arrayTier.put(b)
}

// GetImageBuffer retrieves a buffer for encoding one PNG or JPEG member.
func GetImageBuffer() *ByteBuffer {
	return imageTier.get()
}

// PutImageBuffer returns a buffer to the image tier.
func PutImageBuffer(b *ByteBuffer) {
	imageTier.put(b)
}
