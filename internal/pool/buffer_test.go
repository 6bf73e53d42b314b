package pool

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAppends(t *testing.T) {
	b := newByteBuffer(8)

	n, err := b.Write([]byte("index"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = b.Write([]byte(".json.gz"))
	require.NoError(t, err)

	assert.Equal(t, "index.json.gz", string(b.Bytes()))
	assert.Equal(t, 13, b.Len())
}

func TestByteBuffer_IsAnEncoderSink(t *testing.T) {
	// The Parquet/gzip/image encoders all write through io.Writer; make sure
	// the buffer behaves under io.Copy the way they use it.
	b := newByteBuffer(4)

	n, err := io.Copy(b, bytes.NewReader(make([]byte, 1000)))
	require.NoError(t, err)
	assert.EqualValues(t, 1000, n)
	assert.Equal(t, 1000, b.Len())
}

func TestByteBuffer_GrowPreservesData(t *testing.T) {
	b := newByteBuffer(4)
	_, err := b.Write([]byte("abcd"))
	require.NoError(t, err)

	b.Grow(1 << 16)
	assert.Equal(t, "abcd", string(b.Bytes()))
	assert.GreaterOrEqual(t, cap(b.Bytes())-b.Len(), 1<<16)
}

func TestByteBuffer_GrowWithinCapacityIsNoop(t *testing.T) {
	b := newByteBuffer(64)
	before := cap(b.Bytes())

	b.Grow(32)
	assert.Equal(t, before, cap(b.Bytes()))
}

func TestByteBuffer_InflateLoopPattern(t *testing.T) {
	// The index decoder fills the buffer the way index.Decode does: expose
	// spare capacity to Read, then trim to the bytes actually read.
	src := bytes.NewReader([]byte("the inflated index document"))
	b := newByteBuffer(8)

	for {
		b.Grow(8)
		start := b.Len()
		b.SetLength(cap(b.Bytes()))
		n, err := src.Read(b.Bytes()[start:])
		b.SetLength(start + n)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.Equal(t, "the inflated index document", string(b.Bytes()))
}

func TestByteBuffer_SetLengthBounds(t *testing.T) {
	b := newByteBuffer(8)

	b.SetLength(8)
	assert.Equal(t, 8, b.Len())
	b.SetLength(0)
	assert.Equal(t, 0, b.Len())

	assert.Panics(t, func() { b.SetLength(-1) })
	assert.Panics(t, func() { b.SetLength(cap(b.Bytes()) + 1) })
}

func TestByteBuffer_ResetKeepsCapacity(t *testing.T) {
	b := newByteBuffer(4)
	_, err := b.Write(make([]byte, 100))
	require.NoError(t, err)
	before := cap(b.Bytes())

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, before, cap(b.Bytes()))
}

func TestTier_PutResetsForReuse(t *testing.T) {
	tr := newTier(8, 1<<20)

	b := tr.get()
	_, err := b.Write([]byte("stale"))
	require.NoError(t, err)
	tr.put(b)

	got := tr.get()
	assert.Equal(t, 0, got.Len())
}

func TestTier_PutDropsOversizedBuffer(t *testing.T) {
	tr := newTier(8, 64)

	b := tr.get()
	b.Grow(1024)
	tr.put(b)

	// A dropped buffer must never come back; whatever get returns next is
	// within the retention cap.
	got := tr.get()
	assert.LessOrEqual(t, cap(got.Bytes()), 64)
}

func TestTier_PutNilIsSafe(t *testing.T) {
	tr := newTier(8, 64)
	assert.NotPanics(t, func() { tr.put(nil) })
}

func TestDefaultTiers_AreIndependent(t *testing.T) {
	idx := GetIndexBuffer()
	arr := GetArrayBuffer()
	img := GetImageBuffer()

	assert.NotSame(t, idx, arr)
	assert.NotSame(t, arr, img)

	PutIndexBuffer(idx)
	PutArrayBuffer(arr)
	PutImageBuffer(img)
}
