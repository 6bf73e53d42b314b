package reader

import (
	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
)

// Streaming reads expose arrays.MappedIterator through small package-local
// interfaces (the Parquet row types backing MappedIterator are unexported in
// the arrays package, so a caller-visible signature has to name an interface
// rather than the concrete type). The returned iterator's io.ReaderAt is a
// section of the Reader's already-open archive file, so its Close need only
// release the Parquet reader, not a separate file handle.

// VertexIterator streams Vec3[T] rows one at a time.
type VertexIterator[T float32 | float64] interface {
	Next() bool
	Value() arrays.Vec3[T]
	Err() error
	Close() error
}

// NumberIterator streams nullable scalar rows one at a time.
type NumberIterator[T float32 | float64 | int64 | int32] interface {
	Next() bool
	Value() *T
	Err() error
	Close() error
}

// IndexIterator streams nullable format.Index rows one at a time.
type IndexIterator interface {
	Next() bool
	Value() *uint32
	Err() error
	Close() error
}

// SegmentIterator streams format.Segment rows one at a time.
type SegmentIterator interface {
	Next() bool
	Value() [2]uint32
	Err() error
	Close() error
}

// TriangleIterator streams format.Triangle rows one at a time.
type TriangleIterator interface {
	Next() bool
	Value() [3]uint32
	Err() error
	Close() error
}

// TextIterator streams nullable format.Text rows one at a time.
type TextIterator interface {
	Next() bool
	Value() *string
	Err() error
	Close() error
}

// StreamVertices opens a streaming iterator over a format.Vertex32/64 array,
// T selecting which precision is expected on disk.
func StreamVertices[T float32 | float64](r *Reader, ref index.ArrayRef) (VertexIterator[T], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	want := vertexWant[T]()
	if t != want {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.OpenVertexIterator[T](ra, n, nil), nil
}

func vertexWant[T float32 | float64]() format.ArrayType {
	var zero T
	if any(zero) == any(float32(0)) {
		return format.Vertex32
	}

	return format.Vertex64
}

// StreamNumbers opens a streaming iterator over a nullable number array,
// want identifying which of the five NumberXxx array types is expected.
func StreamNumbers[T float32 | float64 | int64 | int32](r *Reader, ref index.ArrayRef, want format.ArrayType) (NumberIterator[T], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != want {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.OpenNumberIterator[T](ra, n, nil), nil
}

// StreamIndex opens a streaming iterator over a nullable format.Index array.
func (r *Reader) StreamIndex(ref index.ArrayRef) (IndexIterator, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Index {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.OpenIndexIterator(ra, n, nil), nil
}

// StreamSegments opens a streaming iterator over a format.Segment array.
func (r *Reader) StreamSegments(ref index.ArrayRef) (SegmentIterator, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Segment {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.OpenSegmentIterator(ra, n, nil), nil
}

// StreamTriangles opens a streaming iterator over a format.Triangle array.
func (r *Reader) StreamTriangles(ref index.ArrayRef) (TriangleIterator, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Triangle {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.OpenTriangleIterator(ra, n, nil), nil
}

// StreamText opens a streaming iterator over a nullable format.Text array.
func (r *Reader) StreamText(ref index.ArrayRef) (TextIterator, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Text {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.OpenTextIterator(ra, n, nil), nil
}
