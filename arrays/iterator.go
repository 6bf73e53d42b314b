package arrays

import "io"

// MappedIterator adapts a RowIterator over an internal Parquet row struct to
// the caller-facing DTO type (Vec3, Boundary, a raw pointer, ...), so package
// callers never need to name the unexported row structs themselves.
type MappedIterator[Row any, Out any] struct {
	inner *RowIterator[Row]
	xform func(Row) Out
}

// Next advances to the next row; see RowIterator.Next for the end-of-stream/
// error distinction.
func (m *MappedIterator[Row, Out]) Next() bool { return m.inner.Next() }

// Value returns the row most recently yielded by Next, converted to Out.
func (m *MappedIterator[Row, Out]) Value() Out { return m.xform(m.inner.Row()) }

// Err returns the first error encountered, or nil at normal end-of-stream.
func (m *MappedIterator[Row, Out]) Err() error { return m.inner.Err() }

// Close releases the Parquet reader and the archive member stream.
func (m *MappedIterator[Row, Out]) Close() error { return m.inner.Close() }

// OpenVertexIterator streams a Vertex32/Vertex64 array row by row without
// materializing the whole column.
func OpenVertexIterator[T float32 | float64](ra io.ReaderAt, n int64, closer io.Closer) *MappedIterator[vertexRow[T], Vec3[T]] {
	return &MappedIterator[vertexRow[T], Vec3[T]]{
		inner: NewRowIterator[vertexRow[T]](ra, n, closer),
		xform: func(r vertexRow[T]) Vec3[T] { return Vec3[T]{X: r.X, Y: r.Y, Z: r.Z} },
	}
}

// OpenTriangleIterator streams a Triangle array.
func OpenTriangleIterator(ra io.ReaderAt, n int64, closer io.Closer) *MappedIterator[triangleRow, [3]uint32] {
	return &MappedIterator[triangleRow, [3]uint32]{
		inner: NewRowIterator[triangleRow](ra, n, closer),
		xform: func(r triangleRow) [3]uint32 { return [3]uint32{r.A, r.B, r.C} },
	}
}

// OpenSegmentIterator streams a Segment array.
func OpenSegmentIterator(ra io.ReaderAt, n int64, closer io.Closer) *MappedIterator[segmentRow, [2]uint32] {
	return &MappedIterator[segmentRow, [2]uint32]{
		inner: NewRowIterator[segmentRow](ra, n, closer),
		xform: func(r segmentRow) [2]uint32 { return [2]uint32{r.A, r.B} },
	}
}

// OpenNumberIterator streams a nullable NumberFloat32/Float64/Int64/Date/
// DateTime array (T selects which).
func OpenNumberIterator[T float32 | float64 | int64 | int32](ra io.ReaderAt, n int64, closer io.Closer) *MappedIterator[numberRow[T], *T] {
	return &MappedIterator[numberRow[T], *T]{
		inner: NewRowIterator[numberRow[T]](ra, n, closer),
		xform: func(r numberRow[T]) *T { return r.Value },
	}
}

// OpenIndexIterator streams a nullable Index array.
func OpenIndexIterator(ra io.ReaderAt, n int64, closer io.Closer) *MappedIterator[indexRow, *uint32] {
	return &MappedIterator[indexRow, *uint32]{
		inner: NewRowIterator[indexRow](ra, n, closer),
		xform: func(r indexRow) *uint32 { return r.Index },
	}
}

// OpenTextIterator streams a nullable Text array.
func OpenTextIterator(ra io.ReaderAt, n int64, closer io.Closer) *MappedIterator[textRow, *string] {
	return &MappedIterator[textRow, *string]{
		inner: NewRowIterator[textRow](ra, n, closer),
		xform: func(r textRow) *string { return r.Text },
	}
}
