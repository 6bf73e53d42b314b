package arrays

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/omf2/omf2/errs"
)

// RowSource is the pull-based callback a streaming write drains: each call
// returns the next value plus ok=true, or ok=false once the source is
// exhausted. A source that fails mid-stream returns a non-nil error, which
// aborts the write. Sources are invoked from the calling goroutine only.
type RowSource[T any] func() (T, bool, error)

// pullRows drains src into batches of at most rowGroupRows, handing each
// batch to sink. A panic inside src is recovered here and surfaced as
// errs.Panic: callback panics never cross the library boundary.
func pullRows[Row any, V any](src RowSource[V], wrap func(V) Row, sink func([]Row) error) (count int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Newf(errs.Panic, "row source panicked: %v", r)
		}
	}()

	batch := make([]Row, 0, rowGroupRows)
	for {
		v, ok, serr := src()
		if serr != nil {
			return count, serr
		}
		if !ok {
			break
		}

		batch = append(batch, wrap(v))
		count++

		if len(batch) == rowGroupRows {
			if werr := sink(batch); werr != nil {
				return count, werr
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if werr := sink(batch); werr != nil {
			return count, werr
		}
	}

	return count, nil
}

// streamRows is the write-side twin of writeRows for a pull-based source:
// same schema, same row-group bound, so a streamed array decodes identically
// to its whole-buffer counterpart (the encoded bytes differ only where
// row-group boundaries fall).
func streamRows[Row any, V any](w io.Writer, src RowSource[V], wrap func(V) Row, level int) (int64, error) {
	pw := parquet.NewGenericWriter[Row](w,
		parquet.Compression(compressionCodec(level)),
		parquet.MaxRowsPerRowGroup(rowGroupRows),
	)

	count, err := pullRows(src, wrap, func(batch []Row) error {
		if _, werr := pw.Write(batch); werr != nil {
			return errs.Wrap(errs.ParquetError, werr, "failed to write row group")
		}

		return nil
	})
	if err != nil {
		return count, err
	}

	if err := pw.Close(); err != nil {
		return count, errs.Wrap(errs.ParquetError, err, "failed to finalize Parquet file")
	}

	return count, nil
}

// StreamWriteVertices drains a vertex source into a Vertex32/64 array,
// returning the number of rows written.
func StreamWriteVertices[T float32 | float64](w io.Writer, src RowSource[Vec3[T]], level int) (int64, error) {
	return streamRows(w, src, func(v Vec3[T]) vertexRow[T] {
		return vertexRow[T]{X: v.X, Y: v.Y, Z: v.Z}
	}, level)
}

// StreamWriteSegments drains a segment source into a Segment array.
func StreamWriteSegments(w io.Writer, src RowSource[[2]uint32], level int) (int64, error) {
	return streamRows(w, src, func(s [2]uint32) segmentRow {
		return segmentRow{A: s[0], B: s[1]}
	}, level)
}

// StreamWriteTriangles drains a triangle source into a Triangle array.
func StreamWriteTriangles(w io.Writer, src RowSource[[3]uint32], level int) (int64, error) {
	return streamRows(w, src, func(t [3]uint32) triangleRow {
		return triangleRow{A: t[0], B: t[1], C: t[2]}
	}, level)
}

// StreamWriteNumbers drains a nullable scalar source into a
// NumberFloat32/Float64/Int64/Date/DateTime array (T selects which).
func StreamWriteNumbers[T float32 | float64 | int64 | int32](w io.Writer, src RowSource[*T], level int) (int64, error) {
	return streamRows(w, src, func(v *T) numberRow[T] {
		return numberRow[T]{Value: v}
	}, level)
}

// StreamWriteIndex drains a nullable index source into an Index array.
func StreamWriteIndex(w io.Writer, src RowSource[*uint32], level int) (int64, error) {
	return streamRows(w, src, func(v *uint32) indexRow {
		return indexRow{Index: v}
	}, level)
}

// StreamWriteText drains a nullable text source into a Text array.
func StreamWriteText(w io.Writer, src RowSource[*string], level int) (int64, error) {
	return streamRows(w, src, func(v *string) textRow {
		return textRow{Text: v}
	}, level)
}

// SliceSource adapts an in-memory slice to a RowSource, for callers mixing
// streamed and whole-buffer data through one code path.
func SliceSource[T any](values []T) RowSource[T] {
	i := 0

	return func() (T, bool, error) {
		if i >= len(values) {
			var zero T
			return zero, false, nil
		}

		v := values[i]
		i++

		return v, true, nil
	}
}
