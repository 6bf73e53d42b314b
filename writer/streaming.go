// Streaming staging: pull-based counterparts to the whole-buffer Write*
// methods, for producers (the OMF1 converter, generated geometry) whose row
// count is unknown until the source drains. Rows are pulled and encoded a
// row group at a time, but the encoded member is held in memory in full
// until it is appended to the archive, and StreamIndex also keeps every
// drained value for finalize-time validation.
package writer

import (
	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/internal/pool"
)

func (w *Writer) stageStream(t format.ArrayType, encode func(*pool.ByteBuffer) (int64, error)) (index.ArrayRef, stagedArray, error) {
	if err := w.requireOpen(); err != nil {
		return index.ArrayRef{}, stagedArray{}, err
	}

	buf := pool.GetArrayBuffer()
	defer pool.PutArrayBuffer(buf)

	count, err := encode(buf)
	if err != nil {
		return index.ArrayRef{}, stagedArray{}, err
	}

	name := w.newMember(parquetExt)
	if err := w.appendBytes(name, buf.Bytes()); err != nil {
		return index.ArrayRef{}, stagedArray{}, err
	}

	ref := index.ArrayRef{
		Member:         name,
		Type:           t.String(),
		Count:          count,
		CompressedSize: int64(buf.Len()),
	}

	s := stagedArray{arrayType: t, rowCount: count}
	w.staged[name] = s

	return ref, s, nil
}

// StreamVertices drains src into a Vertex32/64 array member.
func StreamVertices[T float32 | float64](w *Writer, src arrays.RowSource[arrays.Vec3[T]]) (index.ArrayRef, error) {
	ref, _, err := w.stageStream(vertexType[T](), func(buf *pool.ByteBuffer) (int64, error) {
		return arrays.StreamWriteVertices(buf, src, w.level)
	})

	return ref, err
}

// StreamSegments drains src into a Segment array member, tracking the
// largest vertex index seen for finalize-time bounds validation.
func (w *Writer) StreamSegments(src arrays.RowSource[[2]uint32]) (index.ArrayRef, error) {
	var max uint32
	counting := func() ([2]uint32, bool, error) {
		s, ok, err := src()
		if ok {
			if s[0] > max {
				max = s[0]
			}
			if s[1] > max {
				max = s[1]
			}
		}

		return s, ok, err
	}

	ref, s, err := w.stageStream(format.Segment, func(buf *pool.ByteBuffer) (int64, error) {
		return arrays.StreamWriteSegments(buf, counting, w.level)
	})
	if err != nil {
		return ref, err
	}

	s.segmentMax = max
	w.setStaged(ref.Member, s)

	return ref, nil
}

// StreamTriangles drains src into a Triangle array member, tracking the
// largest vertex index seen for finalize-time bounds validation.
func (w *Writer) StreamTriangles(src arrays.RowSource[[3]uint32]) (index.ArrayRef, error) {
	var max uint32
	counting := func() ([3]uint32, bool, error) {
		t, ok, err := src()
		if ok {
			for _, idx := range t {
				if idx > max {
					max = idx
				}
			}
		}

		return t, ok, err
	}

	ref, s, err := w.stageStream(format.Triangle, func(buf *pool.ByteBuffer) (int64, error) {
		return arrays.StreamWriteTriangles(buf, counting, w.level)
	})
	if err != nil {
		return ref, err
	}

	s.triangleMax = max
	w.setStaged(ref.Member, s)

	return ref, nil
}

// StreamNumbers drains src into one of the five nullable NumberXxx array
// members; t selects which, exactly as WriteNumbers does.
func StreamNumbers[T float32 | float64 | int64 | int32](w *Writer, t format.ArrayType, src arrays.RowSource[*T]) (index.ArrayRef, error) {
	ref, _, err := w.stageStream(t, func(buf *pool.ByteBuffer) (int64, error) {
		return arrays.StreamWriteNumbers(buf, src, w.level)
	})

	return ref, err
}

// StreamIndex drains src into a nullable Index array member, recording the
// drained values for category-index bounds checking at finalize.
func (w *Writer) StreamIndex(src arrays.RowSource[*uint32]) (index.ArrayRef, error) {
	var values []*uint32
	recording := func() (*uint32, bool, error) {
		v, ok, err := src()
		if ok {
			values = append(values, v)
		}

		return v, ok, err
	}

	ref, s, err := w.stageStream(format.Index, func(buf *pool.ByteBuffer) (int64, error) {
		return arrays.StreamWriteIndex(buf, recording, w.level)
	})
	if err != nil {
		return ref, err
	}

	s.indexValues = values
	w.setStaged(ref.Member, s)

	return ref, nil
}

// StreamText drains src into a nullable Text array member.
func (w *Writer) StreamText(src arrays.RowSource[*string]) (index.ArrayRef, error) {
	ref, _, err := w.stageStream(format.Text, func(buf *pool.ByteBuffer) (int64, error) {
		return arrays.StreamWriteText(buf, src, w.level)
	})

	return ref, err
}
