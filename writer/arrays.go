// Staging methods: each Write* method encodes one array to a buffer, appends
// it as a new archive member, and records whatever the index.Resolver
// interface needs to validate cross-references against it later in
// Finalize, without re-reading the half-written archive.
package writer

import (
	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/internal/pool"
)

const parquetExt = ".parquet"

func (w *Writer) stage(t format.ArrayType, rowCount int, encode func(*pool.ByteBuffer) error) (index.ArrayRef, stagedArray, error) {
	if err := w.requireOpen(); err != nil {
		return index.ArrayRef{}, stagedArray{}, err
	}

	buf := pool.GetArrayBuffer()
	defer pool.PutArrayBuffer(buf)

	if err := encode(buf); err != nil {
		return index.ArrayRef{}, stagedArray{}, err
	}

	name := w.newMember(parquetExt)
	if err := w.appendBytes(name, buf.Bytes()); err != nil {
		return index.ArrayRef{}, stagedArray{}, err
	}

	ref := index.ArrayRef{
		Member:         name,
		Type:           t.String(),
		Count:          int64(rowCount),
		CompressedSize: int64(buf.Len()),
	}

	s := stagedArray{arrayType: t, rowCount: int64(rowCount)}
	w.staged[name] = s

	return ref, s, nil
}

func (w *Writer) setStaged(name string, s stagedArray) {
	w.staged[name] = s
}

// WriteVertices encodes a Vertex32/Vertex64 array (precision selected by T).
func WriteVertices[T float32 | float64](w *Writer, values []arrays.Vec3[T]) (index.ArrayRef, error) {
	t := vertexType[T]()
	ref, _, err := w.stage(t, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteVertices(buf, values, w.level)
	})

	return ref, err
}

func vertexType[T float32 | float64]() format.ArrayType {
	var zero T
	if any(zero) == any(float32(0)) {
		return format.Vertex32
	}

	return format.Vertex64
}

// WriteSegments encodes a Segment array (line-set index pairs).
func (w *Writer) WriteSegments(values [][2]uint32) (index.ArrayRef, error) {
	ref, s, err := w.stage(format.Segment, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteSegments(buf, values, w.level)
	})
	if err != nil {
		return ref, err
	}

	var max uint32
	for _, v := range values {
		if v[0] > max {
			max = v[0]
		}
		if v[1] > max {
			max = v[1]
		}
	}
	s.segmentMax = max
	w.setStaged(ref.Member, s)

	return ref, nil
}

// WriteTriangles encodes a Triangle array (surface index triples).
func (w *Writer) WriteTriangles(values [][3]uint32) (index.ArrayRef, error) {
	ref, s, err := w.stage(format.Triangle, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteTriangles(buf, values, w.level)
	})
	if err != nil {
		return ref, err
	}

	var max uint32
	for _, v := range values {
		for _, idx := range v {
			if idx > max {
				max = idx
			}
		}
	}
	s.triangleMax = max
	w.setStaged(ref.Member, s)

	return ref, nil
}

// WriteNames encodes a Name array (category names).
func (w *Writer) WriteNames(values []string) (index.ArrayRef, error) {
	ref, _, err := w.stage(format.Name, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteNames(buf, values, w.level)
	})

	return ref, err
}

// WriteText encodes a nullable Text array.
func (w *Writer) WriteText(values []*string) (index.ArrayRef, error) {
	ref, _, err := w.stage(format.Text, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteText(buf, values, w.level)
	})

	return ref, err
}

// WriteGradient encodes a Gradient array (colormap colors).
func (w *Writer) WriteGradient(values []arrays.RGBA) (index.ArrayRef, error) {
	ref, _, err := w.stage(format.Gradient, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteGradient(buf, values, w.level)
	})

	return ref, err
}

// WriteColor encodes a nullable Color array.
func (w *Writer) WriteColor(values []arrays.NullableRGBA) (index.ArrayRef, error) {
	ref, _, err := w.stage(format.Color, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteColor(buf, values, w.level)
	})

	return ref, err
}

// WriteTexcoords encodes a Texcoord32/64 array (mapped-texture UVs).
func WriteTexcoords[T float32 | float64](w *Writer, values []arrays.Vec2[T]) (index.ArrayRef, error) {
	t := texcoordType[T]()
	ref, _, err := w.stage(t, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteTexcoords(buf, values, w.level)
	})

	return ref, err
}

func texcoordType[T float32 | float64]() format.ArrayType {
	var zero T
	if any(zero) == any(float32(0)) {
		return format.Texcoord32
	}

	return format.Texcoord64
}

// WriteBoolean encodes a nullable Boolean array.
func (w *Writer) WriteBoolean(values []*bool) (index.ArrayRef, error) {
	ref, _, err := w.stage(format.Boolean, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteBoolean(buf, values, w.level)
	})

	return ref, err
}

// WriteIndex encodes a nullable Index array, recording its values for
// category-index bounds checking.
func (w *Writer) WriteIndex(values []*uint32) (index.ArrayRef, error) {
	ref, s, err := w.stage(format.Index, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteIndex(buf, values, w.level)
	})
	if err != nil {
		return ref, err
	}

	s.indexValues = values
	w.setStaged(ref.Member, s)

	return ref, nil
}

// WriteVector2 encodes a nullable Vector(32|64)x2 array.
func WriteVector2[T float32 | float64](w *Writer, values []arrays.NullableVec2[T]) (index.ArrayRef, error) {
	t := vector2Type[T]()
	ref, _, err := w.stage(t, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteVector2(buf, values, w.level)
	})

	return ref, err
}

func vector2Type[T float32 | float64]() format.ArrayType {
	var zero T
	if any(zero) == any(float32(0)) {
		return format.Vector32x2
	}

	return format.Vector64x2
}

// WriteVector3 encodes a nullable Vector(32|64)x3 array.
func WriteVector3[T float32 | float64](w *Writer, values []arrays.NullableVec3[T]) (index.ArrayRef, error) {
	t := vector3Type[T]()
	ref, _, err := w.stage(t, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteVector3(buf, values, w.level)
	})

	return ref, err
}

func vector3Type[T float32 | float64]() format.ArrayType {
	var zero T
	if any(zero) == any(float32(0)) {
		return format.Vector32x3
	}

	return format.Vector64x3
}

// WriteNumbers encodes a nullable NumberFloat32/Float64/Int64/Date/DateTime
// array; t selects which of the five (Date/DateTime reuse the int32/int64
// instantiation of the generic, per arrays/rows.go).
func WriteNumbers[T float32 | float64 | int64 | int32](w *Writer, t format.ArrayType, values []*T) (index.ArrayRef, error) {
	ref, _, err := w.stage(t, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteNumbers(buf, values, w.level)
	})

	return ref, err
}

// WriteBoundaries encodes a BoundaryFloat32/Float64/Int64/Date/DateTime
// array, recording widened values+inclusive flags for colormap validation.
func WriteBoundaries[T float32 | float64 | int64 | int32](w *Writer, t format.ArrayType, values []arrays.Boundary[T]) (index.ArrayRef, error) {
	ref, s, err := w.stage(t, len(values), func(buf *pool.ByteBuffer) error {
		return arrays.WriteBoundaries(buf, values, w.level)
	})
	if err != nil {
		return ref, err
	}

	vals := make([]float64, len(values))
	incl := make([]bool, len(values))
	for i, b := range values {
		vals[i] = float64(b.Value)
		incl[i] = b.Inclusive
	}
	s.boundaryValues = vals
	s.boundaryInclusive = incl
	w.setStaged(ref.Member, s)

	return ref, nil
}

// WriteRegularSubblocks encodes a RegularSubblock array.
func (w *Writer) WriteRegularSubblocks(rows []arrays.RegularSubblockRow) (index.ArrayRef, error) {
	ref, s, err := w.stage(format.RegularSubblock, len(rows), func(buf *pool.ByteBuffer) error {
		return arrays.WriteRegularSubblocks(buf, rows, w.level)
	})
	if err != nil {
		return ref, err
	}

	s.regularRows = rows
	w.setStaged(ref.Member, s)

	return ref, nil
}

// WriteFreeformSubblocks encodes a FreeformSubblock32/64 array.
func WriteFreeformSubblocks[T float32 | float64](w *Writer, rows []arrays.FreeformSubblockRow[T]) (index.ArrayRef, error) {
	t := freeformType[T]()
	ref, s, err := w.stage(t, len(rows), func(buf *pool.ByteBuffer) error {
		return arrays.WriteFreeformSubblocks(buf, rows, w.level)
	})
	if err != nil {
		return ref, err
	}

	corners := make([]index.FreeformCorner, len(rows))
	for i, r := range rows {
		corners[i] = index.FreeformCorner{
			ParentU: r.ParentU, ParentV: r.ParentV, ParentW: r.ParentW,
			Min: [3]float64{float64(r.MinU), float64(r.MinV), float64(r.MinW)},
			Max: [3]float64{float64(r.MaxU), float64(r.MaxV), float64(r.MaxW)},
		}
	}
	s.freeformRows = corners
	w.setStaged(ref.Member, s)

	return ref, nil
}

func freeformType[T float32 | float64]() format.ArrayType {
	var zero T
	if any(zero) == any(float32(0)) {
		return format.FreeformSubblock32
	}

	return format.FreeformSubblock64
}

// WriteArrayBytes writes already-Parquet-encoded bytes claimed to conform to
// t, verifying the schema but not re-encoding the payload (
// writer_array_bytes passthrough write). Because the row values are never
// decoded, the staged resolver entry only supports RowCount-style checks;
// referential-integrity checks (segment/triangle/subblock bounds) against a
// passthrough array are skipped, matching the "copy-through" use case this
// exists for (e.g. the OMF1 converter re-writing an array it never mutates).
func (w *Writer) WriteArrayBytes(t format.ArrayType, data []byte, rowCount int64) (index.ArrayRef, error) {
	if err := w.requireOpen(); err != nil {
		return index.ArrayRef{}, err
	}

	verified := pool.GetArrayBuffer()
	defer pool.PutArrayBuffer(verified)

	if err := arrays.WriteBytes(verified, t, data); err != nil {
		return index.ArrayRef{}, err
	}

	name := w.newMember(parquetExt)
	if err := w.appendBytes(name, verified.Bytes()); err != nil {
		return index.ArrayRef{}, err
	}

	ref := index.ArrayRef{Member: name, Type: t.String(), Count: rowCount, CompressedSize: int64(verified.Len())}
	w.setStaged(name, stagedArray{arrayType: t, rowCount: rowCount})

	return ref, nil
}
