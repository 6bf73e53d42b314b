package reader

import (
	"io"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
)

// openArray resolves ref against the open archive the way resolver.open
// does, but is exported to the reader package's own typed accessors (it is
// the shared entry point for both whole-buffer and streaming reads).
func (r *Reader) openArray(ref index.ArrayRef) (format.ArrayType, int64, io.ReaderAt, error) {
	if r.state == stateClosed {
		return format.ArrayTypeUnknown, 0, nil, errs.Newf(errs.InvalidCall, "reader is closed")
	}

	t, ok := format.ParseArrayType(ref.Type)
	if !ok {
		return format.ArrayTypeUnknown, 0, nil, errs.Newf(errs.ArrayTypeWrong, "unrecognized array type %q", ref.Type)
	}

	ra, n, err := r.cr.OpenAt(ref.Member)
	if err != nil {
		return t, 0, nil, err
	}

	if err := arrays.ValidateMember(t, ra, n); err != nil {
		return t, 0, nil, err
	}

	return t, n, ra, nil
}

// ReadBytes returns the raw Parquet-encoded bytes of ref's member, for
// passthrough callers (e.g. the OMF1 converter or an inspection tool) that
// never need row contents.
func (r *Reader) ReadBytes(ref index.ArrayRef) ([]byte, error) {
	_, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	return arrays.ReadBytes(ra, n)
}

// ReadScalar32 decodes a format.Scalar32 array.
func (r *Reader) ReadScalar32(ref index.ArrayRef) ([]float32, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Scalar32 {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadScalar32(ra, n)
}

// ReadScalar64 decodes a format.Scalar64 array.
func (r *Reader) ReadScalar64(ref index.ArrayRef) ([]float64, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Scalar64 {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadScalar64(ra, n)
}

// ReadVerticesAsFloat64 decodes a format.Vertex32 or format.Vertex64 array,
// widening float32 vertices to float64 on the fly casting rules.
func (r *Reader) ReadVerticesAsFloat64(ref index.ArrayRef) ([]arrays.Vec3[float64], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	if err := arrays.CheckCast(t, arrays.KindFloat64); err != nil {
		return nil, err
	}

	if t == format.Vertex64 {
		return arrays.ReadVertices[float64](ra, n)
	}

	rows, err := arrays.ReadVertices[float32](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]arrays.Vec3[float64], len(rows))
	for i, v := range rows {
		out[i] = arrays.Vec3[float64]{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
	}

	return out, nil
}

// ReadVertices32 decodes a format.Vertex32 array at its native precision.
func (r *Reader) ReadVertices32(ref index.ArrayRef) ([]arrays.Vec3[float32], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Vertex32 {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadVertices[float32](ra, n)
}

// ReadSegments decodes a format.Segment array.
func (r *Reader) ReadSegments(ref index.ArrayRef) ([][2]uint32, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Segment {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadSegments(ra, n)
}

// ReadTriangles decodes a format.Triangle array.
func (r *Reader) ReadTriangles(ref index.ArrayRef) ([][3]uint32, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Triangle {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadTriangles(ra, n)
}

// ReadNames decodes a format.Name array.
func (r *Reader) ReadNames(ref index.ArrayRef) ([]string, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Name {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadNames(ra, n)
}

// ReadText decodes a nullable format.Text array.
func (r *Reader) ReadText(ref index.ArrayRef) ([]*string, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Text {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadText(ra, n)
}

// ReadGradient decodes a format.Gradient array.
func (r *Reader) ReadGradient(ref index.ArrayRef) ([]arrays.RGBA, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Gradient {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadGradient(ra, n)
}

// ReadColor decodes a nullable format.Color array.
func (r *Reader) ReadColor(ref index.ArrayRef) ([]arrays.NullableRGBA, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Color {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadColor(ra, n)
}

// ReadTexcoordsAsFloat64 decodes a format.Texcoord32/64 array, widening
// float32 coordinates to float64 on the fly.
func (r *Reader) ReadTexcoordsAsFloat64(ref index.ArrayRef) ([]arrays.Vec2[float64], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	if err := arrays.CheckCast(t, arrays.KindFloat64); err != nil {
		return nil, err
	}

	if t == format.Texcoord64 {
		return arrays.ReadTexcoords[float64](ra, n)
	}

	rows, err := arrays.ReadTexcoords[float32](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]arrays.Vec2[float64], len(rows))
	for i, v := range rows {
		out[i] = arrays.Vec2[float64]{U: float64(v.U), V: float64(v.V)}
	}

	return out, nil
}

// ReadBoolean decodes a nullable format.Boolean array.
func (r *Reader) ReadBoolean(ref index.ArrayRef) ([]*bool, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Boolean {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadBoolean(ra, n)
}

// ReadIndex decodes a nullable format.Index array.
func (r *Reader) ReadIndex(ref index.ArrayRef) ([]*uint32, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.Index {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadIndex(ra, n)
}

// ReadVector2AsFloat64 decodes a nullable format.Vector32x2/64x2 array,
// widening float32 components to float64 on the fly.
func (r *Reader) ReadVector2AsFloat64(ref index.ArrayRef) ([]arrays.NullableVec2[float64], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	if err := arrays.CheckCast(t, arrays.KindFloat64); err != nil {
		return nil, err
	}

	if t == format.Vector64x2 {
		return arrays.ReadVector2[float64](ra, n)
	}

	rows, err := arrays.ReadVector2[float32](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]arrays.NullableVec2[float64], len(rows))
	for i, v := range rows {
		out[i] = arrays.NullableVec2[float64]{X: widenPtr(v.X), Y: widenPtr(v.Y)}
	}

	return out, nil
}

// ReadVector3AsFloat64 decodes a nullable format.Vector32x3/64x3 array,
// widening float32 components to float64 on the fly.
func (r *Reader) ReadVector3AsFloat64(ref index.ArrayRef) ([]arrays.NullableVec3[float64], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	if err := arrays.CheckCast(t, arrays.KindFloat64); err != nil {
		return nil, err
	}

	if t == format.Vector64x3 {
		return arrays.ReadVector3[float64](ra, n)
	}

	rows, err := arrays.ReadVector3[float32](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]arrays.NullableVec3[float64], len(rows))
	for i, v := range rows {
		out[i] = arrays.NullableVec3[float64]{X: widenPtr(v.X), Y: widenPtr(v.Y), Z: widenPtr(v.Z)}
	}

	return out, nil
}

func widenPtr(v *float32) *float64 {
	if v == nil {
		return nil
	}

	w := float64(*v)

	return &w
}

// ReadNumbersAsFloat64 decodes a nullable NumberFloat32/Float64 array,
// widening float32 values to float64 on the fly. NumberInt64/Date/DateTime
// use ReadNumberInt64/ReadNumberDateAsInt64Days/ReadNumberDateTimeAsMicros
// instead, since those casts are not plain float widening.
func (r *Reader) ReadNumbersAsFloat64(ref index.ArrayRef) ([]*float64, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	if err := arrays.CheckCast(t, arrays.KindFloat64); err != nil {
		return nil, err
	}

	if t == format.NumberFloat64 {
		return arrays.ReadNumbers[float64](ra, n)
	}

	values, err := arrays.ReadNumbers[float32](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = widenPtr(v)
	}

	return out, nil
}

// ReadNumberInt64 decodes a nullable format.NumberInt64 array.
func (r *Reader) ReadNumberInt64(ref index.ArrayRef) ([]*int64, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.NumberInt64 {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadNumbers[int64](ra, n)
}

// ReadNumberDateAsInt64Days decodes a nullable format.NumberDate array as
// i64 day counts (: date -> i64 days is an allowed cast).
func (r *Reader) ReadNumberDateAsInt64Days(ref index.ArrayRef) ([]*int64, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.NumberDate {
		return nil, errs.ErrArrayTypeWrong
	}

	values, err := arrays.ReadNumbers[int32](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]*int64, len(values))
	for i, v := range values {
		if v != nil {
			w := int64(*v)
			out[i] = &w
		}
	}

	return out, nil
}

// ReadNumberDateTimeAsMicros decodes a nullable format.NumberDateTime array
// at its native i64 microsecond precision.
func (r *Reader) ReadNumberDateTimeAsMicros(ref index.ArrayRef) ([]*int64, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.NumberDateTime {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadNumbers[int64](ra, n)
}

// ReadRegularSubblocks decodes a format.RegularSubblock array.
func (r *Reader) ReadRegularSubblocks(ref index.ArrayRef) ([]arrays.RegularSubblockRow, error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}
	if t != format.RegularSubblock {
		return nil, errs.ErrArrayTypeWrong
	}

	return arrays.ReadRegularSubblocks(ra, n)
}

// ReadFreeformSubblocksAsFloat64 decodes a format.FreeformSubblock32/64
// array, widening float32 corners to float64 on the fly.
func (r *Reader) ReadFreeformSubblocksAsFloat64(ref index.ArrayRef) ([]arrays.FreeformSubblockRow[float64], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	switch t {
	case format.FreeformSubblock64:
		return arrays.ReadFreeformSubblocks[float64](ra, n)

	case format.FreeformSubblock32:
		rows, err := arrays.ReadFreeformSubblocks[float32](ra, n)
		if err != nil {
			return nil, err
		}

		out := make([]arrays.FreeformSubblockRow[float64], len(rows))
		for i, row := range rows {
			out[i] = arrays.FreeformSubblockRow[float64]{
				ParentU: row.ParentU, ParentV: row.ParentV, ParentW: row.ParentW,
				MinU: float64(row.MinU), MinV: float64(row.MinV), MinW: float64(row.MinW),
				MaxU: float64(row.MaxU), MaxV: float64(row.MaxV), MaxW: float64(row.MaxW),
			}
		}

		return out, nil

	default:
		return nil, errs.ErrArrayTypeWrong
	}
}

// ReadBoundariesAsFloat64 decodes a discrete colormap's boundary array
// (any of BoundaryFloat32/64/Int64/Date/DateTime), widening every
// representation to float64 for display purposes. DateTime
// boundaries widen through seconds, matching the documented precision-lossy
// cast; every other representation widens exactly.
func (r *Reader) ReadBoundariesAsFloat64(ref index.ArrayRef) ([]arrays.Boundary[float64], error) {
	t, n, ra, err := r.openArray(ref)
	if err != nil {
		return nil, err
	}

	switch t {
	case format.BoundaryFloat64:
		return arrays.ReadBoundaries[float64](ra, n)

	case format.BoundaryFloat32:
		rows, err := arrays.ReadBoundaries[float32](ra, n)
		if err != nil {
			return nil, err
		}
		return widenBoundaries(rows, func(v float32) float64 { return float64(v) }), nil

	case format.BoundaryInt64:
		rows, err := arrays.ReadBoundaries[int64](ra, n)
		if err != nil {
			return nil, err
		}
		return widenBoundaries(rows, func(v int64) float64 { return float64(v) }), nil

	case format.BoundaryDate:
		rows, err := arrays.ReadBoundaries[int32](ra, n)
		if err != nil {
			return nil, err
		}
		return widenBoundaries(rows, func(v int32) float64 { return float64(v) }), nil

	case format.BoundaryDateTime:
		rows, err := arrays.ReadBoundaries[int64](ra, n)
		if err != nil {
			return nil, err
		}
		return widenBoundaries(rows, func(v int64) float64 { return float64(v) / 1e6 }), nil

	default:
		return nil, errs.ErrArrayTypeWrong
	}
}

func widenBoundaries[T float32 | float64 | int64 | int32](rows []arrays.Boundary[T], conv func(T) float64) []arrays.Boundary[float64] {
	out := make([]arrays.Boundary[float64], len(rows))
	for i, r := range rows {
		out[i] = arrays.Boundary[float64]{Value: conv(r.Value), Inclusive: r.Inclusive}
	}

	return out
}
