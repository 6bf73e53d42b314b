package arrays

import "io"

// NullableVec2 is the in-memory shape for a format.Vector(32|64)x2 row: any
// component may be null, e.g. to represent a masked-out vector2 attribute
// value ("vector2/3... nullable").
type NullableVec2[T float32 | float64] struct {
	X, Y *T
}

// WriteVector2 encodes a format.Vector32x2/Vector64x2 array.
func WriteVector2[T float32 | float64](w io.Writer, values []NullableVec2[T], level int) error {
	rows := make([]vector2Row[T], len(values))
	for i, v := range values {
		rows[i] = vector2Row[T](v)
	}

	return writeRows(w, rows, level)
}

// ReadVector2 decodes a whole-buffer read of a format.Vector32x2/Vector64x2 array.
func ReadVector2[T float32 | float64](ra io.ReaderAt, n int64) ([]NullableVec2[T], error) {
	rows, err := readAllRows[vector2Row[T]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]NullableVec2[T], len(rows))
	for i, r := range rows {
		out[i] = NullableVec2[T](r)
	}

	return out, nil
}

// NullableVec3 is the in-memory shape for a format.Vector(32|64)x3 row.
type NullableVec3[T float32 | float64] struct {
	X, Y, Z *T
}

// WriteVector3 encodes a format.Vector32x3/Vector64x3 array.
func WriteVector3[T float32 | float64](w io.Writer, values []NullableVec3[T], level int) error {
	rows := make([]vector3Row[T], len(values))
	for i, v := range values {
		rows[i] = vector3Row[T](v)
	}

	return writeRows(w, rows, level)
}

// ReadVector3 decodes a whole-buffer read of a format.Vector32x3/Vector64x3 array.
func ReadVector3[T float32 | float64](ra io.ReaderAt, n int64) ([]NullableVec3[T], error) {
	rows, err := readAllRows[vector3Row[T]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]NullableVec3[T], len(rows))
	for i, r := range rows {
		out[i] = NullableVec3[T](r)
	}

	return out, nil
}
