package arrays

import "io"

// Boundary is one row of a discrete colormap's boundary array: a strictly
// increasing value (checked by the index validator, not here) and whether
// the boundary includes its own value.
type Boundary[T float32 | float64 | int64 | int32] struct {
	Value     T
	Inclusive bool
}

// WriteBoundaries encodes a format.BoundaryFloat32/Float64/Int64/Date/
// DateTime array (T selects which; Date/DateTime reuse int32/int64).
func WriteBoundaries[T float32 | float64 | int64 | int32](w io.Writer, values []Boundary[T], level int) error {
	rows := make([]boundaryRow[T], len(values))
	for i, v := range values {
		rows[i] = boundaryRow[T](v)
	}

	return writeRows(w, rows, level)
}

// ReadBoundaries decodes a whole-buffer read of a boundary array.
func ReadBoundaries[T float32 | float64 | int64 | int32](ra io.ReaderAt, n int64) ([]Boundary[T], error) {
	rows, err := readAllRows[boundaryRow[T]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]Boundary[T], len(rows))
	for i, r := range rows {
		out[i] = Boundary[T](r)
	}

	return out, nil
}
