package arrays

import "io"

// WriteNumbers encodes a nullable format.NumberFloat32/Float64/Int64/Date/
// DateTime array.
func WriteNumbers[T float32 | float64 | int64 | int32](w io.Writer, values []*T, level int) error {
	rows := make([]numberRow[T], len(values))
	for i, v := range values {
		rows[i] = numberRow[T]{Value: v}
	}

	return writeRows(w, rows, level)
}

// ReadNumbers decodes a whole-buffer read of a number array.
func ReadNumbers[T float32 | float64 | int64 | int32](ra io.ReaderAt, n int64) ([]*T, error) {
	rows, err := readAllRows[numberRow[T]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]*T, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}

	return out, nil
}

// WriteBoolean encodes a nullable format.Boolean array.
func WriteBoolean(w io.Writer, values []*bool, level int) error {
	rows := make([]booleanRow, len(values))
	for i, v := range values {
		rows[i] = booleanRow{Value: v}
	}

	return writeRows(w, rows, level)
}

// ReadBoolean decodes a whole-buffer read of a format.Boolean array.
func ReadBoolean(ra io.ReaderAt, n int64) ([]*bool, error) {
	rows, err := readAllRows[booleanRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]*bool, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}

	return out, nil
}
