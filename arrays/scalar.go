package arrays

import "io"

// WriteScalar32 encodes a float32 scalar array (format.Scalar32: column
// "value", REQUIRED) as a complete Parquet file written to w.
func WriteScalar32(w io.Writer, values []float32, level int) error {
	rows := make([]scalarRow[float32], len(values))
	for i, v := range values {
		rows[i] = scalarRow[float32]{Value: v}
	}

	return writeRows(w, rows, level)
}

// ReadScalar32 decodes a whole-buffer read of a format.Scalar32 array.
func ReadScalar32(ra io.ReaderAt, n int64) ([]float32, error) {
	rows, err := readAllRows[scalarRow[float32]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}

	return out, nil
}

// WriteScalar64 encodes a float64 scalar array (format.Scalar64).
func WriteScalar64(w io.Writer, values []float64, level int) error {
	rows := make([]scalarRow[float64], len(values))
	for i, v := range values {
		rows[i] = scalarRow[float64]{Value: v}
	}

	return writeRows(w, rows, level)
}

// ReadScalar64 decodes a whole-buffer read of a format.Scalar64 array.
func ReadScalar64(ra io.ReaderAt, n int64) ([]float64, error) {
	rows, err := readAllRows[scalarRow[float64]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}

	return out, nil
}
