package arrays

import "io"

// Vec3 is a plain 3-component vector, the in-memory shape for both
// format.Vertex32 and format.Vertex64 arrays (the element width is a Go
// generic type parameter, not a separate struct per precision).
type Vec3[T float32 | float64] struct {
	X, Y, Z T
}

// WriteVertices encodes a vertex array (format.Vertex32 or format.Vertex64
// depending on T) as a complete Parquet file.
func WriteVertices[T float32 | float64](w io.Writer, values []Vec3[T], level int) error {
	rows := make([]vertexRow[T], len(values))
	for i, v := range values {
		rows[i] = vertexRow[T]{X: v.X, Y: v.Y, Z: v.Z}
	}

	return writeRows(w, rows, level)
}

// ReadVertices decodes a whole-buffer read of a vertex array.
func ReadVertices[T float32 | float64](ra io.ReaderAt, n int64) ([]Vec3[T], error) {
	rows, err := readAllRows[vertexRow[T]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]Vec3[T], len(rows))
	for i, r := range rows {
		out[i] = Vec3[T]{X: r.X, Y: r.Y, Z: r.Z}
	}

	return out, nil
}
