package arrays

import "io"

// Vec2 is a plain 2-component vector, the in-memory shape for
// format.Texcoord32/64 arrays.
type Vec2[T float32 | float64] struct {
	U, V T
}

// WriteTexcoords encodes a format.Texcoord32/64 array (mapped-texture UVs).
func WriteTexcoords[T float32 | float64](w io.Writer, coords []Vec2[T], level int) error {
	rows := make([]texcoordRow[T], len(coords))
	for i, c := range coords {
		rows[i] = texcoordRow[T]{U: c.U, V: c.V}
	}

	return writeRows(w, rows, level)
}

// ReadTexcoords decodes a whole-buffer read of a format.Texcoord32/64 array.
func ReadTexcoords[T float32 | float64](ra io.ReaderAt, n int64) ([]Vec2[T], error) {
	rows, err := readAllRows[texcoordRow[T]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]Vec2[T], len(rows))
	for i, r := range rows {
		out[i] = Vec2[T]{U: r.U, V: r.V}
	}

	return out, nil
}
