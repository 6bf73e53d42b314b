package arrays

import "io"

// WriteSegments encodes a format.Segment array (line-set index pairs).
func WriteSegments(w io.Writer, segments [][2]uint32, level int) error {
	rows := make([]segmentRow, len(segments))
	for i, s := range segments {
		rows[i] = segmentRow{A: s[0], B: s[1]}
	}

	return writeRows(w, rows, level)
}

// ReadSegments decodes a whole-buffer read of a format.Segment array.
func ReadSegments(ra io.ReaderAt, n int64) ([][2]uint32, error) {
	rows, err := readAllRows[segmentRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([][2]uint32, len(rows))
	for i, r := range rows {
		out[i] = [2]uint32{r.A, r.B}
	}

	return out, nil
}

// WriteTriangles encodes a format.Triangle array (surface index triples,
// counter-clockwise around an outward normal; winding is semantic
// and is not machine-checked here).
func WriteTriangles(w io.Writer, triangles [][3]uint32, level int) error {
	rows := make([]triangleRow, len(triangles))
	for i, t := range triangles {
		rows[i] = triangleRow{A: t[0], B: t[1], C: t[2]}
	}

	return writeRows(w, rows, level)
}

// ReadTriangles decodes a whole-buffer read of a format.Triangle array.
func ReadTriangles(ra io.ReaderAt, n int64) ([][3]uint32, error) {
	rows, err := readAllRows[triangleRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([][3]uint32, len(rows))
	for i, r := range rows {
		out[i] = [3]uint32{r.A, r.B, r.C}
	}

	return out, nil
}

// RegularSubblockRow is the caller-facing shape of one format.RegularSubblock
// row: the parent block index and the sub-block's corner range within the
// parent's regular sub-grid.
type RegularSubblockRow struct {
	ParentU, ParentV, ParentW uint32
	MinU, MinV, MinW          uint32
	MaxU, MaxV, MaxW          uint32
}

// WriteRegularSubblocks encodes a format.RegularSubblock array.
func WriteRegularSubblocks(w io.Writer, rows []RegularSubblockRow, level int) error {
	out := make([]regularSubblockRow, len(rows))
	for i, r := range rows {
		out[i] = regularSubblockRow(r)
	}

	return writeRows(w, out, level)
}

// ReadRegularSubblocks decodes a whole-buffer read of a format.RegularSubblock array.
func ReadRegularSubblocks(ra io.ReaderAt, n int64) ([]RegularSubblockRow, error) {
	rows, err := readAllRows[regularSubblockRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]RegularSubblockRow, len(rows))
	for i, r := range rows {
		out[i] = RegularSubblockRow(r)
	}

	return out, nil
}

// FreeformSubblockRow is the caller-facing shape of one
// format.FreeformSubblock32/64 row: corners are fractions in [0,1] of the
// parent block (validated at the index layer, not here).
type FreeformSubblockRow[T float32 | float64] struct {
	ParentU, ParentV, ParentW uint32
	MinU, MinV, MinW          T
	MaxU, MaxV, MaxW          T
}

// WriteFreeformSubblocks encodes a format.FreeformSubblock32/64 array.
func WriteFreeformSubblocks[T float32 | float64](w io.Writer, rows []FreeformSubblockRow[T], level int) error {
	out := make([]freeformSubblockRow[T], len(rows))
	for i, r := range rows {
		out[i] = freeformSubblockRow[T]{
			ParentU: r.ParentU, ParentV: r.ParentV, ParentW: r.ParentW,
			MinU: r.MinU, MinV: r.MinV, MinW: r.MinW,
			MaxU: r.MaxU, MaxV: r.MaxV, MaxW: r.MaxW,
		}
	}

	return writeRows(w, out, level)
}

// ReadFreeformSubblocks decodes a whole-buffer read of a
// format.FreeformSubblock32/64 array.
func ReadFreeformSubblocks[T float32 | float64](ra io.ReaderAt, n int64) ([]FreeformSubblockRow[T], error) {
	rows, err := readAllRows[freeformSubblockRow[T]](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]FreeformSubblockRow[T], len(rows))
	for i, r := range rows {
		out[i] = FreeformSubblockRow[T]{
			ParentU: r.ParentU, ParentV: r.ParentV, ParentW: r.ParentW,
			MinU: r.MinU, MinV: r.MinV, MinW: r.MinW,
			MaxU: r.MaxU, MaxV: r.MaxV, MaxW: r.MaxW,
		}
	}

	return out, nil
}

// WriteIndex encodes a nullable format.Index array ("Index −1 → null").
func WriteIndex(w io.Writer, values []*uint32, level int) error {
	rows := make([]indexRow, len(values))
	for i, v := range values {
		rows[i] = indexRow{Index: v}
	}

	return writeRows(w, rows, level)
}

// ReadIndex decodes a whole-buffer read of a format.Index array.
func ReadIndex(ra io.ReaderAt, n int64) ([]*uint32, error) {
	rows, err := readAllRows[indexRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]*uint32, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}

	return out, nil
}
