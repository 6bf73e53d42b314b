package arrays

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/omf2/omf2/errs"
)

// RGBA is a non-nullable 8-bit-per-channel color, the in-memory shape for a
// format.Gradient row.
type RGBA struct {
	R, G, B, A uint8
}

// WriteGradient encodes a format.Gradient array. The "a" column is always
// written (the "column omitted ⇒ all 255" shorthand is a read-side
// tolerance for foreign files that wrote the 3-column layout, handled by
// ReadGradient).
func WriteGradient(w io.Writer, colors []RGBA, level int) error {
	rows := make([]gradientRow, len(colors))
	for i, c := range colors {
		rows[i] = gradientRow(c)
	}

	return writeRows(w, rows, level)
}

// ReadGradient decodes a whole-buffer read of a format.Gradient array,
// accepting either the canonical 4-column layout or the alpha-omitted
// 3-column layout (a missing "a" column means all alphas are 255).
func ReadGradient(ra io.ReaderAt, n int64) ([]RGBA, error) {
	pf, err := parquet.OpenFile(io.NewSectionReader(ra, 0, n), n)
	if err != nil {
		return nil, errs.Wrap(errs.NotParquetData, err, "array member does not parse as Parquet")
	}

	if sameColumns(gradientSchema3, pf.Schema()) {
		rows, err := readAllRows[gradientRow3](ra, n)
		if err != nil {
			return nil, err
		}

		out := make([]RGBA, len(rows))
		for i, r := range rows {
			out[i] = RGBA{R: r.R, G: r.G, B: r.B, A: 255}
		}

		return out, nil
	}

	rows, err := readAllRows[gradientRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]RGBA, len(rows))
	for i, r := range rows {
		out[i] = RGBA(r)
	}

	return out, nil
}

// NullableRGBA is a nullable 8-bit-per-channel color, the in-memory shape for
// a format.Color row. ReadColor fills a nil A with 255 when R is set; other
// nil channels read back as nil ("a optional ⇒ 255").
type NullableRGBA struct {
	R, G, B, A *uint8
}

// WriteColor encodes a nullable format.Color array.
func WriteColor(w io.Writer, colors []NullableRGBA, level int) error {
	rows := make([]colorRow, len(colors))
	for i, c := range colors {
		rows[i] = colorRow(c)
	}

	return writeRows(w, rows, level)
}

// ReadColor decodes a whole-buffer read of a format.Color array, defaulting a
// missing alpha channel to 255.
func ReadColor(ra io.ReaderAt, n int64) ([]NullableRGBA, error) {
	rows, err := readAllRows[colorRow](ra, n)
	if err != nil {
		return nil, err
	}

	full := uint8(255)
	out := make([]NullableRGBA, len(rows))
	for i, r := range rows {
		c := NullableRGBA(r)
		if c.R != nil && c.A == nil {
			c.A = &full
		}

		out[i] = c
	}

	return out, nil
}
