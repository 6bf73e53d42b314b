package arrays

import (
	"bytes"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
)

// gradientSchema4 and gradientSchema3 are the two accepted on-disk layouts
// for format.Gradient: the canonical 4-column one WriteGradient always
// emits, and the alpha-omitted 3-column one a foreign writer may use
// instead (a missing "a" column means all alphas are 255).
var gradientSchema4 = parquet.SchemaOf(gradientRow{})
var gradientSchema3 = parquet.SchemaOf(gradientRow3{})

// matchesCatalogSchema reports whether got is an acceptable on-disk schema
// for t. Every type other than format.Gradient must match schemaFor(t)
// exactly; format.Gradient additionally accepts the alpha-omitted 3-column
// layout.
func matchesCatalogSchema(t format.ArrayType, got *parquet.Schema) (bool, error) {
	if t == format.Gradient {
		return sameColumns(gradientSchema4, got) || sameColumns(gradientSchema3, got), nil
	}

	want, err := schemaFor(t)
	if err != nil {
		return false, err
	}

	return sameColumns(want, got), nil
}

// sameColumns compares two schemas on what the wire contract actually pins:
// column names in order, physical type, and REQUIRED vs OPTIONAL. Root node
// names are ignored (a foreign writer names its message after its own
// types).
func sameColumns(want, got *parquet.Schema) bool {
	wf, gf := want.Fields(), got.Fields()
	if len(wf) != len(gf) {
		return false
	}

	for i := range wf {
		w, g := wf[i], gf[i]
		if w.Name() != g.Name() {
			return false
		}
		if !w.Leaf() || !g.Leaf() {
			return false
		}
		if w.Optional() != g.Optional() || w.Repeated() != g.Repeated() {
			return false
		}
		if w.Type().Kind() != g.Type().Kind() {
			return false
		}
	}

	return true
}

// schemaFor returns the Parquet schema a catalog member must match, built
// from the same row type the typed Read/Write functions use, so a passthrough
// write can be checked against exactly the schema a typed reader would expect.
func schemaFor(t format.ArrayType) (*parquet.Schema, error) {
	switch t {
	case format.Scalar32:
		return parquet.SchemaOf(scalarRow[float32]{}), nil
	case format.Scalar64:
		return parquet.SchemaOf(scalarRow[float64]{}), nil
	case format.Vertex32:
		return parquet.SchemaOf(vertexRow[float32]{}), nil
	case format.Vertex64:
		return parquet.SchemaOf(vertexRow[float64]{}), nil
	case format.Segment:
		return parquet.SchemaOf(segmentRow{}), nil
	case format.Triangle:
		return parquet.SchemaOf(triangleRow{}), nil
	case format.Name:
		return parquet.SchemaOf(nameRow{}), nil
	case format.Gradient:
		return parquet.SchemaOf(gradientRow{}), nil
	case format.Texcoord32:
		return parquet.SchemaOf(texcoordRow[float32]{}), nil
	case format.Texcoord64:
		return parquet.SchemaOf(texcoordRow[float64]{}), nil
	case format.BoundaryFloat32:
		return parquet.SchemaOf(boundaryRow[float32]{}), nil
	case format.BoundaryFloat64:
		return parquet.SchemaOf(boundaryRow[float64]{}), nil
	case format.BoundaryInt64, format.BoundaryDateTime:
		return parquet.SchemaOf(boundaryRow[int64]{}), nil
	case format.BoundaryDate:
		return parquet.SchemaOf(boundaryRow[int32]{}), nil
	case format.RegularSubblock:
		return parquet.SchemaOf(regularSubblockRow{}), nil
	case format.FreeformSubblock32:
		return parquet.SchemaOf(freeformSubblockRow[float32]{}), nil
	case format.FreeformSubblock64:
		return parquet.SchemaOf(freeformSubblockRow[float64]{}), nil
	case format.NumberFloat32:
		return parquet.SchemaOf(numberRow[float32]{}), nil
	case format.NumberFloat64:
		return parquet.SchemaOf(numberRow[float64]{}), nil
	case format.NumberInt64, format.NumberDateTime:
		return parquet.SchemaOf(numberRow[int64]{}), nil
	case format.NumberDate:
		return parquet.SchemaOf(numberRow[int32]{}), nil
	case format.Index:
		return parquet.SchemaOf(indexRow{}), nil
	case format.Vector32x2:
		return parquet.SchemaOf(vector2Row[float32]{}), nil
	case format.Vector64x2:
		return parquet.SchemaOf(vector2Row[float64]{}), nil
	case format.Vector32x3:
		return parquet.SchemaOf(vector3Row[float32]{}), nil
	case format.Vector64x3:
		return parquet.SchemaOf(vector3Row[float64]{}), nil
	case format.Text:
		return parquet.SchemaOf(textRow{}), nil
	case format.Boolean:
		return parquet.SchemaOf(booleanRow{}), nil
	case format.Color:
		return parquet.SchemaOf(colorRow{}), nil
	default:
		return nil, errs.Newf(errs.ArrayTypeWrong, "no schema registered for array type %s", t)
	}
}

// ReadBytes returns the raw, still-Parquet-encoded bytes of an archive
// member, for callers that only need to copy an array through unmodified
// ("bytes passthrough" read, e.g. the OMF1 converter and cat tools that
// never inspect row contents).
func ReadBytes(ra io.ReaderAt, n int64) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := ra.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, errs.Wrap(errs.IoError, err, "failed to read array member")
	}

	return buf, nil
}

// WriteBytes copies raw, already-Parquet-encoded bytes into an archive
// member, after verifying they parse as Parquet and match the schema
// declared for t. It does not re-encode the data, so compression level is
// whatever the source bytes already carry ("bytes passthrough" write).
func WriteBytes(w io.Writer, t format.ArrayType, data []byte) error {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errs.Wrap(errs.NotParquetData, err, "passthrough array bytes do not parse as Parquet")
	}

	ok, err := matchesCatalogSchema(t, pf.Schema())
	if err != nil {
		return err
	}

	if !ok {
		return errs.Newf(errs.ParquetSchemaMismatch, "passthrough bytes schema does not match %s", t)
	}

	if _, err := w.Write(data); err != nil {
		return errs.Wrap(errs.IoError, err, "failed to write passthrough array bytes")
	}

	return nil
}
