package reader

import (
	"io"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/container"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
)

// resolver implements index.Resolver by decoding directly from the open
// archive, the read-side counterpart to writer.Writer's staged-data
// implementation of the same interface.
type resolver struct {
	cr *container.Reader
}

var _ index.Resolver = (*resolver)(nil)

// open resolves ref to a random-access view of its member plus the
// format.ArrayType it actually declares, failing if the member is missing,
// not stored uncompressed, or its on-disk Parquet schema does not match
// ref.Type.
func (res *resolver) open(ref index.ArrayRef) (format.ArrayType, int64, io.ReaderAt, error) {
	t, ok := format.ParseArrayType(ref.Type)
	if !ok {
		return format.ArrayTypeUnknown, 0, nil, errs.Newf(errs.ArrayTypeWrong, "unrecognized array type %q", ref.Type)
	}

	ra, n, err := res.cr.OpenAt(ref.Member)
	if err != nil {
		return t, 0, nil, err
	}

	if err := arrays.ValidateMember(t, ra, n); err != nil {
		return t, 0, nil, err
	}

	return t, n, ra, nil
}

func (res *resolver) RowCount(ref index.ArrayRef) (int64, error) {
	_, n, ra, err := res.open(ref)
	if err != nil {
		return 0, err
	}

	return arrays.RowCount(ra, n)
}

func (res *resolver) SegmentMaxIndex(ref index.ArrayRef) (uint32, error) {
	_, n, ra, err := res.open(ref)
	if err != nil {
		return 0, err
	}

	segments, err := arrays.ReadSegments(ra, n)
	if err != nil {
		return 0, err
	}

	var max uint32
	for _, s := range segments {
		if s[0] > max {
			max = s[0]
		}
		if s[1] > max {
			max = s[1]
		}
	}

	return max, nil
}

func (res *resolver) TriangleMaxIndex(ref index.ArrayRef) (uint32, error) {
	_, n, ra, err := res.open(ref)
	if err != nil {
		return 0, err
	}

	triangles, err := arrays.ReadTriangles(ra, n)
	if err != nil {
		return 0, err
	}

	var max uint32
	for _, t := range triangles {
		for _, idx := range t {
			if idx > max {
				max = idx
			}
		}
	}

	return max, nil
}

func (res *resolver) IndexValues(ref index.ArrayRef) ([]*uint32, error) {
	_, n, ra, err := res.open(ref)
	if err != nil {
		return nil, err
	}

	return arrays.ReadIndex(ra, n)
}

func (res *resolver) RegularSubblockRows(ref index.ArrayRef) ([]arrays.RegularSubblockRow, error) {
	_, n, ra, err := res.open(ref)
	if err != nil {
		return nil, err
	}

	return arrays.ReadRegularSubblocks(ra, n)
}

func (res *resolver) FreeformSubblockRows(ref index.ArrayRef) ([]index.FreeformCorner, error) {
	t, n, ra, err := res.open(ref)
	if err != nil {
		return nil, err
	}

	switch t {
	case format.FreeformSubblock32:
		rows, err := arrays.ReadFreeformSubblocks[float32](ra, n)
		if err != nil {
			return nil, err
		}

		out := make([]index.FreeformCorner, len(rows))
		for i, r := range rows {
			out[i] = index.FreeformCorner{
				ParentU: r.ParentU, ParentV: r.ParentV, ParentW: r.ParentW,
				Min: [3]float64{float64(r.MinU), float64(r.MinV), float64(r.MinW)},
				Max: [3]float64{float64(r.MaxU), float64(r.MaxV), float64(r.MaxW)},
			}
		}

		return out, nil

	case format.FreeformSubblock64:
		rows, err := arrays.ReadFreeformSubblocks[float64](ra, n)
		if err != nil {
			return nil, err
		}

		out := make([]index.FreeformCorner, len(rows))
		for i, r := range rows {
			out[i] = index.FreeformCorner{
				ParentU: r.ParentU, ParentV: r.ParentV, ParentW: r.ParentW,
				Min: [3]float64{r.MinU, r.MinV, r.MinW},
				Max: [3]float64{r.MaxU, r.MaxV, r.MaxW},
			}
		}

		return out, nil

	default:
		return nil, errs.Newf(errs.ArrayTypeWrong, "array reference is not a freeform subblock array")
	}
}

func (res *resolver) BoundaryValues(ref index.ArrayRef) ([]float64, []bool, error) {
	t, n, ra, err := res.open(ref)
	if err != nil {
		return nil, nil, err
	}

	switch t {
	case format.BoundaryFloat32:
		rows, err := arrays.ReadBoundaries[float32](ra, n)
		if err != nil {
			return nil, nil, err
		}
		values := make([]float64, len(rows))
		inclusive := make([]bool, len(rows))
		for i, r := range rows {
			values[i], inclusive[i] = float64(r.Value), r.Inclusive
		}
		return values, inclusive, nil

	case format.BoundaryFloat64:
		rows, err := arrays.ReadBoundaries[float64](ra, n)
		if err != nil {
			return nil, nil, err
		}
		values := make([]float64, len(rows))
		inclusive := make([]bool, len(rows))
		for i, r := range rows {
			values[i], inclusive[i] = r.Value, r.Inclusive
		}
		return values, inclusive, nil

	case format.BoundaryInt64:
		rows, err := arrays.ReadBoundaries[int64](ra, n)
		if err != nil {
			return nil, nil, err
		}
		values := make([]float64, len(rows))
		inclusive := make([]bool, len(rows))
		for i, r := range rows {
			values[i], inclusive[i] = float64(r.Value), r.Inclusive
		}
		return values, inclusive, nil

	case format.BoundaryDate:
		rows, err := arrays.ReadBoundaries[int32](ra, n)
		if err != nil {
			return nil, nil, err
		}
		values := make([]float64, len(rows))
		inclusive := make([]bool, len(rows))
		for i, r := range rows {
			values[i], inclusive[i] = float64(r.Value), r.Inclusive
		}
		return values, inclusive, nil

	case format.BoundaryDateTime:
		rows, err := arrays.ReadBoundaries[int64](ra, n)
		if err != nil {
			return nil, nil, err
		}
		values := make([]float64, len(rows))
		inclusive := make([]bool, len(rows))
		for i, r := range rows {
			values[i], inclusive[i] = float64(r.Value), r.Inclusive
		}
		return values, inclusive, nil

	default:
		return nil, nil, errs.Newf(errs.ArrayTypeWrong, "array reference is not a boundary array")
	}
}

func (res *resolver) GradientCount(ref index.ArrayRef) (int64, error) {
	return res.RowCount(ref)
}
