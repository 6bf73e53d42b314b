package writer

import (
	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/index"
)

// Writer implements index.Resolver against its own staged in-memory data:
// Finalize validates the accumulated index without reading back from the
// archive it is still writing.
var _ index.Resolver = (*Writer)(nil)

func (w *Writer) lookup(ref index.ArrayRef) (stagedArray, error) {
	s, ok := w.staged[ref.Member]
	if !ok {
		return stagedArray{}, errs.Newf(errs.ZipMemberMissing, "array reference %q was never staged on this writer", ref.Member)
	}

	if s.arrayType.String() != ref.Type {
		return stagedArray{}, errs.Newf(errs.ArrayTypeWrong, "array reference %q declares type %s but was staged as %s", ref.Member, ref.Type, s.arrayType)
	}

	return s, nil
}

func (w *Writer) RowCount(ref index.ArrayRef) (int64, error) {
	s, err := w.lookup(ref)
	if err != nil {
		return 0, err
	}

	return s.rowCount, nil
}

func (w *Writer) SegmentMaxIndex(ref index.ArrayRef) (uint32, error) {
	s, err := w.lookup(ref)
	if err != nil {
		return 0, err
	}

	return s.segmentMax, nil
}

func (w *Writer) TriangleMaxIndex(ref index.ArrayRef) (uint32, error) {
	s, err := w.lookup(ref)
	if err != nil {
		return 0, err
	}

	return s.triangleMax, nil
}

func (w *Writer) IndexValues(ref index.ArrayRef) ([]*uint32, error) {
	s, err := w.lookup(ref)
	if err != nil {
		return nil, err
	}

	return s.indexValues, nil
}

func (w *Writer) RegularSubblockRows(ref index.ArrayRef) ([]arrays.RegularSubblockRow, error) {
	s, err := w.lookup(ref)
	if err != nil {
		return nil, err
	}

	return s.regularRows, nil
}

func (w *Writer) FreeformSubblockRows(ref index.ArrayRef) ([]index.FreeformCorner, error) {
	s, err := w.lookup(ref)
	if err != nil {
		return nil, err
	}

	return s.freeformRows, nil
}

func (w *Writer) BoundaryValues(ref index.ArrayRef) ([]float64, []bool, error) {
	s, err := w.lookup(ref)
	if err != nil {
		return nil, nil, err
	}

	return s.boundaryValues, s.boundaryInclusive, nil
}

func (w *Writer) GradientCount(ref index.ArrayRef) (int64, error) {
	return w.RowCount(ref)
}
