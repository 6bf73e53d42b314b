package index

import "github.com/omf2/omf2/arrays"

// FreeformCorner is the validator's unified view of one free-form sub-block
// row, widened to float64 regardless of whether the underlying array is
// format.FreeformSubblock32 or FreeformSubblock64 (the validator only ever
// compares these values, so the widening costs no precision that matters).
type FreeformCorner struct {
	ParentU, ParentV, ParentW uint32
	Min, Max                  [3]float64
}

// Resolver lets Validate cross-check ArrayRef-bearing fields against the
// actual array content without the index package depending on the container
// or Parquet transport directly. Writer and Reader each implement this: the
// Writer against its own staged in-memory rows (finalize-time validation),
// the Reader by decoding from the open archive.
type Resolver interface {
	// RowCount returns the declared array's row count, failing if the member
	// is missing or its on-disk schema does not match ref.Type.
	RowCount(ref ArrayRef) (int64, error)

	// SegmentMaxIndex returns the largest vertex index referenced by a
	// Segment array (or 0 if it has no rows).
	SegmentMaxIndex(ref ArrayRef) (uint32, error)

	// TriangleMaxIndex returns the largest vertex index referenced by a
	// Triangle array.
	TriangleMaxIndex(ref ArrayRef) (uint32, error)

	// IndexValues decodes a nullable Index array, for category-index bounds
	// checking against the category's name list.
	IndexValues(ref ArrayRef) ([]*uint32, error)

	// RegularSubblockRows decodes a RegularSubblock array.
	RegularSubblockRows(ref ArrayRef) ([]arrays.RegularSubblockRow, error)

	// FreeformSubblockRows decodes a FreeformSubblock32/64 array, widened to
	// FreeformCorner regardless of stored precision.
	FreeformSubblockRows(ref ArrayRef) ([]FreeformCorner, error)

	// BoundaryValues decodes a discrete colormap's boundary array, widened to
	// float64 for ordering comparisons, alongside its inclusive flags.
	BoundaryValues(ref ArrayRef) ([]float64, []bool, error)

	// GradientCount returns a Gradient array's row count.
	GradientCount(ref ArrayRef) (int64, error)
}
