// Package omf1 converts a legacy OMF1 project into an OMF2 archive. Since
// OMF1's on-disk binary layout is out of scope for this module
// (it predates OMF2 entirely and is not part of the container/index/array
// contract this repository implements), Project and the types below are the
// conversion boundary: a caller responsible for decoding an actual OMF1 file
// hands this package an already-decoded Project, and Convert drives an OMF2
// writer.Writer from it, applying every OMF1-to-OMF2 semantic mapping this
// package documents. Each OMF1 array is converted to a full OMF2-typed slice
// and passed to the writer in one call (scalar attributes through
// writer.StreamNumbers); arrays are not split into row-group-sized pieces,
// so memory use grows with the largest array.
package omf1

import "time"

// Project is the root of a decoded OMF1 document.
type Project struct {
	Name         string
	Description  string
	DateCreated  time.Time
	DateModified time.Time
	Elements     []*Element
}

// GeometryKind tags which OMF1 geometry variant an Element carries. OMF1's
// volume elements (regular block models) are in scope; free-form/octree
// sub-blocks were an OMF2-only addition and have no OMF1 counterpart.
type GeometryKind uint8

const (
	GeometryUnknown GeometryKind = iota
	GeometryPointSet
	GeometryLineSet
	GeometrySurface
	GeometryBlockModel
)

// Element is an OMF1 geometry plus its attached attributes.
type Element struct {
	Name        string
	Description string
	// Subtype is only meaningful on point/line sets.
	Subtype string
	Color   *[3]uint8

	Kind       GeometryKind
	PointSet   *PointSet
	LineSet    *LineSet
	Surface    *Surface
	BlockModel *BlockModel

	Attributes []*Attribute
}

type PointSet struct {
	Vertices [][3]float64
}

type LineSet struct {
	Vertices [][3]float64
	Segments [][2]uint32
}

type Surface struct {
	Vertices  [][3]float64
	Triangles [][3]uint32
}

// BlockModel is OMF1's regular-grid volume element: an origin, axis-aligned
// block size, and per-axis block counts. OMF1 carried no free-form/regular
// sub-block refinement; those are OMF2-only.
type BlockModel struct {
	Origin    [3]float64
	BlockSize [3]float64
	NumBlocks [3]uint32
}

// Location mirrors index.Location's attachment points that OMF1 attributes
// can target.
type Location uint8

const (
	LocationUnknown Location = iota
	LocationVertices
	LocationPrimitives
	LocationElements
)

// AttributeKind tags which variant of AttributeData an Attribute carries.
type AttributeKind uint8

const (
	AttrUnknown AttributeKind = iota
	AttrScalar
	AttrVector
	AttrText
	AttrDateTime
	AttrMappedData
)

// Attribute is a single OMF1 data array attached to an Element.
type Attribute struct {
	Name     string
	Location Location
	Kind     AttributeKind

	// Scalars holds one value per row for AttrScalar; a NaN entry becomes
	// null on conversion.
	Scalars []float64

	// Vectors holds one 3-vector per row for AttrVector; a NaN component
	// nulls the whole vector on conversion.
	Vectors [][3]float64

	// Texts holds one string per row for AttrText; an empty string becomes
	// null on conversion.
	Texts []string

	// DateTimes holds one RFC 3339 string per row for AttrDateTime; an
	// empty string becomes null, matching Texts. OMF1 stored date-times as
	// strings, not the packed microsecond integer OMF2 uses on disk.
	DateTimes []string

	Mapped *MappedData
}

// StringLegend is one named category-legend whose values are strings (the
// typical "rock type" legend).
type StringLegend struct {
	Name   string
	Values []string
}

// ColorLegend is one named category-legend whose values are display colors.
type ColorLegend struct {
	Name   string
	Values [][3]uint8
}

// MappedData is OMF1's indirect "index into a set of parallel legends"
// attribute, converted into an index.CategoryData.
type MappedData struct {
	// Indices is one entry per row; -1 means null.
	Indices []int64

	StringLegends []StringLegend
	ColorLegends  []ColorLegend
}
