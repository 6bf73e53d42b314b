// Package format holds the wire-level constants shared by every OMF2 package:
// the closed array-type catalog and the index version scheme. It is a
// dependency-free leaf that every other package imports for its enums.
package format

// ArrayType is the closed catalog of array payloads a Parquet archive member can
// hold. The schema for each value is fixed by its type and never varies at
// runtime.
type ArrayType uint8

const (
	ArrayTypeUnknown ArrayType = iota

	Scalar32
	Scalar64
	Vertex32
	Vertex64
	Segment
	Triangle
	Name
	Gradient
	Texcoord32
	Texcoord64
	BoundaryFloat32
	BoundaryFloat64
	BoundaryInt64
	BoundaryDate
	BoundaryDateTime
	RegularSubblock
	FreeformSubblock32
	FreeformSubblock64
	NumberFloat32
	NumberFloat64
	NumberInt64
	NumberDate
	NumberDateTime
	Index
	Vector32x2
	Vector32x3
	Vector64x2
	Vector64x3
	Text
	Boolean
	Color
)

// String returns the catalog name used in Parquet-schema-mismatch error messages.
func (t ArrayType) String() string {
	switch t {
	case Scalar32:
		return "Scalar32"
	case Scalar64:
		return "Scalar64"
	case Vertex32:
		return "Vertex32"
	case Vertex64:
		return "Vertex64"
	case Segment:
		return "Segment"
	case Triangle:
		return "Triangle"
	case Name:
		return "Name"
	case Gradient:
		return "Gradient"
	case Texcoord32:
		return "Texcoord32"
	case Texcoord64:
		return "Texcoord64"
	case BoundaryFloat32:
		return "BoundaryFloat32"
	case BoundaryFloat64:
		return "BoundaryFloat64"
	case BoundaryInt64:
		return "BoundaryInt64"
	case BoundaryDate:
		return "BoundaryDate"
	case BoundaryDateTime:
		return "BoundaryDateTime"
	case RegularSubblock:
		return "RegularSubblock"
	case FreeformSubblock32:
		return "FreeformSubblock32"
	case FreeformSubblock64:
		return "FreeformSubblock64"
	case NumberFloat32:
		return "NumberFloat32"
	case NumberFloat64:
		return "NumberFloat64"
	case NumberInt64:
		return "NumberInt64"
	case NumberDate:
		return "NumberDate"
	case NumberDateTime:
		return "NumberDateTime"
	case Index:
		return "Index"
	case Vector32x2:
		return "Vector32x2"
	case Vector32x3:
		return "Vector32x3"
	case Vector64x2:
		return "Vector64x2"
	case Vector64x3:
		return "Vector64x3"
	case Text:
		return "Text"
	case Boolean:
		return "Boolean"
	case Color:
		return "Color"
	default:
		return "Unknown"
	}
}

// ParseArrayType inverts String, used to recover the catalog type a
// persisted ArrayRef's Type string names.
func ParseArrayType(name string) (ArrayType, bool) {
	for t := Scalar32; t <= Color; t++ {
		if t.String() == name {
			return t, true
		}
	}

	return ArrayTypeUnknown, false
}

// Nullable reports whether the array type's value column uses Parquet OPTIONAL
// (definition-level) encoding.
func (t ArrayType) Nullable() bool {
	switch t {
	case NumberFloat32, NumberFloat64, NumberInt64, NumberDate, NumberDateTime,
		Index, Vector32x2, Vector32x3, Vector64x2, Vector64x3, Text, Boolean, Color:
		return true
	default:
		return false
	}
}
