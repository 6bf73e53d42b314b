// Package arrays implements the array codec: a fixed catalog of typed
// arrays, each encoded as a self-contained Parquet file inside the archive
// with a schema determined by its type. Whole-buffer and streaming
// encode/decode share one set of row definitions, so the two paths can
// never drift apart on the wire.
package arrays

// Real-valued row types. Non-nullable: every column is Parquet REQUIRED.

type scalarRow[T float32 | float64] struct {
	Value T `parquet:"value"`
}

type vertexRow[T float32 | float64] struct {
	X T `parquet:"x"`
	Y T `parquet:"y"`
	Z T `parquet:"z"`
}

type segmentRow struct {
	A uint32 `parquet:"a"`
	B uint32 `parquet:"b"`
}

type triangleRow struct {
	A uint32 `parquet:"a"`
	B uint32 `parquet:"b"`
	C uint32 `parquet:"c"`
}

type nameRow struct {
	Name string `parquet:"name"`
}

type gradientRow struct {
	R uint8 `parquet:"r"`
	G uint8 `parquet:"g"`
	B uint8 `parquet:"b"`
	A uint8 `parquet:"a"`
}

// gradientRow3 is the alpha-omitted Gradient layout: a foreign writer may
// skip the constant-255 alpha column entirely rather than writing it out.
type gradientRow3 struct {
	R uint8 `parquet:"r"`
	G uint8 `parquet:"g"`
	B uint8 `parquet:"b"`
}

type texcoordRow[T float32 | float64] struct {
	U T `parquet:"u"`
	V T `parquet:"v"`
}

type boundaryRow[T float32 | float64 | int64 | int32] struct {
	Value     T    `parquet:"value"`
	Inclusive bool `parquet:"inclusive"`
}

type regularSubblockRow struct {
	ParentU uint32 `parquet:"parent_u"`
	ParentV uint32 `parquet:"parent_v"`
	ParentW uint32 `parquet:"parent_w"`
	MinU    uint32 `parquet:"min_u"`
	MinV    uint32 `parquet:"min_v"`
	MinW    uint32 `parquet:"min_w"`
	MaxU    uint32 `parquet:"max_u"`
	MaxV    uint32 `parquet:"max_v"`
	MaxW    uint32 `parquet:"max_w"`
}

type freeformSubblockRow[T float32 | float64] struct {
	ParentU uint32 `parquet:"parent_u"`
	ParentV uint32 `parquet:"parent_v"`
	ParentW uint32 `parquet:"parent_w"`
	MinU    T      `parquet:"min_u"`
	MinV    T      `parquet:"min_v"`
	MinW    T      `parquet:"min_w"`
	MaxU    T      `parquet:"max_u"`
	MaxV    T      `parquet:"max_v"`
	MaxW    T      `parquet:"max_w"`
}

// Nullable row types. Every column is Parquet OPTIONAL (definition-level).

type numberRow[T float32 | float64 | int64 | int32] struct {
	Value *T `parquet:"value,optional"`
}

type indexRow struct {
	Index *uint32 `parquet:"index,optional"`
}

type vector2Row[T float32 | float64] struct {
	X *T `parquet:"x,optional"`
	Y *T `parquet:"y,optional"`
}

type vector3Row[T float32 | float64] struct {
	X *T `parquet:"x,optional"`
	Y *T `parquet:"y,optional"`
	Z *T `parquet:"z,optional"`
}

type textRow struct {
	Text *string `parquet:"text,optional"`
}

type booleanRow struct {
	Value *bool `parquet:"value,optional"`
}

type colorRow struct {
	R *uint8 `parquet:"r,optional"`
	G *uint8 `parquet:"g,optional"`
	B *uint8 `parquet:"b,optional"`
	A *uint8 `parquet:"a,optional"`
}

// Date arrays store their value column as int32 day counts and DateTime
// arrays as int64 microsecond counts (format.Date/format.DateTime convert to
// and from these at the catalog layer); NumberInt64 reuses the same int64
// instantiation as NumberDateTime since the Parquet column layout is
// identical; the two are distinguished only by their format.ArrayType tag,
// not by the Go row type.
