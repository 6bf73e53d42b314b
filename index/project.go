// Package index defines the JSON document schema: the in-memory tree rooted
// at Project, serialized as index.json.gz inside the container. The struct
// tags below are that JSON schema made concrete; Writer and Reader share
// these types so a round-trip never needs an intermediate representation.
package index

// Project is the root of the index tree.
type Project struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Author      string         `json:"author,omitempty"`
	CRS         string         `json:"coordinate_reference_system,omitempty"`
	// CreatedAt is microseconds since Unix epoch, UTC.
	CreatedAt int64          `json:"date_created"`
	Origin    [3]float64     `json:"origin"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Elements  []*Element     `json:"elements"`
}

// Element is an addressable geometry with attached data.
type Element struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Color       *RGB         `json:"color,omitempty"`
	Opacity     *float64     `json:"opacity,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Geometry    Geometry     `json:"geometry"`
	Attributes  []*Attribute `json:"attributes,omitempty"`
}

// RGB is a non-nullable 8-bit color, used for element and category display
// color (distinct from arrays.RGBA, which is the array-row shape).
type RGB struct {
	R, G, B uint8
}

// GeometryKind tags which variant a Geometry holds.
type GeometryKind uint8

const (
	GeometryUnknown GeometryKind = iota
	GeometryPointSet
	GeometryLineSet
	GeometrySurface
	GeometryGridSurface
	GeometryBlockModel
	GeometryComposite
)

// Geometry is a tagged union over the six geometry variants. Exactly
// one of the typed fields is non-nil, selected by Kind.
type Geometry struct {
	Kind GeometryKind `json:"kind"`

	PointSet   *PointSet   `json:"point_set,omitempty"`
	LineSet    *LineSet    `json:"line_set,omitempty"`
	Surface    *Surface    `json:"surface,omitempty"`
	GridSurf   *GridSurface `json:"grid_surface,omitempty"`
	BlockModel *BlockModel `json:"block_model,omitempty"`
	Composite  *Composite  `json:"composite,omitempty"`
}

// ArrayRef is a reference to one archive member: its name, declared type and
// length, and the compressed (on-disk) byte size.
type ArrayRef struct {
	Member         string `json:"member"`
	Type           string `json:"type"`
	Count          int64  `json:"count"`
	CompressedSize int64  `json:"compressed_size"`
}

// PointSet is vertices only.
type PointSet struct {
	Origin   [3]float64 `json:"origin"`
	Vertices ArrayRef   `json:"vertices"`
}

// LineSet is vertices plus segment index pairs.
type LineSet struct {
	Origin   [3]float64 `json:"origin"`
	Vertices ArrayRef   `json:"vertices"`
	Segments ArrayRef   `json:"segments"`
}

// Surface is vertices plus triangle index triples.
type Surface struct {
	Origin    [3]float64 `json:"origin"`
	Vertices  ArrayRef   `json:"vertices"`
	Triangles ArrayRef   `json:"triangles"`
}

// Orient2 is an origin plus two orthonormal axes in 3D.
type Orient2 struct {
	Origin [3]float64 `json:"origin"`
	AxisU  [3]float64 `json:"axis_u"`
	AxisV  [3]float64 `json:"axis_v"`
}

// Orient3 is an origin plus three orthonormal axes.
type Orient3 struct {
	Origin [3]float64 `json:"origin"`
	AxisU  [3]float64 `json:"axis_u"`
	AxisV  [3]float64 `json:"axis_v"`
	AxisW  [3]float64 `json:"axis_w"`
}

// Grid2Kind tags whether a GridSurface's grid is regular or tensor.
type Grid2Kind uint8

const (
	Grid2Unknown Grid2Kind = iota
	Grid2Regular
	Grid2Tensor
)

// Grid2 is a 2D grid: either a uniform cell size+count (regular) or explicit
// per-row/column cell sizes (tensor).
type Grid2 struct {
	Kind Grid2Kind `json:"kind"`

	RegularSizeU  float64 `json:"regular_size_u,omitempty"`
	RegularSizeV  float64 `json:"regular_size_v,omitempty"`
	RegularCountU uint32  `json:"regular_count_u,omitempty"`
	RegularCountV uint32  `json:"regular_count_v,omitempty"`

	TensorU []float64 `json:"tensor_u,omitempty"`
	TensorV []float64 `json:"tensor_v,omitempty"`
}

// GridSurface is a 2D grid of vertical offsets from an oriented plane.
type GridSurface struct {
	Orient  Orient2   `json:"orient"`
	Grid    Grid2     `json:"grid"`
	Heights *ArrayRef `json:"heights,omitempty"`
}

// Grid3Kind tags whether a BlockModel's grid is regular or tensor.
type Grid3Kind uint8

const (
	Grid3Unknown Grid3Kind = iota
	Grid3Regular
	Grid3Tensor
)

// Grid3 is a 3D grid of parent blocks: either uniform cell size+count
// (regular) or explicit per-axis cell sizes (tensor).
type Grid3 struct {
	Kind Grid3Kind `json:"kind"`

	RegularSize  [3]float64 `json:"regular_size,omitempty"`
	RegularCount [3]uint32  `json:"regular_count,omitempty"`

	TensorU []float64 `json:"tensor_u,omitempty"`
	TensorV []float64 `json:"tensor_v,omitempty"`
	TensorW []float64 `json:"tensor_w,omitempty"`
}

// SubblockMode restricts the layout of regular sub-blocks within their
// parent.
type SubblockMode uint8

const (
	SubblockModeNone SubblockMode = iota
	SubblockModeOctree
	SubblockModeFull
)

func (m SubblockMode) String() string {
	switch m {
	case SubblockModeOctree:
		return "octree"
	case SubblockModeFull:
		return "full"
	default:
		return "none"
	}
}

// RegularSubblocks declares the shared sub-grid count every parent block may
// subdivide into, and the layout mode constraining which corners are valid.
type RegularSubblocks struct {
	Count [3]uint32    `json:"count"`
	Mode  SubblockMode `json:"mode"`
	Rows  ArrayRef     `json:"rows"` // format.RegularSubblock rows
}

// FreeformSubblocks declares arbitrary axis-aligned cuboids within each
// parent block, corners expressed as [0,1] fractions.
type FreeformSubblocks struct {
	Rows ArrayRef `json:"rows"` // format.FreeformSubblock32/64 rows
}

// BlockModel is a 3D grid of parent blocks with optional sub-block
// refinement.
type BlockModel struct {
	Orient    Orient3            `json:"orient"`
	Grid      Grid3              `json:"grid"`
	Regular   *RegularSubblocks  `json:"regular_subblocks,omitempty"`
	Freeform  *FreeformSubblocks `json:"freeform_subblocks,omitempty"`
}

// Composite is an ordered list of sub-elements (recursive).
type Composite struct {
	Elements []*Element `json:"elements"`
}

// Location identifies where an attribute attaches on its element: Vertices,
// Primitives, Subblocks, Elements, Projected, or Categories.
type Location uint8

const (
	LocationUnknown Location = iota
	LocationVertices
	LocationPrimitives
	LocationSubblocks
	LocationElements
	LocationProjected
	LocationCategories
)

func (l Location) String() string {
	switch l {
	case LocationVertices:
		return "vertices"
	case LocationPrimitives:
		return "primitives"
	case LocationSubblocks:
		return "subblocks"
	case LocationElements:
		return "elements"
	case LocationProjected:
		return "projected"
	case LocationCategories:
		return "categories"
	default:
		return "unknown"
	}
}

// Attribute is typed data attached to an element at a Location.
type Attribute struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Units       string         `json:"units,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Location    Location       `json:"location"`
	Data        AttributeData  `json:"data"`
}

// AttributeDataKind tags which variant AttributeData holds.
type AttributeDataKind uint8

const (
	DataUnknown AttributeDataKind = iota
	DataBoolean
	DataVector2
	DataVector3
	DataText
	DataColor
	DataNumber
	DataCategory
	DataMappedTexture
	DataProjectedTexture
)

// AttributeData is a tagged union over the nine attribute-data variants.
// Exactly one typed field is non-nil, selected by Kind.
type AttributeData struct {
	Kind AttributeDataKind `json:"kind"`

	Boolean          *BooleanData          `json:"boolean,omitempty"`
	Vector2          *VectorData           `json:"vector2,omitempty"`
	Vector3          *VectorData           `json:"vector3,omitempty"`
	Text             *TextData             `json:"text,omitempty"`
	Color            *ColorData            `json:"color,omitempty"`
	Number           *NumberData           `json:"number,omitempty"`
	Category         *CategoryData         `json:"category,omitempty"`
	MappedTexture    *MappedTextureData    `json:"mapped_texture,omitempty"`
	ProjectedTexture *ProjectedTextureData `json:"projected_texture,omitempty"`
}

// BooleanData is a nullable array.Boolean attribute.
type BooleanData struct {
	Values ArrayRef `json:"values"`
}

// VectorData is a nullable vector2 or vector3 attribute; Width selects
// float32 vs float64 storage ("32" or "64").
type VectorData struct {
	Width  int      `json:"width"`
	Values ArrayRef `json:"values"`
}

// TextData is a nullable array.Text attribute.
type TextData struct {
	Values ArrayRef `json:"values"`
}

// ColorData is a nullable array.Color (RGBA8) attribute.
type ColorData struct {
	Values ArrayRef `json:"values"`
}

// NumberKind tags the scalar representation a NumberData column stores.
type NumberKind uint8

const (
	NumberUnknown NumberKind = iota
	NumberFloat32
	NumberFloat64
	NumberInt64
	NumberDate
	NumberDateTime
)

// NumberData is a nullable scalar attribute, optionally paired with a
// Colormap for display.
type NumberData struct {
	ValueKind NumberKind `json:"value_kind"`
	Values    ArrayRef   `json:"values"`
	Colormap  *Colormap  `json:"colormap,omitempty"`
}

// CategoryData is an index array into an ordered list of names, with
// optional colors and ordered sub-attributes (each at LocationCategories,
// with one entry per name).
type CategoryData struct {
	Indices        ArrayRef     `json:"indices"`
	Names          []string     `json:"names"`
	Colors         []RGB        `json:"colors,omitempty"`
	SubAttributes  []*Attribute `json:"sub_attributes,omitempty"`
}

// MappedTextureData maps a shared image onto vertices via per-vertex UV
// coordinates.
type MappedTextureData struct {
	Image      string   `json:"image"` // archive member name
	TexWidth   int      `json:"tex_width"`
	Texcoords  ArrayRef `json:"texcoords"`
}

// ProjectedTextureData projects an image onto the element through an
// oriented rectangle.
type ProjectedTextureData struct {
	Image  string  `json:"image"` // archive member name
	Orient Orient2 `json:"orient"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ColormapKind tags whether a Colormap is continuous or discrete.
type ColormapKind uint8

const (
	ColormapUnknown ColormapKind = iota
	ColormapContinuous
	ColormapDiscrete
)

// Colormap is attached to a NumberData for display purposes.
type Colormap struct {
	Kind ColormapKind `json:"kind"`

	// Continuous.
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`

	// Discrete: boundaries is a Parquet BoundaryXxx array whose length
	// must be |Gradient|-1; Gradient is a format.Gradient array.
	Boundaries ArrayRef `json:"boundaries,omitempty"`

	Gradient ArrayRef `json:"gradient"`
}
