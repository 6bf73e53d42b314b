package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/limits"
)

// stubResolver backs Validate with fixed in-memory answers, standing in for
// the writer's staged data / the reader's archive.
type stubResolver struct {
	counts   map[string]int64
	segMax   map[string]uint32
	triMax   map[string]uint32
	indices  map[string][]*uint32
	regular  map[string][]arrays.RegularSubblockRow
	freeform map[string][]FreeformCorner
	bvals    map[string][]float64
	bincl    map[string][]bool
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		counts:   map[string]int64{},
		segMax:   map[string]uint32{},
		triMax:   map[string]uint32{},
		indices:  map[string][]*uint32{},
		regular:  map[string][]arrays.RegularSubblockRow{},
		freeform: map[string][]FreeformCorner{},
		bvals:    map[string][]float64{},
		bincl:    map[string][]bool{},
	}
}

func (s *stubResolver) ref(member, arrayType string, count int64) ArrayRef {
	s.counts[member] = count
	return ArrayRef{Member: member, Type: arrayType, Count: count}
}

func (s *stubResolver) RowCount(ref ArrayRef) (int64, error) {
	n, ok := s.counts[ref.Member]
	if !ok {
		return 0, errs.ErrZipMemberMissing
	}

	return n, nil
}

func (s *stubResolver) SegmentMaxIndex(ref ArrayRef) (uint32, error) {
	return s.segMax[ref.Member], nil
}

func (s *stubResolver) TriangleMaxIndex(ref ArrayRef) (uint32, error) {
	return s.triMax[ref.Member], nil
}

func (s *stubResolver) IndexValues(ref ArrayRef) ([]*uint32, error) {
	return s.indices[ref.Member], nil
}

func (s *stubResolver) RegularSubblockRows(ref ArrayRef) ([]arrays.RegularSubblockRow, error) {
	return s.regular[ref.Member], nil
}

func (s *stubResolver) FreeformSubblockRows(ref ArrayRef) ([]FreeformCorner, error) {
	return s.freeform[ref.Member], nil
}

func (s *stubResolver) BoundaryValues(ref ArrayRef) ([]float64, []bool, error) {
	return s.bvals[ref.Member], s.bincl[ref.Member], nil
}

func (s *stubResolver) GradientCount(ref ArrayRef) (int64, error) {
	return s.RowCount(ref)
}

func validate(t *testing.T, p *Project, res Resolver) *limits.Validator {
	t.Helper()

	v := limits.NewValidator(limits.Default())
	Validate(p, res, v)

	return v
}

func TestValidate_EmptyProjectName(t *testing.T) {
	v := validate(t, &Project{}, newStubResolver())
	assert.True(t, v.HasErrors())
}

func TestValidate_OpacityOutsideUnitInterval(t *testing.T) {
	res := newStubResolver()
	bad := 1.5
	p := &Project{
		Name: "p",
		Elements: []*Element{{
			Name:    "e",
			Opacity: &bad,
			Geometry: Geometry{
				Kind:     GeometryPointSet,
				PointSet: &PointSet{Vertices: res.ref("v", "Vertex64", 3)},
			},
		}},
	}

	v := validate(t, p, res)
	assert.True(t, v.HasErrors())
}

func TestValidate_TriangleIndexOutOfRange(t *testing.T) {
	res := newStubResolver()
	vref := res.ref("v", "Vertex64", 4)
	tref := res.ref("t", "Triangle", 2)
	res.triMax["t"] = 7

	p := &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "e",
			Geometry: Geometry{
				Kind:    GeometrySurface,
				Surface: &Surface{Vertices: vref, Triangles: tref},
			},
		}},
	}

	v := validate(t, p, res)
	require.True(t, v.HasErrors())

	res.triMax["t"] = 3
	v = validate(t, p, res)
	assert.False(t, v.HasErrors())
}

func TestValidate_MissingArrayMember(t *testing.T) {
	res := newStubResolver()
	p := &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "e",
			Geometry: Geometry{
				Kind:     GeometryPointSet,
				PointSet: &PointSet{Vertices: ArrayRef{Member: "ghost", Type: "Vertex64"}},
			},
		}},
	}

	v := validate(t, p, res)
	assert.True(t, v.HasErrors())
}

func gridSurfaceWith(orient Orient2, res *stubResolver) *Project {
	return &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "e",
			Geometry: Geometry{
				Kind: GeometryGridSurface,
				GridSurf: &GridSurface{
					Orient: orient,
					Grid: Grid2{
						Kind:          Grid2Regular,
						RegularSizeU:  1, RegularSizeV: 1,
						RegularCountU: 2, RegularCountV: 2,
					},
				},
			},
		}},
	}
}

func TestValidate_OrientAxesMustBeUnit(t *testing.T) {
	res := newStubResolver()
	p := gridSurfaceWith(Orient2{
		AxisU: [3]float64{2, 0, 0},
		AxisV: [3]float64{0, 1, 0},
	}, res)

	v := validate(t, p, res)
	assert.True(t, v.HasErrors())
}

func TestValidate_OrientAxesMustBePerpendicular(t *testing.T) {
	res := newStubResolver()
	p := gridSurfaceWith(Orient2{
		AxisU: [3]float64{1, 0, 0},
		AxisV: [3]float64{1, 0, 0},
	}, res)

	v := validate(t, p, res)
	assert.True(t, v.HasErrors())
}

func TestValidate_OrientAxesWithinTolerance(t *testing.T) {
	res := newStubResolver()
	p := gridSurfaceWith(Orient2{
		AxisU: [3]float64{1 + 5e-7, 0, 0},
		AxisV: [3]float64{5e-7, 1, 0},
	}, res)

	v := validate(t, p, res)
	assert.False(t, v.HasErrors())
}

func TestValidate_TensorSizesStrictlyPositive(t *testing.T) {
	res := newStubResolver()
	p := &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "e",
			Geometry: Geometry{
				Kind: GeometryGridSurface,
				GridSurf: &GridSurface{
					Orient: Orient2{AxisU: [3]float64{1, 0, 0}, AxisV: [3]float64{0, 1, 0}},
					Grid: Grid2{
						Kind:    Grid2Tensor,
						TensorU: []float64{1, 0, 2},
						TensorV: []float64{1},
					},
				},
			},
		}},
	}

	v := validate(t, p, res)
	assert.True(t, v.HasErrors())
}

func blockModelWith(rows []arrays.RegularSubblockRow, res *stubResolver) *Project {
	rref := res.ref("sb", "RegularSubblock", int64(len(rows)))
	res.regular["sb"] = rows

	return &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "bm",
			Geometry: Geometry{
				Kind: GeometryBlockModel,
				BlockModel: &BlockModel{
					Orient: Orient3{
						AxisU: [3]float64{1, 0, 0},
						AxisV: [3]float64{0, 1, 0},
						AxisW: [3]float64{0, 0, 1},
					},
					Grid: Grid3{
						Kind:         Grid3Regular,
						RegularSize:  [3]float64{1, 1, 1},
						RegularCount: [3]uint32{2, 1, 1},
					},
					Regular: &RegularSubblocks{
						Count: [3]uint32{2, 2, 2},
						Mode:  SubblockModeNone,
						Rows:  rref,
					},
				},
			},
		}},
	}
}

func TestValidate_RegularSubblocksAccepted(t *testing.T) {
	res := newStubResolver()
	rows := []arrays.RegularSubblockRow{
		{ParentU: 0, MinU: 0, MinV: 0, MinW: 0, MaxU: 1, MaxV: 2, MaxW: 1},
		{ParentU: 0, MinU: 1, MinV: 0, MinW: 0, MaxU: 2, MaxV: 2, MaxW: 1},
		{ParentU: 0, MinU: 0, MinV: 0, MinW: 1, MaxU: 2, MaxV: 2, MaxW: 2},
		{ParentU: 1, MinU: 0, MinV: 0, MinW: 0, MaxU: 2, MaxV: 2, MaxW: 2},
	}

	v := validate(t, blockModelWith(rows, res), res)
	assert.False(t, v.HasErrors())
}

func TestValidate_OverlappingSubblocksRejected(t *testing.T) {
	res := newStubResolver()
	rows := []arrays.RegularSubblockRow{
		{ParentU: 0, MinU: 0, MinV: 0, MinW: 0, MaxU: 1, MaxV: 2, MaxW: 1},
		{ParentU: 0, MinU: 0, MinV: 0, MinW: 0, MaxU: 2, MaxV: 2, MaxW: 2},
	}

	v := validate(t, blockModelWith(rows, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_SubblockParentOutsideGrid(t *testing.T) {
	res := newStubResolver()
	rows := []arrays.RegularSubblockRow{
		{ParentU: 5, MinU: 0, MinV: 0, MinW: 0, MaxU: 1, MaxV: 1, MaxW: 1},
	}

	v := validate(t, blockModelWith(rows, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_SubblockCornerBeyondCount(t *testing.T) {
	res := newStubResolver()
	rows := []arrays.RegularSubblockRow{
		{ParentU: 0, MinU: 0, MinV: 0, MinW: 0, MaxU: 3, MaxV: 1, MaxW: 1},
	}

	v := validate(t, blockModelWith(rows, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_SubblockZeroExtent(t *testing.T) {
	res := newStubResolver()
	rows := []arrays.RegularSubblockRow{
		{ParentU: 0, MinU: 1, MinV: 0, MinW: 0, MaxU: 1, MaxV: 1, MaxW: 1},
	}

	v := validate(t, blockModelWith(rows, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_FreeformCornersInUnitBox(t *testing.T) {
	res := newStubResolver()
	fref := res.ref("ff", "FreeformSubblock64", 1)
	res.freeform["ff"] = []FreeformCorner{
		{Min: [3]float64{0, 0, 0}, Max: [3]float64{1.5, 1, 1}},
	}

	p := &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "bm",
			Geometry: Geometry{
				Kind: GeometryBlockModel,
				BlockModel: &BlockModel{
					Orient: Orient3{
						AxisU: [3]float64{1, 0, 0},
						AxisV: [3]float64{0, 1, 0},
						AxisW: [3]float64{0, 0, 1},
					},
					Grid: Grid3{
						Kind:         Grid3Regular,
						RegularSize:  [3]float64{1, 1, 1},
						RegularCount: [3]uint32{1, 1, 1},
					},
					Freeform: &FreeformSubblocks{Rows: fref},
				},
			},
		}},
	}

	v := validate(t, p, res)
	assert.True(t, v.HasErrors())
}

func numberElement(cm *Colormap, res *stubResolver) *Project {
	return &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "e",
			Geometry: Geometry{
				Kind:     GeometryPointSet,
				PointSet: &PointSet{Vertices: res.ref("v", "Vertex64", 4)},
			},
			Attributes: []*Attribute{{
				Name:     "grade",
				Location: LocationVertices,
				Data: AttributeData{
					Kind: DataNumber,
					Number: &NumberData{
						ValueKind: NumberFloat64,
						Values:    res.ref("n", "NumberFloat64", 4),
						Colormap:  cm,
					},
				},
			}},
		}},
	}
}

func TestValidate_DiscreteColormapGradientLength(t *testing.T) {
	res := newStubResolver()
	bref := res.ref("b", "BoundaryFloat64", 4)
	res.bvals["b"] = []float64{1.0, 4.0, 5.5, 7.5}
	res.bincl["b"] = []bool{true, false, false, false}
	gref := res.ref("g", "Gradient", 4)

	cm := &Colormap{Kind: ColormapDiscrete, Boundaries: bref, Gradient: gref}
	v := validate(t, numberElement(cm, res), res)
	require.True(t, v.HasErrors())

	res.counts["g"] = 5
	v = validate(t, numberElement(cm, res), res)
	assert.False(t, v.HasErrors())
}

func TestValidate_BoundariesStrictlyIncreasing(t *testing.T) {
	res := newStubResolver()
	bref := res.ref("b", "BoundaryFloat64", 3)
	res.bvals["b"] = []float64{1, 3, 3}
	res.bincl["b"] = []bool{false, false, false}
	gref := res.ref("g", "Gradient", 4)

	cm := &Colormap{Kind: ColormapDiscrete, Boundaries: bref, Gradient: gref}
	v := validate(t, numberElement(cm, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_ContinuousColormapMinBelowMax(t *testing.T) {
	res := newStubResolver()
	gref := res.ref("g", "Gradient", 16)

	cm := &Colormap{Kind: ColormapContinuous, Min: 5, Max: 5, Gradient: gref}
	v := validate(t, numberElement(cm, res), res)
	assert.True(t, v.HasErrors())
}

func categoryElement(cd *CategoryData, res *stubResolver) *Project {
	return &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "e",
			Geometry: Geometry{
				Kind:     GeometryPointSet,
				PointSet: &PointSet{Vertices: res.ref("v", "Vertex64", 4)},
			},
			Attributes: []*Attribute{{
				Name:     "rock",
				Location: LocationVertices,
				Data:     AttributeData{Kind: DataCategory, Category: cd},
			}},
		}},
	}
}

func TestValidate_CategoryNeedsAtLeastOneName(t *testing.T) {
	res := newStubResolver()
	cd := &CategoryData{Indices: res.ref("i", "Index", 4)}

	v := validate(t, categoryElement(cd, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_CategoryColorsLengthMustMatchNames(t *testing.T) {
	res := newStubResolver()
	cd := &CategoryData{
		Indices: res.ref("i", "Index", 4),
		Names:   []string{"a", "b", "c"},
		Colors:  []RGB{{R: 1}},
	}

	v := validate(t, categoryElement(cd, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_CategoryIndexOutOfRange(t *testing.T) {
	res := newStubResolver()
	iref := res.ref("i", "Index", 2)
	three := uint32(3)
	res.indices["i"] = []*uint32{nil, &three}

	cd := &CategoryData{Indices: iref, Names: []string{"a", "b"}}
	v := validate(t, categoryElement(cd, res), res)
	assert.True(t, v.HasErrors())
}

func TestValidate_CategorySubAttributeRules(t *testing.T) {
	res := newStubResolver()
	iref := res.ref("i", "Index", 4)

	// Wrong location.
	cd := &CategoryData{
		Indices: iref,
		Names:   []string{"a", "b"},
		SubAttributes: []*Attribute{{
			Name:     "ids",
			Location: LocationVertices,
			Data: AttributeData{
				Kind:   DataNumber,
				Number: &NumberData{ValueKind: NumberInt64, Values: res.ref("s", "NumberInt64", 2)},
			},
		}},
	}
	v := validate(t, categoryElement(cd, res), res)
	require.True(t, v.HasErrors())

	// Wrong length.
	cd.SubAttributes[0].Location = LocationCategories
	res.counts["s"] = 5
	v = validate(t, categoryElement(cd, res), res)
	require.True(t, v.HasErrors())

	// Correct.
	res.counts["s"] = 2
	v = validate(t, categoryElement(cd, res), res)
	assert.False(t, v.HasErrors())
}

func TestValidate_LocationMustFitGeometry(t *testing.T) {
	res := newStubResolver()
	p := &Project{
		Name: "p",
		Elements: []*Element{{
			Name: "e",
			Geometry: Geometry{
				Kind:     GeometryPointSet,
				PointSet: &PointSet{Vertices: res.ref("v", "Vertex64", 4)},
			},
			Attributes: []*Attribute{{
				Name:     "per-segment",
				Location: LocationPrimitives,
				Data: AttributeData{
					Kind:    DataBoolean,
					Boolean: &BooleanData{Values: res.ref("b", "Boolean", 4)},
				},
			}},
		}},
	}

	v := validate(t, p, res)
	assert.True(t, v.HasErrors())
}

func TestValidate_CompositeDepthCap(t *testing.T) {
	res := newStubResolver()

	leaf := &Element{
		Name: "leaf",
		Geometry: Geometry{
			Kind:     GeometryPointSet,
			PointSet: &PointSet{Vertices: res.ref("v", "Vertex64", 1)},
		},
	}

	// Nest one level past the documented cap.
	node := leaf
	for i := 0; i < limits.MaxCompositeDepth+1; i++ {
		node = &Element{
			Name: "composite",
			Geometry: Geometry{
				Kind:      GeometryComposite,
				Composite: &Composite{Elements: []*Element{node}},
			},
		}
	}

	p := &Project{Name: "p", Elements: []*Element{node}}
	v := validate(t, p, res)
	require.True(t, v.HasErrors())

	// At the cap exactly, the tree is accepted.
	node = leaf
	for i := 0; i < limits.MaxCompositeDepth; i++ {
		node = &Element{
			Name: "composite",
			Geometry: Geometry{
				Kind:      GeometryComposite,
				Composite: &Composite{Elements: []*Element{node}},
			},
		}
	}

	p = &Project{Name: "p", Elements: []*Element{node}}
	v = validate(t, p, res)
	assert.False(t, v.HasErrors())
}
