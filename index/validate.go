package index

import (
	"fmt"
	"math"

	"github.com/omf2/omf2/limits"
)

// axisTolerance is the absolute tolerance this module applies to "unit
// vector" and "mutually perpendicular" checks on Orient2/Orient3 axes. OMF2
// leaves the exact tolerance unspecified; 1e-6 is chosen and documented here
// as this module's resolution of that.
const axisTolerance = 1e-6

// Validate walks p and records every violation of its invariants into v,
// resolving ArrayRef fields through res. Both Writer.Finalize and Reader's
// project-load step call this with their own Resolver implementation.
func Validate(p *Project, res Resolver, v *limits.Validator) {
	if p == nil {
		v.Errorf("", "project is nil")
		return
	}

	if p.Name == "" {
		v.Errorf("name", "project name must not be empty")
	}

	for i, el := range p.Elements {
		validateElement(fmt.Sprintf("elements[%d]", i), el, res, v)
	}
}

func validateElement(path string, el *Element, res Resolver, v *limits.Validator) {
	if el == nil {
		v.Errorf(path, "element is nil")
		return
	}

	if el.Opacity != nil && (*el.Opacity < 0 || *el.Opacity > 1) {
		v.Errorf(path+".opacity", "opacity %v is outside [0,1]", *el.Opacity)
	}

	validateGeometry(path, el.Geometry, res, v)

	for i, attr := range el.Attributes {
		validateAttribute(fmt.Sprintf("%s.attributes[%d]", path, i), el.Geometry.Kind, attr, res, v)
	}
}

func validateGeometry(path string, g Geometry, res Resolver, v *limits.Validator) {
	switch g.Kind {
	case GeometryPointSet:
		if g.PointSet == nil {
			v.Errorf(path+".point_set", "point_set geometry missing payload")
			return
		}
		mustRowCount(path+".point_set.vertices", g.PointSet.Vertices, res, v)

	case GeometryLineSet:
		if g.LineSet == nil {
			v.Errorf(path+".line_set", "line_set geometry missing payload")
			return
		}
		nVerts, ok := mustRowCount(path+".line_set.vertices", g.LineSet.Vertices, res, v)
		mustRowCount(path+".line_set.segments", g.LineSet.Segments, res, v)
		if ok {
			maxIdx, err := res.SegmentMaxIndex(g.LineSet.Segments)
			if err != nil {
				v.Errorf(path+".line_set.segments", "%v", err)
			} else if g.LineSet.Segments.Count > 0 && int64(maxIdx) >= nVerts {
				v.Errorf(path+".line_set.segments", "segment index %d is out of range for %d vertices", maxIdx, nVerts)
			}
		}

	case GeometrySurface:
		if g.Surface == nil {
			v.Errorf(path+".surface", "surface geometry missing payload")
			return
		}
		nVerts, ok := mustRowCount(path+".surface.vertices", g.Surface.Vertices, res, v)
		mustRowCount(path+".surface.triangles", g.Surface.Triangles, res, v)
		if ok {
			maxIdx, err := res.TriangleMaxIndex(g.Surface.Triangles)
			if err != nil {
				v.Errorf(path+".surface.triangles", "%v", err)
			} else if g.Surface.Triangles.Count > 0 && int64(maxIdx) >= nVerts {
				v.Errorf(path+".surface.triangles", "triangle index %d is out of range for %d vertices", maxIdx, nVerts)
			}
		}

	case GeometryGridSurface:
		if g.GridSurf == nil {
			v.Errorf(path+".grid_surface", "grid_surface geometry missing payload")
			return
		}
		validateOrient2(path+".grid_surface.orient", g.GridSurf.Orient, v)
		validateGrid2(path+".grid_surface.grid", g.GridSurf.Grid, v)
		if g.GridSurf.Heights != nil {
			mustRowCount(path+".grid_surface.heights", *g.GridSurf.Heights, res, v)
		}

	case GeometryBlockModel:
		if g.BlockModel == nil {
			v.Errorf(path+".block_model", "block_model geometry missing payload")
			return
		}
		validateBlockModel(path+".block_model", g.BlockModel, res, v)

	case GeometryComposite:
		if g.Composite == nil {
			v.Errorf(path+".composite", "composite geometry missing payload")
			return
		}
		if !v.EnterRecursion(limits.MaxCompositeDepth) {
			v.Errorf(path+".composite", "composite nesting exceeds max depth %d", limits.MaxCompositeDepth)
			v.ExitRecursion()
			return
		}
		for i, child := range g.Composite.Elements {
			validateElement(fmt.Sprintf("%s.composite.elements[%d]", path, i), child, res, v)
		}
		v.ExitRecursion()

	default:
		v.Errorf(path, "element has no geometry")
	}
}

func validateOrient2(path string, o Orient2, v *limits.Validator) {
	checkUnit(path+".axis_u", o.AxisU, v)
	checkUnit(path+".axis_v", o.AxisV, v)
	checkPerp(path, o.AxisU, o.AxisV, v)
}

func validateOrient3(path string, o Orient3, v *limits.Validator) {
	checkUnit(path+".axis_u", o.AxisU, v)
	checkUnit(path+".axis_v", o.AxisV, v)
	checkUnit(path+".axis_w", o.AxisW, v)
	checkPerp(path+" (u,v)", o.AxisU, o.AxisV, v)
	checkPerp(path+" (u,w)", o.AxisU, o.AxisW, v)
	checkPerp(path+" (v,w)", o.AxisV, o.AxisW, v)
}

func checkUnit(path string, a [3]float64, v *limits.Validator) {
	n := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	if math.Abs(n-1) > axisTolerance {
		v.Errorf(path, "axis is not a unit vector (length %v)", n)
	}
}

func checkPerp(path string, a, b [3]float64, v *limits.Validator) {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
	if math.Abs(dot) > axisTolerance {
		v.Errorf(path, "axes are not mutually perpendicular (dot %v)", dot)
	}
}

func validateGrid2(path string, g Grid2, v *limits.Validator) {
	switch g.Kind {
	case Grid2Regular:
		if g.RegularSizeU <= 0 || g.RegularSizeV <= 0 {
			v.Errorf(path, "regular grid cell size must be strictly positive")
		}
	case Grid2Tensor:
		checkStrictlyPositive(path+".tensor_u", g.TensorU, v)
		checkStrictlyPositive(path+".tensor_v", g.TensorV, v)
	default:
		v.Errorf(path, "grid has no kind set")
	}
}

func validateGrid3(path string, g Grid3, v *limits.Validator) {
	switch g.Kind {
	case Grid3Regular:
		for i, s := range g.RegularSize {
			if s <= 0 {
				v.Errorf(fmt.Sprintf("%s.regular_size[%d]", path, i), "cell size must be strictly positive")
			}
		}
	case Grid3Tensor:
		checkStrictlyPositive(path+".tensor_u", g.TensorU, v)
		checkStrictlyPositive(path+".tensor_v", g.TensorV, v)
		checkStrictlyPositive(path+".tensor_w", g.TensorW, v)
	default:
		v.Errorf(path, "grid has no kind set")
	}
}

func checkStrictlyPositive(path string, sizes []float64, v *limits.Validator) {
	for i, s := range sizes {
		if s <= 0 {
			v.Errorf(fmt.Sprintf("%s[%d]", path, i), "tensor grid size must be strictly positive")
		}
	}
}

// gridCount3 returns the parent block count along each axis, used to bound
// regular sub-block parent indices.
func gridCount3(g Grid3) [3]uint32 {
	switch g.Kind {
	case Grid3Regular:
		return g.RegularCount
	case Grid3Tensor:
		return [3]uint32{uint32(len(g.TensorU)), uint32(len(g.TensorV)), uint32(len(g.TensorW))}
	default:
		return [3]uint32{}
	}
}

func validateBlockModel(path string, bm *BlockModel, res Resolver, v *limits.Validator) {
	validateOrient3(path+".orient", bm.Orient, v)
	validateGrid3(path+".grid", bm.Grid, v)

	parentCount := gridCount3(bm.Grid)

	if bm.Regular != nil {
		validateRegularSubblocks(path+".regular_subblocks", bm.Regular, parentCount, res, v)
	}

	if bm.Freeform != nil {
		validateFreeformSubblocks(path+".freeform_subblocks", bm.Freeform, parentCount, res, v)
	}
}

func validateRegularSubblocks(path string, rs *RegularSubblocks, parentCount [3]uint32, res Resolver, v *limits.Validator) {
	for i, c := range rs.Count {
		if c == 0 {
			v.Errorf(fmt.Sprintf("%s.count[%d]", path, i), "sub-block count must be strictly positive")
		}
	}

	rows, err := res.RegularSubblockRows(rs.Rows)
	if err != nil {
		v.Errorf(path+".rows", "%v", err)
		return
	}

	type occupant struct {
		min, max [3]uint32
	}
	byParent := make(map[[3]uint32][]occupant, len(rows))

	for i, r := range rows {
		rowPath := fmt.Sprintf("%s.rows[%d]", path, i)

		if r.ParentU >= parentCount[0] || r.ParentV >= parentCount[1] || r.ParentW >= parentCount[2] {
			v.Errorf(rowPath, "parent block (%d,%d,%d) is outside the %v grid", r.ParentU, r.ParentV, r.ParentW, parentCount)
			continue
		}

		min := [3]uint32{r.MinU, r.MinV, r.MinW}
		max := [3]uint32{r.MaxU, r.MaxV, r.MaxW}

		for a := 0; a < 3; a++ {
			if max[a] <= min[a] {
				v.Errorf(rowPath, "sub-block extent must be strictly positive on axis %d", a)
			}
			if max[a] > rs.Count[a] {
				v.Errorf(rowPath, "sub-block corner %d exceeds sub-block count %d on axis %d", max[a], rs.Count[a], a)
			}
		}

		key := [3]uint32{r.ParentU, r.ParentV, r.ParentW}

		for _, other := range byParent[key] {
			if overlaps3(min, max, other.min, other.max) {
				v.Errorf(rowPath, "sub-block overlaps another sub-block in the same parent block")
			}
		}

		byParent[key] = append(byParent[key], occupant{min: min, max: max})
	}
}

func overlaps3(aMin, aMax, bMin, bMax [3]uint32) bool {
	for i := 0; i < 3; i++ {
		if aMax[i] <= bMin[i] || bMax[i] <= aMin[i] {
			return false
		}
	}

	return true
}

func validateFreeformSubblocks(path string, fs *FreeformSubblocks, parentCount [3]uint32, res Resolver, v *limits.Validator) {
	rows, err := res.FreeformSubblockRows(fs.Rows)
	if err != nil {
		v.Errorf(path+".rows", "%v", err)
		return
	}

	for i, r := range rows {
		rowPath := fmt.Sprintf("%s.rows[%d]", path, i)

		if r.ParentU >= parentCount[0] || r.ParentV >= parentCount[1] || r.ParentW >= parentCount[2] {
			v.Errorf(rowPath, "parent block (%d,%d,%d) is outside the %v grid", r.ParentU, r.ParentV, r.ParentW, parentCount)
		}

		for a := 0; a < 3; a++ {
			if r.Min[a] < 0 || r.Min[a] > 1 || r.Max[a] < 0 || r.Max[a] > 1 {
				v.Errorf(rowPath, "free-form corner must lie in [0,1] on axis %d", a)
			}
			if r.Max[a] <= r.Min[a] {
				v.Errorf(rowPath, "free-form sub-block extent must be strictly positive on axis %d", a)
			}
		}
	}
}

func validateAttribute(path string, geomKind GeometryKind, attr *Attribute, res Resolver, v *limits.Validator) {
	if attr == nil {
		v.Errorf(path, "attribute is nil")
		return
	}

	if !locationAllowed(geomKind, attr.Location) {
		v.Errorf(path+".location", "location %s is not valid for this element's geometry", attr.Location)
	}

	switch attr.Data.Kind {
	case DataBoolean:
		mustRowCount(path+".data.boolean.values", attr.Data.Boolean.Values, res, v)
	case DataVector2:
		mustRowCount(path+".data.vector2.values", attr.Data.Vector2.Values, res, v)
	case DataVector3:
		mustRowCount(path+".data.vector3.values", attr.Data.Vector3.Values, res, v)
	case DataText:
		mustRowCount(path+".data.text.values", attr.Data.Text.Values, res, v)
	case DataColor:
		mustRowCount(path+".data.color.values", attr.Data.Color.Values, res, v)
	case DataNumber:
		mustRowCount(path+".data.number.values", attr.Data.Number.Values, res, v)
		if attr.Data.Number.Colormap != nil {
			validateColormap(path+".data.number.colormap", attr.Data.Number.Colormap, res, v)
		}
	case DataCategory:
		validateCategory(path+".data.category", attr.Data.Category, res, v)
	case DataMappedTexture:
		mustRowCount(path+".data.mapped_texture.texcoords", attr.Data.MappedTexture.Texcoords, res, v)
	case DataProjectedTexture:
		validateOrient2(path+".data.projected_texture.orient", attr.Data.ProjectedTexture.Orient, v)
	default:
		v.Errorf(path+".data", "attribute has no data kind set")
	}
}

// locationAllowed enforces the per-geometry valid-location table. Composite
// and Categories locations are geometry-independent (an element's own
// attribute at a sub-element of a composite is checked when that sub-element
// is itself validated; Categories applies only to a category's
// sub-attributes, checked in validateCategory, not here).
func locationAllowed(geomKind GeometryKind, loc Location) bool {
	switch geomKind {
	case GeometryPointSet:
		return loc == LocationVertices
	case GeometryLineSet:
		return loc == LocationVertices || loc == LocationPrimitives
	case GeometrySurface:
		return loc == LocationVertices || loc == LocationPrimitives || loc == LocationProjected
	case GeometryGridSurface:
		return loc == LocationVertices || loc == LocationPrimitives || loc == LocationProjected
	case GeometryBlockModel:
		return loc == LocationPrimitives || loc == LocationSubblocks
	case GeometryComposite:
		return loc == LocationElements
	default:
		return false
	}
}

func validateCategory(path string, cd *CategoryData, res Resolver, v *limits.Validator) {
	if cd == nil {
		v.Errorf(path, "category data missing")
		return
	}

	if len(cd.Names) < 1 {
		v.Errorf(path+".names", "category must declare at least one name")
	}

	if len(cd.Colors) > 0 && len(cd.Colors) != len(cd.Names) {
		v.Errorf(path+".colors", "category colors length %d must equal names length %d", len(cd.Colors), len(cd.Names))
	}

	indices, err := res.IndexValues(cd.Indices)
	if err != nil {
		v.Errorf(path+".indices", "%v", err)
	} else {
		for i, idx := range indices {
			if idx != nil && int64(*idx) >= int64(len(cd.Names)) {
				v.Errorf(fmt.Sprintf("%s.indices[%d]", path, i), "category index %d is out of range for %d names", *idx, len(cd.Names))
			}
		}
	}

	for i, sub := range cd.SubAttributes {
		subPath := fmt.Sprintf("%s.sub_attributes[%d]", path, i)
		if sub == nil {
			v.Errorf(subPath, "sub-attribute is nil")
			continue
		}
		if sub.Location != LocationCategories {
			v.Errorf(subPath+".location", "category sub-attribute must use location Categories")
		}

		n, ok := dataRowCount(subPath, sub.Data, res, v)
		if ok && n != int64(len(cd.Names)) {
			v.Errorf(subPath, "sub-attribute length %d must equal names length %d", n, len(cd.Names))
		}
	}
}

func validateColormap(path string, cm *Colormap, res Resolver, v *limits.Validator) {
	switch cm.Kind {
	case ColormapContinuous:
		if cm.Min >= cm.Max {
			v.Errorf(path, "continuous colormap min (%v) must be less than max (%v)", cm.Min, cm.Max)
		}
	case ColormapDiscrete:
		values, inclusive, err := res.BoundaryValues(cm.Boundaries)
		if err != nil {
			v.Errorf(path+".boundaries", "%v", err)
			return
		}

		for i := 1; i < len(values); i++ {
			if values[i] <= values[i-1] {
				v.Errorf(fmt.Sprintf("%s.boundaries[%d]", path, i), "boundary values must be strictly increasing")
			}
		}
		_ = inclusive

		gradN, err := res.GradientCount(cm.Gradient)
		if err != nil {
			v.Errorf(path+".gradient", "%v", err)
			return
		}

		if gradN != int64(len(values))+1 {
			v.Errorf(path+".gradient", "gradient length %d must equal boundaries length %d + 1", gradN, len(values))
		}
	default:
		v.Errorf(path, "colormap has no kind set")
	}
}

// mustRowCount resolves ref's row count, recording an error and returning
// ok=false on failure so callers can skip dependent checks.
func mustRowCount(path string, ref ArrayRef, res Resolver, v *limits.Validator) (int64, bool) {
	n, err := res.RowCount(ref)
	if err != nil {
		v.Errorf(path, "%v", err)
		return 0, false
	}

	return n, true
}

// dataRowCount extracts the row count of whichever ArrayRef an
// AttributeData variant carries, for length cross-checks (e.g. category
// sub-attributes must match the names list length).
func dataRowCount(path string, d AttributeData, res Resolver, v *limits.Validator) (int64, bool) {
	switch d.Kind {
	case DataBoolean:
		return mustRowCount(path+".boolean.values", d.Boolean.Values, res, v)
	case DataVector2:
		return mustRowCount(path+".vector2.values", d.Vector2.Values, res, v)
	case DataVector3:
		return mustRowCount(path+".vector3.values", d.Vector3.Values, res, v)
	case DataText:
		return mustRowCount(path+".text.values", d.Text.Values, res, v)
	case DataColor:
		return mustRowCount(path+".color.values", d.Color.Values, res, v)
	case DataNumber:
		return mustRowCount(path+".number.values", d.Number.Values, res, v)
	default:
		v.Errorf(path, "sub-attribute data kind is not allowed here")
		return 0, false
	}
}
