package writer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
)

func TestWriter_PyramidRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyramid.omf2")

	w, err := Create(path)
	require.NoError(t, err)

	project, err := w.AttachProject(index.Project{Name: "pyramid"})
	require.NoError(t, err)

	verts := []arrays.Vec3[float64]{
		{X: 0, Y: 0, Z: 1},
		{X: -1, Y: -1, Z: 0},
		{X: 1, Y: -1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: -1, Y: 1, Z: 0},
	}
	triangles := [][3]uint32{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1}}

	vref, err := WriteVertices(w, verts)
	require.NoError(t, err)
	tref, err := w.WriteTriangles(triangles)
	require.NoError(t, err)

	_, err = w.AddElement(project, index.Element{
		Name: "pyramid surface",
		Geometry: index.Geometry{
			Kind:    index.GeometrySurface,
			Surface: &index.Surface{Vertices: vref, Triangles: tref},
		},
	})
	require.NoError(t, err)

	messages, err := w.Finalize()
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestWriter_RejectsOutOfRangeTriangleIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.omf2")

	w, err := Create(path)
	require.NoError(t, err)

	project, err := w.AttachProject(index.Project{Name: "bad"})
	require.NoError(t, err)

	verts := []arrays.Vec3[float64]{{X: 0, Y: 0, Z: 0}}
	vref, err := WriteVertices(w, verts)
	require.NoError(t, err)

	tref, err := w.WriteTriangles([][3]uint32{{0, 1, 2}})
	require.NoError(t, err)

	_, err = w.AddElement(project, index.Element{
		Name: "broken",
		Geometry: index.Geometry{
			Kind:    index.GeometrySurface,
			Surface: &index.Surface{Vertices: vref, Triangles: tref},
		},
	})
	require.NoError(t, err)

	_, err = w.Finalize()
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.ValidationFailed, e.Code)
}

func TestWriter_CubeAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.omf2")

	w, err := Create(path)
	require.NoError(t, err)

	project, err := w.AttachProject(index.Project{Name: "cube"})
	require.NoError(t, err)

	verts := []arrays.Vec3[float64]{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	vref, err := WriteVertices(w, verts)
	require.NoError(t, err)
	tref, err := w.WriteTriangles([][3]uint32{
		{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4}, {1, 2, 6}, {1, 6, 5},
	})
	require.NoError(t, err)

	el, err := w.AddElement(project, index.Element{
		Name: "cube",
		Geometry: index.Geometry{
			Kind:    index.GeometrySurface,
			Surface: &index.Surface{Vertices: vref, Triangles: tref},
		},
	})
	require.NoError(t, err)

	boolRef, err := w.WriteBoolean([]*bool{boolPtr(true), nil, boolPtr(false), boolPtr(true), boolPtr(true), boolPtr(false), boolPtr(true), boolPtr(false)})
	require.NoError(t, err)
	_, err = w.AddAttribute(el, index.Attribute{
		Name:     "is_corner",
		Location: index.LocationVertices,
		Data:     index.AttributeData{Kind: index.DataBoolean, Boolean: &index.BooleanData{Values: boolRef}},
	})
	require.NoError(t, err)

	one, two := 1.0, 2.0
	numRef, err := WriteNumbers(w, format.NumberFloat64, []*float64{&one, &two, nil, &one, &two, nil, &one, &two})
	require.NoError(t, err)
	_, err = w.AddAttribute(el, index.Attribute{
		Name:     "elevation",
		Location: index.LocationVertices,
		Data:     index.AttributeData{Kind: index.DataNumber, Number: &index.NumberData{ValueKind: index.NumberFloat64, Values: numRef}},
	})
	require.NoError(t, err)

	names := []*string{strPtr("a"), nil, strPtr("b"), strPtr("c"), strPtr("d"), strPtr("e"), strPtr("f"), strPtr("g")}
	textRef, err := w.WriteText(names)
	require.NoError(t, err)
	_, err = w.AddAttribute(el, index.Attribute{
		Name:     "label",
		Location: index.LocationVertices,
		Data:     index.AttributeData{Kind: index.DataText, Text: &index.TextData{Values: textRef}},
	})
	require.NoError(t, err)

	indices := []*uint32{u32Ptr(0), u32Ptr(1), nil, u32Ptr(0), u32Ptr(1), u32Ptr(0), u32Ptr(1), u32Ptr(0)}
	indexRef, err := w.WriteIndex(indices)
	require.NoError(t, err)
	_, err = w.AddAttribute(el, index.Attribute{
		Name:     "material",
		Location: index.LocationVertices,
		Data: index.AttributeData{
			Kind: index.DataCategory,
			Category: &index.CategoryData{
				Indices: indexRef,
				Names:   []string{"rock", "ore"},
				Colors:  []index.RGB{{R: 100, G: 100, B: 100}, {R: 200, G: 150, B: 0}},
			},
		},
	})
	require.NoError(t, err)

	messages, err := w.Finalize()
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func u32Ptr(v uint32) *uint32 { return &v }
