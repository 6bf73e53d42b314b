package reader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/writer"
)

// Copying an array between archives through the bytes passthrough neither
// re-encodes nor alters it: the destination member is byte-identical and
// decodes to the same rows.
func TestArrayBytes_PassthroughBetweenArchives(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.omf")
	dstPath := filepath.Join(dir, "dst.omf")

	verts := []arrays.Vec3[float64]{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}

	w1, err := writer.Create(srcPath)
	require.NoError(t, err)
	project, err := w1.AttachProject(index.Project{Name: "src"})
	require.NoError(t, err)
	vref, err := writer.WriteVertices(w1, verts)
	require.NoError(t, err)
	_, err = w1.AddElement(project, index.Element{
		Name: "points",
		Geometry: index.Geometry{
			Kind:     index.GeometryPointSet,
			PointSet: &index.PointSet{Vertices: vref},
		},
	})
	require.NoError(t, err)
	_, err = w1.Finalize()
	require.NoError(t, err)

	r1, err := Open(srcPath)
	require.NoError(t, err)
	defer r1.Close()
	p1, _, err := r1.Project()
	require.NoError(t, err)

	srcRef := p1.Elements[0].Geometry.PointSet.Vertices
	raw, err := r1.ReadBytes(srcRef)
	require.NoError(t, err)

	w2, err := writer.Create(dstPath)
	require.NoError(t, err)
	project2, err := w2.AttachProject(index.Project{Name: "dst"})
	require.NoError(t, err)
	copied, err := w2.WriteArrayBytes(format.Vertex64, raw, srcRef.Count)
	require.NoError(t, err)
	_, err = w2.AddElement(project2, index.Element{
		Name: "points",
		Geometry: index.Geometry{
			Kind:     index.GeometryPointSet,
			PointSet: &index.PointSet{Vertices: copied},
		},
	})
	require.NoError(t, err)
	_, err = w2.Finalize()
	require.NoError(t, err)

	r2, err := Open(dstPath)
	require.NoError(t, err)
	defer r2.Close()
	p2, _, err := r2.Project()
	require.NoError(t, err)

	dstRef := p2.Elements[0].Geometry.PointSet.Vertices
	rawCopy, err := r2.ReadBytes(dstRef)
	require.NoError(t, err)
	assert.Equal(t, raw, rawCopy)

	decoded, err := r2.ReadVerticesAsFloat64(dstRef)
	require.NoError(t, err)
	assert.Equal(t, verts, decoded)
}

func TestWriteArrayBytes_RejectsWrongDeclaredType(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.omf")

	w1, err := writer.Create(srcPath)
	require.NoError(t, err)
	project, err := w1.AttachProject(index.Project{Name: "src"})
	require.NoError(t, err)
	vref, err := writer.WriteVertices(w1, []arrays.Vec3[float64]{{X: 1}})
	require.NoError(t, err)
	_, err = w1.AddElement(project, index.Element{
		Name: "points",
		Geometry: index.Geometry{
			Kind:     index.GeometryPointSet,
			PointSet: &index.PointSet{Vertices: vref},
		},
	})
	require.NoError(t, err)
	_, err = w1.Finalize()
	require.NoError(t, err)

	r1, err := Open(srcPath)
	require.NoError(t, err)
	defer r1.Close()
	p1, _, err := r1.Project()
	require.NoError(t, err)

	raw, err := r1.ReadBytes(p1.Elements[0].Geometry.PointSet.Vertices)
	require.NoError(t, err)

	w2, err := writer.Create(filepath.Join(dir, "dst.omf"))
	require.NoError(t, err)
	defer w2.Cancel()
	_, err = w2.AttachProject(index.Project{Name: "dst"})
	require.NoError(t, err)

	_, err = w2.WriteArrayBytes(format.Segment, raw, 1)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.ParquetSchemaMismatch, e.Code)
}
