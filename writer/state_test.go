package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/index"
)

func requireInvalidCall(t *testing.T, err error) {
	t.Helper()

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.InvalidCall, e.Code)
}

func TestWriter_ProjectAttachedExactlyOnce(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "twice.omf"))
	require.NoError(t, err)
	defer w.Cancel()

	_, err = w.AttachProject(index.Project{Name: "one"})
	require.NoError(t, err)

	_, err = w.AttachProject(index.Project{Name: "two"})
	requireInvalidCall(t, err)
}

func TestWriter_FinalizeRequiresProject(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "empty.omf"))
	require.NoError(t, err)
	defer w.Cancel()

	_, err = w.Finalize()
	requireInvalidCall(t, err)
}

func TestWriter_WrongHandleKindRejected(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "handles.omf"))
	require.NoError(t, err)
	defer w.Cancel()

	project, err := w.AttachProject(index.Project{Name: "p"})
	require.NoError(t, err)

	// A project handle is not an element handle.
	_, err = w.AddAttribute(project, index.Attribute{Name: "a"})
	requireInvalidCall(t, err)

	// A metadata list handle cannot hold metadata keys.
	list, err := w.NewMetadataList(project, "list")
	require.NoError(t, err)
	err = w.SetMetadata(list, "key", 1)
	requireInvalidCall(t, err)

	// An element handle is not a metadata list.
	vref, err := WriteVertices(w, []arrays.Vec3[float64]{{X: 0}})
	require.NoError(t, err)
	el, err := w.AddElement(project, index.Element{
		Name: "e",
		Geometry: index.Geometry{
			Kind:     index.GeometryPointSet,
			PointSet: &index.PointSet{Vertices: vref},
		},
	})
	require.NoError(t, err)
	err = w.AppendMetadata(el, "x")
	requireInvalidCall(t, err)
}

func TestWriter_AddElementToNonComposite(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "nest.omf"))
	require.NoError(t, err)
	defer w.Cancel()

	project, err := w.AttachProject(index.Project{Name: "p"})
	require.NoError(t, err)

	vref, err := WriteVertices(w, []arrays.Vec3[float64]{{X: 0}})
	require.NoError(t, err)
	el, err := w.AddElement(project, index.Element{
		Name: "points",
		Geometry: index.Geometry{
			Kind:     index.GeometryPointSet,
			PointSet: &index.PointSet{Vertices: vref},
		},
	})
	require.NoError(t, err)

	_, err = w.AddElement(el, index.Element{Name: "child"})
	requireInvalidCall(t, err)
}

func TestWriter_CompositeNesting(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "composite.omf"))
	require.NoError(t, err)

	project, err := w.AttachProject(index.Project{Name: "p"})
	require.NoError(t, err)

	group, err := w.AddElement(project, index.Element{
		Name: "group",
		Geometry: index.Geometry{
			Kind:      index.GeometryComposite,
			Composite: &index.Composite{},
		},
	})
	require.NoError(t, err)

	vref, err := WriteVertices(w, []arrays.Vec3[float64]{{X: 0}, {X: 1}})
	require.NoError(t, err)
	_, err = w.AddElement(group, index.Element{
		Name: "points",
		Geometry: index.Geometry{
			Kind:     index.GeometryPointSet,
			PointSet: &index.PointSet{Vertices: vref},
		},
	})
	require.NoError(t, err)

	messages, err := w.Finalize()
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestWriter_StagingAfterFinalizeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.omf")
	w, err := Create(path)
	require.NoError(t, err)

	_, err = w.AttachProject(index.Project{Name: "p"})
	require.NoError(t, err)
	_, err = w.Finalize()
	require.NoError(t, err)

	_, err = WriteVertices(w, []arrays.Vec3[float64]{{X: 0}})
	requireInvalidCall(t, err)

	err = w.SetCompressionLevel(5)
	requireInvalidCall(t, err)
}

func TestWriter_CancelRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.omf")
	w, err := Create(path)
	require.NoError(t, err)

	_, err = w.AttachProject(index.Project{Name: "p"})
	require.NoError(t, err)

	require.NoError(t, w.Cancel())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Cancel is idempotent.
	require.NoError(t, w.Cancel())
}

func TestWriter_StreamingStagesMatchValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streamed.omf")
	w, err := Create(path)
	require.NoError(t, err)

	project, err := w.AttachProject(index.Project{Name: "streamed"})
	require.NoError(t, err)

	verts := []arrays.Vec3[float64]{{X: 0}, {X: 1}, {X: 2}}
	vref, err := StreamVertices(w, arrays.SliceSource(verts))
	require.NoError(t, err)
	assert.EqualValues(t, 3, vref.Count)

	tref, err := w.StreamTriangles(arrays.SliceSource([][3]uint32{{0, 1, 2}}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, tref.Count)

	_, err = w.AddElement(project, index.Element{
		Name: "tri",
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

func TestWriter_StreamedOutOfRangeTriangleCaughtAtFinalize(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "streambad.omf"))
	require.NoError(t, err)
	defer w.Cancel()

	project, err := w.AttachProject(index.Project{Name: "bad"})
	require.NoError(t, err)

	vref, err := StreamVertices(w, arrays.SliceSource([]arrays.Vec3[float64]{{X: 0}}))
	require.NoError(t, err)
	tref, err := w.StreamTriangles(arrays.SliceSource([][3]uint32{{0, 1, 9}}))
	require.NoError(t, err)

	_, err = w.AddElement(project, index.Element{
		Name: "tri",
		Geometry: index.Geometry{
			Kind:    index.GeometrySurface,
			Surface: &index.Surface{Vertices: vref, Triangles: tref},
		},
	})
	require.NoError(t, err)

	_, err = w.Finalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidationFailed)
}
