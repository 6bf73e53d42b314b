package omf1

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/reader"
)

func cubeProject() *Project {
	return &Project{
		Name:        "legacy cube",
		DateCreated: time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC),
		Elements: []*Element{
			{
				Name: "cube",
				Kind: GeometrySurface,
				Surface: &Surface{
					Vertices: [][3]float64{
						{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
						{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
					},
					Triangles: [][3]uint32{
						{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7},
					},
				},
				Attributes: []*Attribute{
					{
						Name:     "grade",
						Location: LocationVertices,
						Kind:     AttrScalar,
						Scalars:  []float64{1, 2, math.NaN(), 4, 5, 6, 7, 8},
					},
					{
						Name:     "rock type",
						Location: LocationVertices,
						Kind:     AttrMappedData,
						Mapped: &MappedData{
							Indices: []int64{0, 1, -1, 0, 1, 0, 1, 0},
							StringLegends: []StringLegend{
								{Name: "rock_type", Values: []string{"granite", "basalt"}},
								{Name: "code", Values: []string{"g", ""}},
							},
							ColorLegends: []ColorLegend{
								{Name: "rock_type_colors", Values: [][3]uint8{{200, 100, 50}}},
							},
						},
					},
				},
			},
		},
	}
}

func TestConverter_ConvertsCube(t *testing.T) {
	c, err := NewConverter()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cube.omf2")
	messages, err := c.Convert(cubeProject(), path)
	require.NoError(t, err)
	assert.Empty(t, messages)

	r, err := reader.Open(path)
	require.NoError(t, err)
	defer r.Close()

	project, _, err := r.Project()
	require.NoError(t, err)
	require.Len(t, project.Elements, 1)

	created := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, created.UnixMicro(), project.CreatedAt)
	assert.Equal(t, "2019-03-01T00:00:00Z", project.Metadata["date_created"])

	el := project.Elements[0]
	require.Len(t, el.Attributes, 2)

	grade := el.Attributes[0]
	require.Equal(t, index.DataNumber, grade.Data.Kind)
	values, err := r.ReadNumbersAsFloat64(grade.Data.Number.Values)
	require.NoError(t, err)
	require.Len(t, values, 8)
	assert.Nil(t, values[2])
	assert.Equal(t, 1.0, *values[0])

	rockType := el.Attributes[1]
	require.Equal(t, index.DataCategory, rockType.Data.Kind)
	assert.Equal(t, []string{"granite", "basalt"}, rockType.Data.Category.Names)
	require.Len(t, rockType.Data.Category.Colors, 2)
	assert.Equal(t, index.RGB{R: 200, G: 100, B: 50}, rockType.Data.Category.Colors[0])
	assert.Equal(t, index.RGB{R: grayFill[0], G: grayFill[1], B: grayFill[2]}, rockType.Data.Category.Colors[1])

	require.Len(t, rockType.Data.Category.SubAttributes, 1)
	sub := rockType.Data.Category.SubAttributes[0]
	assert.Equal(t, "code", sub.Name)
	assert.Equal(t, index.LocationCategories, sub.Location)

	codes, err := r.ReadText(sub.Data.Text.Values)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	require.NotNil(t, codes[0])
	assert.Equal(t, "g", *codes[0])
	assert.Nil(t, codes[1])

	indices, err := r.ReadIndex(rockType.Data.Category.Indices)
	require.NoError(t, err)
	assert.Nil(t, indices[2])
	assert.EqualValues(t, 0, *indices[0])
}

func TestConverter_RejectsOutOfRangeTriangleIndex(t *testing.T) {
	c, err := NewConverter()
	require.NoError(t, err)

	p := cubeProject()
	p.Elements[0].Surface.Triangles = append(p.Elements[0].Surface.Triangles, [3]uint32{0, 1, 99})

	path := filepath.Join(t.TempDir(), "broken.omf2")
	_, err = c.Convert(p, path)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.InvalidData, e.Code)
}

func TestConverter_RejectsOutOfRangeMappedIndex(t *testing.T) {
	c, err := NewConverter()
	require.NoError(t, err)

	p := cubeProject()
	p.Elements[0].Attributes[1].Mapped.Indices[0] = 5

	path := filepath.Join(t.TempDir(), "badindex.omf2")
	_, err = c.Convert(p, path)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.InvalidData, e.Code)
}
