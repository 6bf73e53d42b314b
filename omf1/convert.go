package omf1

import (
	"math"
	"time"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/internal/options"
	"github.com/omf2/omf2/limits"
	"github.com/omf2/omf2/writer"
)

// Option configures a Converter before Convert runs.
type Option = options.Option[*Converter]

// WithLimits overrides the default safety limits applied to the OMF2 output.
func WithLimits(l limits.Limits) Option {
	return options.NoError(func(c *Converter) { c.limits = l })
}

// WithCompressionLevel sets the OMF2 output's Parquet/gzip compression
// level (1-9, or -1 for the default).
func WithCompressionLevel(level int) Option {
	return options.NoError(func(c *Converter) { c.level = level })
}

// Converter drives a writer.Writer from a decoded OMF1 Project, applying
// every OMF1-to-OMF2 semantic mapping this package documents.
type Converter struct {
	limits limits.Limits
	level  int
}

// NewConverter creates a Converter with the documented default limits and
// compression level.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{limits: limits.Default(), level: -1}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Convert reads p and writes an equivalent OMF2 archive to outPath,
// returning any validation messages Finalize collected. A conversion that
// hits a semantic violation (out-of-range indices, invalid vertex
// references, out-of-range date-times) aborts and cancels the partial
// output rather than writing a truncated archive.
func (c *Converter) Convert(p *Project, outPath string) ([]limits.Message, error) {
	w, err := writer.Create(outPath, writer.WithLimits(c.limits), writer.WithCompressionLevel(c.level))
	if err != nil {
		return nil, err
	}

	if err := c.convert(w, p); err != nil {
		_ = w.Cancel()
		return nil, err
	}

	return w.Finalize()
}

func (c *Converter) convert(w *writer.Writer, p *Project) error {
	fields := index.Project{
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.DateCreated.UTC().UnixMicro(),
		Metadata:    map[string]any{},
	}

	projectHandle, err := w.AttachProject(fields)
	if err != nil {
		return err
	}

	if !p.DateCreated.IsZero() {
		if err := w.SetMetadata(projectHandle, "date_created", p.DateCreated.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	if !p.DateModified.IsZero() {
		if err := w.SetMetadata(projectHandle, "date_modified", p.DateModified.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	for _, el := range p.Elements {
		if err := c.convertElement(w, projectHandle, el); err != nil {
			return err
		}
	}

	return nil
}

func (c *Converter) convertElement(w *writer.Writer, parent writer.Handle, el *Element) error {
	var color *index.RGB
	if el.Color != nil {
		color = &index.RGB{R: el.Color[0], G: el.Color[1], B: el.Color[2]}
	}

	geometry, err := c.convertGeometry(w, el)
	if err != nil {
		return err
	}

	handle, err := w.AddElement(parent, index.Element{
		Name:        el.Name,
		Description: el.Description,
		Color:       color,
		Geometry:    geometry,
	})
	if err != nil {
		return err
	}

	if el.Subtype != "" && (el.Kind == GeometryPointSet || el.Kind == GeometryLineSet) {
		if err := w.SetMetadata(handle, "subtype", el.Subtype); err != nil {
			return err
		}
	}

	for _, attr := range el.Attributes {
		if err := c.convertAttribute(w, handle, attr); err != nil {
			return err
		}
	}

	return nil
}

func (c *Converter) convertGeometry(w *writer.Writer, el *Element) (index.Geometry, error) {
	switch el.Kind {
	case GeometryPointSet:
		verts, err := vec3Slice(el.PointSet.Vertices)
		if err != nil {
			return index.Geometry{}, err
		}
		ref, err := writer.WriteVertices(w, verts)
		if err != nil {
			return index.Geometry{}, err
		}

		return index.Geometry{Kind: index.GeometryPointSet, PointSet: &index.PointSet{Vertices: ref}}, nil

	case GeometryLineSet:
		verts, err := vec3Slice(el.LineSet.Vertices)
		if err != nil {
			return index.Geometry{}, err
		}
		if err := checkSegmentIndices(el.LineSet.Segments, len(verts)); err != nil {
			return index.Geometry{}, err
		}

		vref, err := writer.WriteVertices(w, verts)
		if err != nil {
			return index.Geometry{}, err
		}
		sref, err := w.WriteSegments(el.LineSet.Segments)
		if err != nil {
			return index.Geometry{}, err
		}

		return index.Geometry{Kind: index.GeometryLineSet, LineSet: &index.LineSet{Vertices: vref, Segments: sref}}, nil

	case GeometrySurface:
		verts, err := vec3Slice(el.Surface.Vertices)
		if err != nil {
			return index.Geometry{}, err
		}
		if err := checkTriangleIndices(el.Surface.Triangles, len(verts)); err != nil {
			return index.Geometry{}, err
		}

		vref, err := writer.WriteVertices(w, verts)
		if err != nil {
			return index.Geometry{}, err
		}
		tref, err := w.WriteTriangles(el.Surface.Triangles)
		if err != nil {
			return index.Geometry{}, err
		}

		return index.Geometry{Kind: index.GeometrySurface, Surface: &index.Surface{Vertices: vref, Triangles: tref}}, nil

	case GeometryBlockModel:
		bm := el.BlockModel

		return index.Geometry{
			Kind: index.GeometryBlockModel,
			BlockModel: &index.BlockModel{
				Orient: index.Orient3{
					Origin: bm.Origin,
					AxisU:  [3]float64{1, 0, 0},
					AxisV:  [3]float64{0, 1, 0},
					AxisW:  [3]float64{0, 0, 1},
				},
				Grid: index.Grid3{
					Kind:         index.Grid3Regular,
					RegularSize:  bm.BlockSize,
					RegularCount: bm.NumBlocks,
				},
			},
		}, nil

	default:
		return index.Geometry{}, errs.Newf(errs.InvalidData, "element %q has no recognized OMF1 geometry", el.Name)
	}
}

// vec3Slice converts OMF1 float64 vertices and rejects more than 2^32-1 of
// them with InvalidData.
func vec3Slice(in [][3]float64) ([]arrays.Vec3[float64], error) {
	if uint64(len(in)) > math.MaxUint32 {
		return nil, errs.Newf(errs.InvalidData, "element has more than 2^32-1 vertices")
	}

	out := make([]arrays.Vec3[float64], len(in))
	for i, v := range in {
		out[i] = arrays.Vec3[float64]{X: v[0], Y: v[1], Z: v[2]}
	}

	return out, nil
}

func checkSegmentIndices(segments [][2]uint32, numVerts int) error {
	for _, s := range segments {
		if int(s[0]) >= numVerts || int(s[1]) >= numVerts {
			return errs.Newf(errs.InvalidData, "line-set segment references vertex index out of range")
		}
	}

	return nil
}

func checkTriangleIndices(triangles [][3]uint32, numVerts int) error {
	for _, t := range triangles {
		for _, idx := range t {
			if int(idx) >= numVerts {
				return errs.Newf(errs.InvalidData, "surface triangle references vertex index out of range")
			}
		}
	}

	return nil
}
