package omf1

import (
	"math"
	"time"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/writer"
)

func locationOf(l Location) index.Location {
	switch l {
	case LocationVertices:
		return index.LocationVertices
	case LocationPrimitives:
		return index.LocationPrimitives
	case LocationElements:
		return index.LocationElements
	default:
		return index.LocationUnknown
	}
}

// convertAttribute dispatches on attr.Kind and attaches the resulting
// index.Attribute to handle.
func (c *Converter) convertAttribute(w *writer.Writer, handle writer.Handle, attr *Attribute) error {
	data, err := c.convertAttributeData(w, attr)
	if err != nil {
		return err
	}

	_, err = w.AddAttribute(handle, index.Attribute{
		Name:     attr.Name,
		Location: locationOf(attr.Location),
		Data:     data,
	})

	return err
}

func (c *Converter) convertAttributeData(w *writer.Writer, attr *Attribute) (index.AttributeData, error) {
	switch attr.Kind {
	case AttrScalar:
		return c.convertScalar(w, attr.Scalars)
	case AttrVector:
		return c.convertVector(w, attr.Vectors)
	case AttrText:
		return c.convertText(w, attr.Texts)
	case AttrDateTime:
		return c.convertDateTime(w, attr.DateTimes)
	case AttrMappedData:
		return c.convertMapped(w, attr.Mapped)
	default:
		return index.AttributeData{}, errs.Newf(errs.InvalidData, "attribute %q has no recognized OMF1 kind", attr.Name)
	}
}

// convertScalar maps an OMF1 scalar array to a NumberFloat64 attribute; a
// NaN entry becomes null. Values stream through the writer's pull-based
// path one row-group at a time rather than being copied into a second
// nullable slice first.
func (c *Converter) convertScalar(w *writer.Writer, values []float64) (index.AttributeData, error) {
	i := 0
	src := func() (*float64, bool, error) {
		if i >= len(values) {
			return nil, false, nil
		}

		v := values[i]
		i++
		if math.IsNaN(v) {
			return nil, true, nil
		}

		return &v, true, nil
	}

	ref, err := writer.StreamNumbers(w, format.NumberFloat64, src)
	if err != nil {
		return index.AttributeData{}, err
	}

	return index.AttributeData{
		Kind:   index.DataNumber,
		Number: &index.NumberData{ValueKind: index.NumberFloat64, Values: ref},
	}, nil
}

// convertVector maps an OMF1 3-vector array to a Vector3(64) attribute; any
// NaN component nulls the whole row, since a partial vector has no
// meaningful interpretation downstream.
func (c *Converter) convertVector(w *writer.Writer, values [][3]float64) (index.AttributeData, error) {
	vals := make([]arrays.NullableVec3[float64], len(values))
	for i, v := range values {
		if math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2]) {
			continue
		}
		x, y, z := v[0], v[1], v[2]
		vals[i] = arrays.NullableVec3[float64]{X: &x, Y: &y, Z: &z}
	}

	ref, err := writer.WriteVector3(w, vals)
	if err != nil {
		return index.AttributeData{}, err
	}

	return index.AttributeData{
		Kind:    index.DataVector3,
		Vector3: &index.VectorData{Width: 64, Values: ref},
	}, nil
}

// convertText maps an OMF1 text array to a Text attribute; an empty string
// becomes null.
func (c *Converter) convertText(w *writer.Writer, values []string) (index.AttributeData, error) {
	vals := nullableStrings(values)

	ref, err := w.WriteText(vals)
	if err != nil {
		return index.AttributeData{}, err
	}

	return index.AttributeData{Kind: index.DataText, Text: &index.TextData{Values: ref}}, nil
}

// convertDateTime maps an OMF1 RFC3339 date-time string array to a
// NumberDateTime attribute; an empty string becomes null, and an
// unparsable or unrepresentable string is an InvalidData conversion
// failure. A value is representable only if it round-trips through an
// int64 microsecond count; anything outside that range is rejected rather
// than silently wrapped.
func (c *Converter) convertDateTime(w *writer.Writer, values []string) (index.AttributeData, error) {
	vals := make([]*int64, len(values))
	for i, s := range values {
		if s == "" {
			continue
		}

		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return index.AttributeData{}, errs.Newf(errs.InvalidData, "invalid date-time value %q", s)
		}

		t = t.Truncate(time.Microsecond)
		micros := int64(format.DateTimeFromTime(t))
		if !format.DateTime(micros).Time().Equal(t) {
			return index.AttributeData{}, errs.Newf(errs.InvalidData, "date-time value %q is outside the representable range", s)
		}
		vals[i] = &micros
	}

	ref, err := writer.WriteNumbers(w, format.NumberDateTime, vals)
	if err != nil {
		return index.AttributeData{}, err
	}

	return index.AttributeData{
		Kind:   index.DataNumber,
		Number: &index.NumberData{ValueKind: index.NumberDateTime, Values: ref},
	}, nil
}

// convertMapped maps an OMF1 mapped-data attribute to a Category attribute:
// the most-unique, least-empty, shortest string legend becomes the category
// names; the most-unique color legend becomes the display colors, padded
// gray past its own length; every other legend becomes a padded-null
// sub-attribute at LocationCategories.
func (c *Converter) convertMapped(w *writer.Writer, md *MappedData) (index.AttributeData, error) {
	namesIdx := pickNamesLegend(md.StringLegends)
	if namesIdx < 0 {
		return index.AttributeData{}, errs.Newf(errs.InvalidData, "mapped-data attribute has no string legend to use as category names")
	}

	names := md.StringLegends[namesIdx].Values
	n := len(names)

	indices := make([]*uint32, len(md.Indices))
	for i, idx := range md.Indices {
		switch {
		case idx == -1:
			// null
		case idx < 0 || idx >= int64(n):
			return index.AttributeData{}, errs.Newf(errs.InvalidData, "mapped-data index %d out of range for %d categories", idx, n)
		default:
			v := uint32(idx)
			indices[i] = &v
		}
	}

	indicesRef, err := w.WriteIndex(indices)
	if err != nil {
		return index.AttributeData{}, err
	}

	cat := &index.CategoryData{Indices: indicesRef, Names: names}

	colorIdx := pickColorLegend(md.ColorLegends)
	if colorIdx >= 0 {
		colors := md.ColorLegends[colorIdx].Values
		cat.Colors = make([]index.RGB, n)
		for i := range cat.Colors {
			if i < len(colors) {
				cat.Colors[i] = index.RGB{R: colors[i][0], G: colors[i][1], B: colors[i][2]}
			} else {
				cat.Colors[i] = index.RGB{R: grayFill[0], G: grayFill[1], B: grayFill[2]}
			}
		}
	}

	for i, legend := range md.StringLegends {
		if i == namesIdx {
			continue
		}

		sub, err := c.stringSubAttribute(w, legend, n)
		if err != nil {
			return index.AttributeData{}, err
		}
		cat.SubAttributes = append(cat.SubAttributes, sub)
	}

	for i, legend := range md.ColorLegends {
		if i == colorIdx {
			continue
		}

		sub, err := c.colorSubAttribute(w, legend, n)
		if err != nil {
			return index.AttributeData{}, err
		}
		cat.SubAttributes = append(cat.SubAttributes, sub)
	}

	return index.AttributeData{Kind: index.DataCategory, Category: cat}, nil
}

func (c *Converter) stringSubAttribute(w *writer.Writer, legend StringLegend, n int) (*index.Attribute, error) {
	padded := make([]string, n)
	copy(padded, legend.Values)

	ref, err := w.WriteText(nullableStrings(padded))
	if err != nil {
		return nil, err
	}

	return &index.Attribute{
		Name:     legend.Name,
		Location: index.LocationCategories,
		Data:     index.AttributeData{Kind: index.DataText, Text: &index.TextData{Values: ref}},
	}, nil
}

func (c *Converter) colorSubAttribute(w *writer.Writer, legend ColorLegend, n int) (*index.Attribute, error) {
	vals := make([]arrays.NullableRGBA, n)
	for i := range vals {
		if i < len(legend.Values) {
			v := legend.Values[i]
			vals[i] = arrays.NullableRGBA{R: &v[0], G: &v[1], B: &v[2]}
		}
	}

	ref, err := w.WriteColor(vals)
	if err != nil {
		return nil, err
	}

	return &index.Attribute{
		Name:     legend.Name,
		Location: index.LocationCategories,
		Data:     index.AttributeData{Kind: index.DataColor, Color: &index.ColorData{Values: ref}},
	}, nil
}

func nullableStrings(values []string) []*string {
	out := make([]*string, len(values))
	for i, v := range values {
		if v != "" {
			vv := v
			out[i] = &vv
		}
	}

	return out
}
