package writer

import (
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/index"
)

// HandleKind identifies the kind of node a Handle addresses: each handle
// carries its target kind and an opaque index into the writer's in-memory
// tree; misuse is detected at call time via a kind check, not deferred to
// Finalize.
type HandleKind uint8

const (
	HandleProject HandleKind = iota
	HandleElement
	HandleAttribute
	HandleMetadataList
	HandleMetadataObject
)

// Handle is an opaque reference returned by AttachProject/AddElement/
// AddAttribute/NewMetadataList/NewMetadataObject. Handles obtained from one
// Writer are only valid for that Writer ("Lifecycle").
type Handle struct {
	kind HandleKind
	id   int
}

func (w *Writer) newHandle(kind HandleKind, target any) Handle {
	id := len(w.targets)
	w.targets = append(w.targets, target)

	return Handle{kind: kind, id: id}
}

func (w *Writer) element(h Handle) (*index.Element, error) {
	if h.kind != HandleElement {
		return nil, errs.Newf(errs.InvalidCall, "handle is not an element handle")
	}

	return w.targets[h.id].(*index.Element), nil
}

func (w *Writer) metadataTarget(h Handle) (map[string]any, error) {
	switch h.kind {
	case HandleProject:
		if !w.projectAttached {
			return nil, errs.Newf(errs.InvalidCall, "no project attached")
		}
		return w.project.Metadata, nil
	case HandleElement:
		el := w.targets[h.id].(*index.Element)
		return el.Metadata, nil
	case HandleAttribute:
		attr := w.targets[h.id].(*index.Attribute)
		return attr.Metadata, nil
	case HandleMetadataObject:
		return w.targets[h.id].(map[string]any), nil
	default:
		return nil, errs.Newf(errs.InvalidCall, "handle cannot hold metadata")
	}
}

// AttachProject creates the root Project exactly once (: "project may be
// attached exactly once"). fields' Elements slice is ignored; elements are
// always added via AddElement.
func (w *Writer) AttachProject(fields index.Project) (Handle, error) {
	if err := w.requireOpen(); err != nil {
		return Handle{}, err
	}

	if w.projectAttached {
		return Handle{}, errs.Newf(errs.InvalidCall, "project already attached")
	}

	p := fields
	p.Elements = nil
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}

	w.project = &p
	w.projectAttached = true

	return w.newHandle(HandleProject, w.project), nil
}

// AddElement appends el as a child of parent, which must be either the
// project handle (top-level element) or an element handle whose geometry is
// a Composite (a nested element). el.Attributes is reset to nil; use
// AddAttribute to attach attributes after the element handle is returned.
func (w *Writer) AddElement(parent Handle, el index.Element) (Handle, error) {
	if err := w.requireOpen(); err != nil {
		return Handle{}, err
	}

	e := el
	e.Attributes = nil
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}

	switch parent.kind {
	case HandleProject:
		if !w.projectAttached {
			return Handle{}, errs.Newf(errs.InvalidCall, "no project attached")
		}
		w.project.Elements = append(w.project.Elements, &e)

	case HandleElement:
		parentEl, err := w.element(parent)
		if err != nil {
			return Handle{}, err
		}
		if parentEl.Geometry.Kind != index.GeometryComposite || parentEl.Geometry.Composite == nil {
			return Handle{}, errs.Newf(errs.InvalidCall, "parent element is not a composite")
		}
		parentEl.Geometry.Composite.Elements = append(parentEl.Geometry.Composite.Elements, &e)

	default:
		return Handle{}, errs.Newf(errs.InvalidCall, "invalid parent handle for AddElement")
	}

	return w.newHandle(HandleElement, &e), nil
}

// AddAttribute appends attr to the element addressed by parent.
func (w *Writer) AddAttribute(parent Handle, attr index.Attribute) (Handle, error) {
	if err := w.requireOpen(); err != nil {
		return Handle{}, err
	}

	el, err := w.element(parent)
	if err != nil {
		return Handle{}, err
	}

	a := attr
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}

	el.Attributes = append(el.Attributes, &a)

	return w.newHandle(HandleAttribute, &a), nil
}
