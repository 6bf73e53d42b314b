package writer

import "github.com/omf2/omf2/errs"

// SetMetadata sets key to value in the metadata map addressed by parent (a
// project, element, attribute, or metadata-object handle), part of that
// node's free-form metadata tree.
func (w *Writer) SetMetadata(parent Handle, key string, value any) error {
	if err := w.requireOpen(); err != nil {
		return err
	}

	m, err := w.metadataTarget(parent)
	if err != nil {
		return err
	}

	m[key] = value

	return nil
}

// NewMetadataObject creates an empty object under key in parent's metadata
// map and returns a handle callers can pass to SetMetadata to populate it.
func (w *Writer) NewMetadataObject(parent Handle, key string) (Handle, error) {
	if err := w.requireOpen(); err != nil {
		return Handle{}, err
	}

	m, err := w.metadataTarget(parent)
	if err != nil {
		return Handle{}, err
	}

	obj := map[string]any{}
	m[key] = obj

	return w.newHandle(HandleMetadataObject, obj), nil
}

// NewMetadataList creates an empty list under key in parent's metadata map
// and returns a handle callers can pass to AppendMetadata to populate it.
// List order is preserved.
func (w *Writer) NewMetadataList(parent Handle, key string) (Handle, error) {
	if err := w.requireOpen(); err != nil {
		return Handle{}, err
	}

	m, err := w.metadataTarget(parent)
	if err != nil {
		return Handle{}, err
	}

	list := &[]any{}
	m[key] = list

	return w.newHandle(HandleMetadataList, list), nil
}

// AppendMetadata appends value to the list addressed by list.
func (w *Writer) AppendMetadata(list Handle, value any) error {
	if err := w.requireOpen(); err != nil {
		return err
	}

	if list.kind != HandleMetadataList {
		return errs.Newf(errs.InvalidCall, "handle is not a metadata list handle")
	}

	ptr := w.targets[list.id].(*[]any)
	*ptr = append(*ptr, value)

	return nil
}
