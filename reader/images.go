package reader

import (
	"io"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/images"
)

// readMemberBytes reads an entire archive member into memory, used for image
// members (which images.Decode needs as a contiguous byte slice to sniff and
// decode, unlike arrays which stream through an io.ReaderAt).
func (r *Reader) readMemberBytes(name string) ([]byte, error) {
	if r.state == stateClosed {
		return nil, errs.Newf(errs.InvalidCall, "reader is closed")
	}

	rc, err := r.cr.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	size, err := r.cr.UncompressedSize(name)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(rc, buf); err != nil {
		return nil, errs.Wrap(errs.IoError, err, "failed to read image member "+name)
	}

	return buf, nil
}

// ReadImage decodes the image member named name, enforcing the reader's
// configured limits before allocating the decoded pixel buffer.
func (r *Reader) ReadImage(name string) (*images.Decoded, error) {
	data, err := r.readMemberBytes(name)
	if err != nil {
		return nil, err
	}

	return images.Decode(data, r.limits)
}

// ReadImageBytes returns the image member's raw encoded bytes, for callers
// that only need to copy it through unmodified (e.g. the OMF1 converter).
func (r *Reader) ReadImageBytes(name string) ([]byte, error) {
	return r.readMemberBytes(name)
}
