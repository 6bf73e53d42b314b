package writer

import (
	"os"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/images"
	"github.com/omf2/omf2/internal/pool"
)

// WriteImagePNG encodes d as PNG and appends it as a new archive member,
// returning the member name for use in a mapped/projected texture attribute.
func (w *Writer) WriteImagePNG(d *images.Decoded) (string, error) {
	if err := w.requireOpen(); err != nil {
		return "", err
	}

	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)

	if err := images.EncodePNG(buf, d); err != nil {
		return "", err
	}

	name := w.newMember(".png")
	if err := w.appendBytes(name, buf.Bytes()); err != nil {
		return "", err
	}

	return name, nil
}

// WriteImageJPEG encodes d as 8-bit RGB JPEG at the given quality (0-100)
// and appends it as a new archive member.
func (w *Writer) WriteImageJPEG(d *images.Decoded, quality int) (string, error) {
	if err := w.requireOpen(); err != nil {
		return "", err
	}

	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)

	if err := images.EncodeJPEG(buf, d, quality); err != nil {
		return "", err
	}

	name := w.newMember(".jpg")
	if err := w.appendBytes(name, buf.Bytes()); err != nil {
		return "", err
	}

	return name, nil
}

// WriteImageBytes stores pre-encoded PNG or JPEG bytes verbatim, sniffing
// the extension from the data's magic bytes ("accepts pre-encoded
// bytes").
func (w *Writer) WriteImageBytes(data []byte) (string, error) {
	if err := w.requireOpen(); err != nil {
		return "", err
	}

	format, err := images.WritePassthrough(data)
	if err != nil {
		return "", err
	}

	name := w.newMember(format.Extension())
	if err := w.appendBytes(name, data); err != nil {
		return "", err
	}

	return name, nil
}

// WriteImageFile stores an already-encoded image file verbatim, sniffing
// PNG vs JPEG from its magic bytes.
func (w *Writer) WriteImageFile(path string) (string, error) {
	if err := w.requireOpen(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.Wrap(errs.IoError, err, "failed to read image file "+path)
	}

	return w.WriteImageBytes(data)
}
