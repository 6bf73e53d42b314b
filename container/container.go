// Package container implements the ZIP archive layer: a random-access
// archive whose end-of-file comment identifies it as an OMF2 file, with
// members stored uncompressed (per-member compression is handled by the
// array/image/index codecs instead, never by the ZIP layer itself).
package container

import (
	"archive/zip"
	"io"
	"strings"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
)

// commentPrefix is the required prefix of the ZIP end-of-archive comment.
// The full comment is "Open Mining Format <major>.<minor>".
const commentPrefix = "Open Mining Format "

// Reader opens an existing archive for random-access member lookup: a thin
// wrapper around the ZIP transport plus the parsed end-of-file comment.
type Reader struct {
	zr      *zip.Reader
	ra      io.ReaderAt
	closer  io.Closer
	version format.Version
	byName  map[string]*zip.File
}

// Open parses ra as a ZIP archive of size n and verifies its end-of-file
// comment. closer, if non-nil, is closed by Reader.Close (used when ra wraps
// an *os.File the container layer itself opened).
func Open(ra io.ReaderAt, n int64, closer io.Closer) (*Reader, error) {
	zr, err := zip.NewReader(ra, n)
	if err != nil {
		return nil, errs.Wrap(errs.ZipError, err, "failed to open ZIP archive")
	}

	version, err := parseComment(zr.Comment)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		byName[f.Name] = f
	}

	return &Reader{zr: zr, ra: ra, closer: closer, version: version, byName: byName}, nil
}

// OpenAt returns a random-access view over a stored (uncompressed) member's
// content, for codecs (Parquet) that need to seek into the member rather
// than stream it sequentially. Every array member qualifies, since the
// container requires members to be stored without ZIP-level compression.
func (r *Reader) OpenAt(name string) (io.ReaderAt, int64, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, 0, errs.Wrap(errs.ZipMemberMissing, errs.ErrZipMemberMissing, name)
	}

	if f.Method != zip.Store {
		return nil, 0, errs.Newf(errs.ZipError, "member %q is not stored uncompressed", name)
	}

	off, err := f.DataOffset()
	if err != nil {
		return nil, 0, errs.Wrap(errs.ZipError, err, "failed to locate member data for "+name)
	}

	size := int64(f.UncompressedSize64)

	return io.NewSectionReader(r.ra, off, size), size, nil
}

// Version returns the "major.minor" declared in the ZIP comment.
func (r *Reader) Version() format.Version {
	return r.version
}

// Has reports whether a member with the given name exists.
func (r *Reader) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Open returns a sequential read stream over the named member's content.
// The returned ReadCloser must be closed by the caller; it holds its own
// handle into the archive and may outlive the Reader (e.g. when owned by a
// streaming array iterator).
func (r *Reader) Open(name string) (io.ReadCloser, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, errs.Wrap(errs.ZipMemberMissing, errs.ErrZipMemberMissing, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, errs.Wrap(errs.ZipError, err, "failed to open member "+name)
	}

	return rc, nil
}

// UncompressedSize returns the declared uncompressed size of the named
// member, used by the reader to pre-size the buffer for a whole-member
// image read.
func (r *Reader) UncompressedSize(name string) (int64, error) {
	f, ok := r.byName[name]
	if !ok {
		return 0, errs.Wrap(errs.ZipMemberMissing, errs.ErrZipMemberMissing, name)
	}

	return int64(f.UncompressedSize64), nil
}

// Names returns every member name in the archive, in ZIP directory order.
func (r *Reader) Names() []string {
	names := make([]string, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		names = append(names, f.Name)
	}

	return names
}

// Close releases the underlying file descriptor, if Open was given one.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}

	return nil
}

func parseComment(comment string) (format.Version, error) {
	if !strings.HasPrefix(comment, commentPrefix) {
		return format.Version{}, errs.ErrNotOmf
	}

	rest := strings.TrimPrefix(comment, commentPrefix)
	major, minor, pre, ok := splitVersion(rest)
	if !ok {
		return format.Version{}, errs.ErrNotOmf
	}

	return format.Version{Major: major, Minor: minor, PreRelease: pre}, nil
}

// Writer appends members to a brand-new archive, stored without ZIP-level
// compression (method zip.Store): every member's bytes are already in their
// final, codec-compressed form by the time they reach the container layer.
type Writer struct {
	zw     *zip.Writer
	closer io.Closer
	closed bool
}

// Create opens w for writing a new archive. closer, if non-nil, is closed
// (after the ZIP central directory is flushed) by SetCommentAndClose, or
// without a flush by Abort.
func Create(w io.Writer, closer io.Closer) *Writer {
	return &Writer{zw: zip.NewWriter(w), closer: closer}
}

// Append opens a new member named name for writing, stored uncompressed.
// The returned io.Writer is only valid until the next call to Append,
// SetCommentAndClose, or Abort (a ZIP archive writes one member at a time).
func (w *Writer) Append(name string) (io.Writer, error) {
	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Store,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ZipError, err, "failed to append member "+name)
	}

	return fw, nil
}

// SetCommentAndClose sets the end-of-archive comment to v's "Open Mining
// Format major.minor" string, flushes the central directory, and closes the
// underlying writer. This must only be called after the final content
// member (index.json.gz) has been written.
func (w *Writer) SetCommentAndClose(v format.Version) error {
	if err := w.zw.SetComment(v.Comment()); err != nil {
		return errs.Wrap(errs.ZipError, err, "failed to set archive comment")
	}

	if err := w.zw.Close(); err != nil {
		return errs.Wrap(errs.ZipError, err, "failed to close archive")
	}

	w.closed = true

	if w.closer != nil {
		return w.closer.Close()
	}

	return nil
}

// Abort closes the underlying transport without writing a valid central
// directory, used by Writer.Cancel to discard a partial archive. The
// caller is expected to also delete the backing file.
func (w *Writer) Abort() error {
	if w.closed {
		return nil
	}

	if w.closer != nil {
		return w.closer.Close()
	}

	return nil
}

func splitVersion(s string) (major, minor uint16, pre string, ok bool) {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0, 0, "", false
	}

	majorStr := s[:dot]
	rest := s[dot+1:]

	minorStr := rest
	if dash := strings.IndexByte(rest, '-'); dash >= 0 {
		minorStr = rest[:dash]
		pre = rest[dash+1:]
	}

	majorVal, err := parseUint16(majorStr)
	if err != nil {
		return 0, 0, "", false
	}

	minorVal, err := parseUint16(minorStr)
	if err != nil {
		return 0, 0, "", false
	}

	return majorVal, minorVal, pre, true
}

func parseUint16(s string) (uint16, error) {
	var n uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errs.ErrInvalidData
		}
		n = n*10 + uint64(c-'0')
	}

	return uint16(n), nil
}
