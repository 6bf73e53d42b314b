// Package writer implements the Writer state machine:
// Open -> (stage arrays/images, attach project, attach elements/attributes,
// attach metadata) -> Finalized or Cancelled.
//
// A wrong call at the wrong state returns a typed error (errs.InvalidCall)
// rather than panicking or silently no-op'ing.
package writer

import (
	"os"
	"time"

	"github.com/omf2/omf2/arrays"
	"github.com/omf2/omf2/container"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/internal/options"
	"github.com/omf2/omf2/internal/pool"
	"github.com/omf2/omf2/internal/token"
	"github.com/omf2/omf2/limits"
)

func nowMicro() int64 {
	return time.Now().UnixMicro()
}

type state uint8

const (
	stateOpen state = iota
	stateFinalized
	stateCancelled
)

// stagedArray is what the Writer keeps in memory about one array member it
// has already appended to the archive, so Finalize can validate cross
// references against the writer's own staged data instead of reading
// the half-written ZIP back.
type stagedArray struct {
	arrayType         format.ArrayType
	rowCount          int64
	segmentMax        uint32
	triangleMax       uint32
	indexValues       []*uint32
	regularRows       []arrays.RegularSubblockRow
	freeformRows      []index.FreeformCorner
	boundaryValues    []float64
	boundaryInclusive []bool
}

// Writer drives construction of one OMF2 archive.
type Writer struct {
	path string
	f    *os.File
	cw   *container.Writer

	limits limits.Limits
	level  int

	tokens *token.Generator

	state           state
	projectAttached bool

	project *index.Project
	targets []any // handle id -> *index.Project | *index.Element | *index.Attribute | map[string]any | *[]any

	staged map[string]stagedArray
}

// Option configures a Writer before or at Create time.
type Option = options.Option[*Writer]

// WithLimits overrides the default safety limits.
func WithLimits(l limits.Limits) Option {
	return options.NoError(func(w *Writer) { w.limits = l })
}

// WithCompressionLevel sets the initial Parquet/gzip compression level
// (1-9, or -1 for the default).
func WithCompressionLevel(level int) Option {
	return options.NoError(func(w *Writer) { w.level = level })
}

// Create opens path for writing (truncate-and-overwrite, opening it
// exclusively) and returns a Writer in the Open state.
func Create(path string, opts ...Option) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, err, "failed to create archive file")
	}

	w := &Writer{
		path:   path,
		f:      f,
		cw:     container.Create(f, f),
		limits: limits.Default(),
		level:  -1,
		tokens: token.NewGenerator(nowMicro()),
		staged: make(map[string]stagedArray),
	}

	if err := options.Apply(w, opts...); err != nil {
		_ = w.Cancel()
		return nil, err
	}

	return w, nil
}

// SetCompressionLevel changes the compression level used by arrays/images/
// index staged from this point forward. Valid only while Open.
func (w *Writer) SetCompressionLevel(level int) error {
	if err := w.requireOpen(); err != nil {
		return err
	}

	w.level = level

	return nil
}

func (w *Writer) requireOpen() error {
	if w.state != stateOpen {
		return errs.Newf(errs.InvalidCall, "writer is not open")
	}

	return nil
}

// newMember allocates the next unique archive member name with the given
// extension.
func (w *Writer) newMember(ext string) string {
	return w.tokens.Next() + ext
}

// appendBytes writes a fully-encoded buffer as a new archive member.
func (w *Writer) appendBytes(name string, data []byte) error {
	mw, err := w.cw.Append(name)
	if err != nil {
		return err
	}

	if _, err := mw.Write(data); err != nil {
		return errs.Wrap(errs.IoError, err, "failed to write member "+name)
	}

	return nil
}

// Finalize runs full validation over the accumulated index; if any
// error-severity message was recorded, it aborts (without writing the index
// member) and returns every collected message alongside errs.ValidationFailed.
// Otherwise it serializes the index, writes it as the final content member,
// sets the ZIP comment, and closes the archive.
func (w *Writer) Finalize() ([]limits.Message, error) {
	if err := w.requireOpen(); err != nil {
		return nil, err
	}

	if !w.projectAttached {
		return nil, errs.Newf(errs.InvalidCall, "no project attached")
	}

	v := limits.NewValidator(w.limits)
	index.Validate(w.project, w, v)

	if v.HasErrors() {
		return v.Messages(), errs.ErrValidationFailed
	}

	buf := pool.GetIndexBuffer()
	defer pool.PutIndexBuffer(buf)

	if err := index.Encode(buf, w.project, w.level); err != nil {
		return v.Messages(), err
	}

	if err := w.appendBytes(index.MemberName, buf.Bytes()); err != nil {
		return v.Messages(), err
	}

	if err := w.cw.SetCommentAndClose(format.Current); err != nil {
		return v.Messages(), err
	}

	w.state = stateFinalized

	return v.Messages(), nil
}

// Cancel abandons the writer, discarding the partial archive file.
func (w *Writer) Cancel() error {
	if w.state == stateFinalized {
		return errs.Newf(errs.InvalidCall, "writer is already finalized")
	}

	if w.state == stateCancelled {
		return nil
	}

	_ = w.cw.Abort()
	w.state = stateCancelled

	if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.IoError, err, "failed to remove cancelled archive")
	}

	return nil
}
