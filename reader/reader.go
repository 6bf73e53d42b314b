// Package reader implements the Reader state machine:
// Open -> (optional SetLimits) -> Project (decode + validate once) -> typed
// array/image reads against the already-loaded tree -> Close.
//
// The lifecycle mirrors writer.Writer's state discipline: open a transport,
// then only allow the operations valid for the current phase.
package reader

import (
	"os"

	"github.com/omf2/omf2/container"
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
	"github.com/omf2/omf2/index"
	"github.com/omf2/omf2/internal/options"
	"github.com/omf2/omf2/limits"
)

type state uint8

const (
	stateOpened state = iota
	stateProjectLoaded
	stateClosed
)

// Reader opens an existing OMF2 archive for random-access reading.
type Reader struct {
	cr *container.Reader
	f  *os.File

	limits limits.Limits

	state    state
	project  *index.Project
	messages []limits.Message
	loadErr  error
}

// Option configures a Reader before or at Open time.
type Option = options.Option[*Reader]

// WithLimits overrides the default safety limits used for both the
// index-size check during Project and any later image/array decode.
func WithLimits(l limits.Limits) Option {
	return options.NoError(func(r *Reader) { r.limits = l })
}

// Open opens path as an OMF2 archive and checks its declared version for
// compatibility, but does not yet decode or validate the index (that is
// deferred to Project "index decode is lazy, on first access").
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, err, "failed to open archive file")
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errs.Wrap(errs.IoError, err, "failed to stat archive file")
	}

	cr, err := container.Open(f, info.Size(), f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r := &Reader{
		cr:     cr,
		f:      f,
		limits: limits.Default(),
	}

	if err := options.Apply(r, opts...); err != nil {
		_ = r.Close()
		return nil, err
	}

	v := cr.Version()
	if v.PreRelease != "" {
		_ = r.Close()
		return nil, errs.ErrPreRelease
	}

	if !v.CompatibleWith(format.Current) {
		_ = r.Close()
		return nil, errs.ErrNewerVersion
	}

	return r, nil
}

// SetLimits changes the safety limits used by subsequent Project/image/array
// reads. Valid in any state prior to Close.
func (r *Reader) SetLimits(l limits.Limits) error {
	if r.state == stateClosed {
		return errs.Newf(errs.InvalidCall, "reader is closed")
	}

	r.limits = l

	return nil
}

// Version returns the archive's declared "major.minor" version.
func (r *Reader) Version() format.Version {
	return r.cr.Version()
}

// Project decodes and validates the index on first call, caching the result
// for subsequent calls: it is idempotent, decoding the index exactly once.
// Validation messages are always returned alongside the project, even when
// empty; only a SeverityError message fails the call.
func (r *Reader) Project() (*index.Project, []limits.Message, error) {
	if r.state == stateClosed {
		return nil, nil, errs.Newf(errs.InvalidCall, "reader is closed")
	}

	if r.state == stateProjectLoaded {
		if r.loadErr != nil {
			return nil, r.messages, r.loadErr
		}

		return r.project, r.messages, nil
	}

	rc, err := r.cr.Open(index.MemberName)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	p, err := index.Decode(rc, r.limits)
	if err != nil {
		return nil, nil, err
	}

	v := limits.NewValidator(r.limits)
	index.Validate(p, &resolver{cr: r.cr}, v)

	r.project = p
	r.messages = v.Messages()
	r.state = stateProjectLoaded

	if v.HasErrors() {
		r.loadErr = errs.ErrValidationFailed
		return nil, r.messages, r.loadErr
	}

	return r.project, r.messages, nil
}

// Messages returns the validation messages recorded when Project validated
// the index (whether or not validation failed), or nil if Project has not
// yet validated it.
func (r *Reader) Messages() []limits.Message {
	return r.messages
}

// Close releases the archive's file descriptor. Safe to call more than once.
func (r *Reader) Close() error {
	if r.state == stateClosed {
		return nil
	}

	r.state = stateClosed

	return r.cr.Close()
}
