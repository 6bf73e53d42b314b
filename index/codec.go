package index

import (
	"encoding/json"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/internal/pool"
	"github.com/omf2/omf2/limits"
)

// MemberName is the fixed archive member name the index is always stored
// under.
const MemberName = "index.json.gz"

// Decode inflates and parses the index member, enforcing lim's index-size
// limit against the inflated byte count as it streams, failing with
// LimitExceeded before the full document is ever buffered. r is the raw
// (gzip-compressed) member stream.
func Decode(r io.Reader, lim limits.Limits) (*Project, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.DeserializationFailed, err, "index member is not valid gzip")
	}
	defer gr.Close()

	buf := pool.GetIndexBuffer()
	defer pool.PutIndexBuffer(buf)

	limited := &limitedReader{r: gr, lim: lim}
	for {
		buf.Grow(pool.IndexBufferDefaultSize)
		start := buf.Len()
		buf.SetLength(cap(buf.Bytes()))
		n, rerr := limited.Read(buf.Bytes()[start:])
		buf.SetLength(start + n)

		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return nil, rerr
		}
	}

	var p Project
	if err := json.Unmarshal(buf.Bytes(), &p); err != nil {
		return nil, errs.Wrap(errs.DeserializationFailed, err, "failed to parse index JSON")
	}

	return &p, nil
}

// limitedReader wraps a decompressing reader and fails with LimitExceeded on
// the first read that takes the running inflated byte count past lim; that
// read's bytes are already in the caller's buffer, and Decode discards them
// along with the rest when it returns the error.
type limitedReader struct {
	r     io.Reader
	lim   limits.Limits
	total int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.total += int64(n)
	if l.lim.CheckIndexBytes(l.total) {
		return n, errs.ErrLimitExceeded
	}

	return n, err
}

// Encode serializes p as JSON and deflates it with gzip at the given level
// (1-9, or -1 for the default, matching compress/flate's convention),
// storing the result under MemberName.
func Encode(w io.Writer, p *Project, level int) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errs.Wrap(errs.SerializationFailed, err, "failed to serialize index JSON")
	}

	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return errs.Wrap(errs.SerializationFailed, err, "invalid gzip compression level")
	}

	if _, err := gw.Write(data); err != nil {
		_ = gw.Close()
		return errs.Wrap(errs.IoError, err, "failed to write index member")
	}

	if err := gw.Close(); err != nil {
		return errs.Wrap(errs.IoError, err, "failed to finalize index member")
	}

	return nil
}
