package arrays

import (
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
	"github.com/parquet-go/parquet-go/compress/lz4"
	"github.com/parquet-go/parquet-go/compress/snappy"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/omf2/omf2/errs"
)

// rowGroupRows bounds streaming-write row groups to a constant number of
// rows, keeping encoder memory use O(row-group) regardless of total array
// length.
const rowGroupRows = 8192

// readBatchRows is the internal buffer size RowIterator refills from, giving
// streaming reads O(row-group) memory too, without materializing the entire
// column.
const readBatchRows = 1024

// compressionCodec maps the writer's 1-9/-1 compression level onto a
// Parquet column compression codec. Low levels favor the fast lz4 path;
// high levels favor zstd; level 0 (rare, "no compression requested") uses
// Snappy as a cheap default rather than leaving columns fully uncompressed,
// since Parquet readers in the wild assume some codec is present.
func compressionCodec(level int) compress.Codec {
	switch {
	case level < 0:
		return &zstd.Codec{Level: zstd.SpeedDefault}
	case level == 0:
		return &snappy.Codec{}
	case level <= 3:
		return &lz4.Codec{}
	case level <= 6:
		return &zstd.Codec{Level: zstd.SpeedDefault}
	default:
		return &zstd.Codec{Level: zstd.SpeedBestCompression}
	}
}

// writeRows encodes rows as a complete Parquet file written to w, batching
// into row groups of at most rowGroupRows so writer memory stays bounded
// even when called from the streaming-write path.
func writeRows[T any](w io.Writer, rows []T, level int) error {
	pw := parquet.NewGenericWriter[T](w,
		parquet.Compression(compressionCodec(level)),
		parquet.MaxRowsPerRowGroup(rowGroupRows),
	)

	for start := 0; start < len(rows); start += rowGroupRows {
		end := start + rowGroupRows
		if end > len(rows) {
			end = len(rows)
		}

		if _, err := pw.Write(rows[start:end]); err != nil {
			return errs.Wrap(errs.ParquetError, err, "failed to write row group")
		}
	}

	if err := pw.Close(); err != nil {
		return errs.Wrap(errs.ParquetError, err, "failed to finalize Parquet file")
	}

	return nil
}

// readAllRows decodes every row of a Parquet file for a whole-buffer read.
// ra must expose the full file of size n.
func readAllRows[T any](ra io.ReaderAt, n int64) ([]T, error) {
	pr := parquet.NewGenericReader[T](io.NewSectionReader(ra, 0, n))
	defer pr.Close()

	rows := make([]T, pr.NumRows())

	read := 0
	for read < len(rows) {
		k, err := pr.Read(rows[read:])
		read += k
		if err != nil {
			if err == io.EOF {
				break
			}

			return nil, errs.Wrap(errs.ParquetError, err, "failed to read Parquet rows")
		}
	}

	return rows, nil
}

// RowIterator streams rows one at a time without materializing the whole
// column, owning the archive member stream it was built from so it can
// outlive the Reader it came from.
type RowIterator[T any] struct {
	pr     *parquet.GenericReader[T]
	closer io.Closer
	buf    []T
	pos    int
	filled int
	err    error
	done   bool
	cur    T
}

// NewRowIterator wraps a section of ra (the Parquet file for one array) plus
// the member stream closer that must be released when the iterator is freed.
func NewRowIterator[T any](ra io.ReaderAt, n int64, closer io.Closer) *RowIterator[T] {
	return &RowIterator[T]{
		pr:     parquet.NewGenericReader[T](io.NewSectionReader(ra, 0, n)),
		closer: closer,
		buf:    make([]T, readBatchRows),
	}
}

// Next advances to the next row, returning false at end-of-stream or on
// error; callers distinguish the two via Err().
func (it *RowIterator[T]) Next() bool {
	if it.done {
		return false
	}

	if it.pos >= it.filled {
		n, err := it.pr.Read(it.buf)
		it.pos, it.filled = 0, n

		if n == 0 {
			it.done = true
			if err != nil && err != io.EOF {
				it.err = errs.Wrap(errs.ParquetError, err, "streaming read failed")
			}

			return false
		}
	}

	it.cur = it.buf[it.pos]
	it.pos++

	return true
}

// Row returns the row most recently yielded by Next.
func (it *RowIterator[T]) Row() T {
	return it.cur
}

// Err returns the first error encountered, or nil if the iterator ended
// because the underlying column was exhausted.
func (it *RowIterator[T]) Err() error {
	return it.err
}

// Close releases the Parquet reader and the archive member stream.
func (it *RowIterator[T]) Close() error {
	_ = it.pr.Close()
	if it.closer != nil {
		return it.closer.Close()
	}

	return nil
}
