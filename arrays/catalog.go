package arrays

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
)

// ValidateMember opens the Parquet file header for an archive member (without
// decoding any row data) and reports whether its schema matches the schema
// format.ArrayType t requires. The index and reader packages call this when
// an ArrayRef is resolved, so a schema mismatch surfaces as
// errs.ParquetSchemaMismatch before any row is ever read.
func ValidateMember(t format.ArrayType, ra io.ReaderAt, n int64) error {
	pf, err := parquet.OpenFile(io.NewSectionReader(ra, 0, n), n)
	if err != nil {
		return errs.Wrap(errs.NotParquetData, err, "array member does not parse as Parquet")
	}

	ok, err := matchesCatalogSchema(t, pf.Schema())
	if err != nil {
		return err
	}

	if !ok {
		return errs.Newf(errs.ParquetSchemaMismatch, "array member schema does not match %s", t)
	}

	return nil
}

// RowCount reads the row count from a Parquet file's footer metadata only,
// without decoding any column, for length checks the index validator needs
// before any typed read happens ("array length must match the
// element's declared vertex/triangle count" rule, among others).
func RowCount(ra io.ReaderAt, n int64) (int64, error) {
	pf, err := parquet.OpenFile(io.NewSectionReader(ra, 0, n), n)
	if err != nil {
		return 0, errs.Wrap(errs.NotParquetData, err, "array member does not parse as Parquet")
	}

	return pf.NumRows(), nil
}
