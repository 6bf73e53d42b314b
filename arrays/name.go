package arrays

import "io"

// WriteNames encodes a format.Name array (column "name", REQUIRED, unique,
// non-empty; uniqueness is enforced by the index validator, not here).
func WriteNames(w io.Writer, names []string, level int) error {
	rows := make([]nameRow, len(names))
	for i, n := range names {
		rows[i] = nameRow{Name: n}
	}

	return writeRows(w, rows, level)
}

// ReadNames decodes a whole-buffer read of a format.Name array.
func ReadNames(ra io.ReaderAt, n int64) ([]string, error) {
	rows, err := readAllRows[nameRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}

	return out, nil
}

// WriteText encodes a nullable format.Text array ("empty strings...
// become null" is an OMF1-conversion rule, not enforced by this codec).
func WriteText(w io.Writer, values []*string, level int) error {
	rows := make([]textRow, len(values))
	for i, v := range values {
		rows[i] = textRow{Text: v}
	}

	return writeRows(w, rows, level)
}

// ReadText decodes a whole-buffer read of a format.Text array.
func ReadText(ra io.ReaderAt, n int64) ([]*string, error) {
	rows, err := readAllRows[textRow](ra, n)
	if err != nil {
		return nil, err
	}

	out := make([]*string, len(rows))
	for i, r := range rows {
		out[i] = r.Text
	}

	return out, nil
}
