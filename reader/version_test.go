package reader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/errs"
)

func writeArchiveWithComment(t *testing.T, path, comment string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	require.NoError(t, zw.SetComment(comment))
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestOpen_RejectsMissingComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.zip")
	writeArchiveWithComment(t, path, "")

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotOmf)
}

func TestOpen_RejectsForeignComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.zip")
	writeArchiveWithComment(t, path, "Some Other Format 2.0")

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotOmf)
}

func TestOpen_RejectsNewerMajor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.omf")
	writeArchiveWithComment(t, path, "Open Mining Format 3.0")

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNewerVersion)
}

func TestOpen_RejectsNewerMinor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minor.omf")
	writeArchiveWithComment(t, path, "Open Mining Format 2.9")

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNewerVersion)
}

func TestOpen_RejectsPreRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pre.omf")
	writeArchiveWithComment(t, path, "Open Mining Format 2.0-rc1")

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPreRelease)
}

func TestOpen_RejectsNonZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-zip")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := Open(path)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.ZipError, e.Code)
}
