package images

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/limits"
)

func solidRGBA8(w, h int, r, g, b, a uint8) *Decoded {
	buf := make([]uint8, w*h*4)
	for i := 0; i < w*h; i++ {
		buf[i*4], buf[i*4+1], buf[i*4+2], buf[i*4+3] = r, g, b, a
	}

	return &Decoded{Width: w, Height: h, Mode: ModeRGBA8, Bytes8: buf}
}

func TestPNG_RoundTrip_RGBA8(t *testing.T) {
	d := solidRGBA8(4, 3, 10, 20, 30, 255)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, d))

	assert.Equal(t, FormatPNG, Sniff(buf.Bytes()))

	got, err := Decode(buf.Bytes(), limits.Default())
	require.NoError(t, err)
	assert.Equal(t, d.Width, got.Width)
	assert.Equal(t, d.Height, got.Height)
	assert.Equal(t, d.Bytes8, got.Bytes8)
}

func TestPNG_RoundTrip_Gray8(t *testing.T) {
	d := &Decoded{Width: 2, Height: 2, Mode: ModeGray8, Bytes8: []uint8{0, 64, 128, 255}}

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, d))

	got, err := Decode(buf.Bytes(), limits.Default())
	require.NoError(t, err)
	assert.Equal(t, ModeGray8, got.Mode)
	assert.Equal(t, d.Bytes8, got.Bytes8)
}

func TestJPEG_RoundTrip_RGB8(t *testing.T) {
	d := &Decoded{Width: 4, Height: 4, Mode: ModeRGB8, Bytes8: make([]uint8, 4*4*3)}
	for i := range d.Bytes8 {
		d.Bytes8[i] = uint8(i % 256)
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeJPEG(&buf, d, 90))

	assert.Equal(t, FormatJPEG, Sniff(buf.Bytes()))

	got, err := Decode(buf.Bytes(), limits.Default())
	require.NoError(t, err)
	assert.Equal(t, ModeRGB8, got.Mode)
	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 4, got.Height)
}

func TestDecode_RejectsNonImageData(t *testing.T) {
	_, err := Decode([]byte("not an image"), limits.Default())
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.NotImageData, e.Code)
}

func TestDecode_EnforcesImageByteLimit(t *testing.T) {
	d := solidRGBA8(100, 100, 1, 2, 3, 255)
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, d))

	lim := limits.Default()
	lim.MaxImageBytes = 10

	_, err := Decode(buf.Bytes(), lim)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.LimitExceeded, e.Code)
}

func TestDecode_EnforcesImageDimensionLimit(t *testing.T) {
	d := solidRGBA8(100, 100, 1, 2, 3, 255)
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, d))

	lim := limits.Default()
	lim.MaxImageDimension = 10

	_, err := Decode(buf.Bytes(), lim)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.LimitExceeded, e.Code)
}

func TestWritePassthrough(t *testing.T) {
	d := solidRGBA8(1, 1, 1, 2, 3, 255)
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, d))

	f, err := WritePassthrough(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = WritePassthrough([]byte("garbage"))
	require.Error(t, err)
}
