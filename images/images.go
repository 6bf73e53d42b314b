// Package images implements the image codec: PNG (8 or 16 bit, 1-4
// channel) and JPEG (8-bit RGB) encode/decode, type sniffing by magic
// bytes, and a pre-decode memory check against limits.Limits. An image
// member carries no separate type field, so Sniff recovers the container
// format from the data itself.
package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/limits"
)

// Format is the closed set of encoded image container formats OMF2 stores,
// mirroring format.ArrayType's role for the array catalog.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// Extension returns the archive member extension for f: .png or .jpg.
func (f Format) Extension() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatJPEG:
		return ".jpg"
	default:
		return ""
	}
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

// Sniff identifies an encoded image's container format from its leading
// magic bytes.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	default:
		return FormatUnknown
	}
}

// Mode identifies the channel layout and bit depth of a decoded image, since
// the PNG spec allows several combinations OMF2 must round-trip exactly
// (grayscale, grayscale-alpha, RGB, RGBA, each 8 or 16 bit) while JPEG is
// always 8-bit RGB.
type Mode uint8

const (
	ModeUnknown Mode = iota
	ModeGray8
	ModeGray16
	ModeGrayAlpha8
	ModeGrayAlpha16
	ModeRGB8
	ModeRGB16
	ModeRGBA8
	ModeRGBA16
)

// Channels reports how many color channels m carries.
func (m Mode) Channels() int {
	switch m {
	case ModeGray8, ModeGray16:
		return 1
	case ModeGrayAlpha8, ModeGrayAlpha16:
		return 2
	case ModeRGB8, ModeRGB16:
		return 3
	case ModeRGBA8, ModeRGBA16:
		return 4
	default:
		return 0
	}
}

// BytesPerChannel reports the sample width in bytes (1 or 2) for m.
func (m Mode) BytesPerChannel() int {
	switch m {
	case ModeGray16, ModeGrayAlpha16, ModeRGB16, ModeRGBA16:
		return 2
	case ModeGray8, ModeGrayAlpha8, ModeRGB8, ModeRGBA8:
		return 1
	default:
		return 0
	}
}

// Decoded is the result of decoding an image. Exactly one of Bytes8/Bytes16
// is populated, selected by Mode's bit depth.
type Decoded struct {
	Width, Height int
	Mode          Mode
	Bytes8        []uint8
	Bytes16       []uint16
}

// decodedByteSize computes the memory a decode would require, for the
// pre-decode limit check.
func decodedByteSize(width, height int, mode Mode) int64 {
	return int64(width) * int64(height) * int64(mode.Channels()) * int64(mode.BytesPerChannel())
}

// WritePassthrough validates that data is recognizable PNG or JPEG data and
// returns its sniffed Format, for the write path that stores an
// already-encoded image verbatim instead of re-encoding a decoded buffer.
func WritePassthrough(data []byte) (Format, error) {
	f := Sniff(data)
	if f == FormatUnknown {
		return FormatUnknown, errs.ErrNotImageData
	}

	return f, nil
}

// Decode decodes PNG or JPEG bytes (sniffed automatically), enforcing lim
// before allocating the output buffer: the width*height*channels*
// bytesPerChannel check fails with LimitExceeded if the decode would exceed
// it, before decoding begins, not partway through.
func Decode(data []byte, lim limits.Limits) (*Decoded, error) {
	format := Sniff(data)
	if format == FormatUnknown {
		return nil, errs.ErrNotImageData
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ImageError, err, "failed to parse image header")
	}

	if lim.CheckImageDimension(int64(cfg.Width)) || lim.CheckImageDimension(int64(cfg.Height)) {
		return nil, errs.ErrLimitExceeded
	}

	mode, err := modeForHeader(format, data)
	if err != nil {
		return nil, err
	}

	if lim.CheckImageBytes(decodedByteSize(cfg.Width, cfg.Height, mode)) {
		return nil, errs.ErrLimitExceeded
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ImageError, err, "failed to decode image")
	}

	return fromImage(img, mode)
}

// pngColorType byte values, from the PNG spec's IHDR chunk.
const (
	pngColorGrayscale      = 0
	pngColorTruecolor      = 2
	pngColorIndexed        = 3
	pngColorGrayscaleAlpha = 4
	pngColorTruecolorAlpha = 6
)

// modeForHeader determines the decoded Mode before the pixel buffer is ever
// allocated, reading the PNG IHDR color-type/bit-depth bytes directly (offset
// 25 and 24 after the 8-byte signature and 8-byte chunk length+type) rather
// than going through image.Decode, so the memory check runs strictly
// before decoding begins.
func modeForHeader(format Format, data []byte) (Mode, error) {
	if format == FormatJPEG {
		return ModeRGB8, nil
	}

	if len(data) < 26 {
		return ModeUnknown, errs.ErrNotImageData
	}

	bitDepth := data[24]
	colorType := data[25]

	switch colorType {
	case pngColorGrayscale:
		if bitDepth == 16 {
			return ModeGray16, nil
		}
		return ModeGray8, nil
	case pngColorGrayscaleAlpha:
		if bitDepth == 16 {
			return ModeGrayAlpha16, nil
		}
		return ModeGrayAlpha8, nil
	case pngColorTruecolor:
		if bitDepth == 16 {
			return ModeRGB16, nil
		}
		return ModeRGB8, nil
	case pngColorTruecolorAlpha:
		if bitDepth == 16 {
			return ModeRGBA16, nil
		}
		return ModeRGBA8, nil
	case pngColorIndexed:
		// image/png expands palette images to 8-bit RGBA on decode.
		return ModeRGBA8, nil
	default:
		return ModeUnknown, errs.Newf(errs.NotImageData, "unsupported PNG color type %d", colorType)
	}
}

// EncodePNG writes d as PNG, choosing the narrowest PNG color type that holds
// mode (grayscale, grayscale-alpha, RGB, or RGBA, 8 or 16 bit).
func EncodePNG(w io.Writer, d *Decoded) error {
	img, err := toImage(d)
	if err != nil {
		return err
	}

	if err := png.Encode(w, img); err != nil {
		return errs.Wrap(errs.ImageError, err, "failed to encode PNG")
	}

	return nil
}

// EncodeJPEG writes img as 8-bit RGB JPEG at the given quality (0-100).
func EncodeJPEG(w io.Writer, d *Decoded, quality int) error {
	img, err := toImage(d)
	if err != nil {
		return err
	}

	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return errs.Wrap(errs.ImageError, err, "failed to encode JPEG")
	}

	return nil
}

// fromImage extracts a Decoded buffer from a standard library decoded image,
// converting through color.NRGBA/NRGBA64/Gray/Gray16 regardless of the
// concrete image.Image type image.Decode returned, since decoders are free
// to pick whichever concrete type best matches the source pixels.
func fromImage(img image.Image, mode Mode) (*Decoded, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	d := &Decoded{Width: width, Height: height, Mode: mode}

	switch mode.BytesPerChannel() {
	case 1:
		d.Bytes8 = make([]uint8, width*height*mode.Channels())
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				switch mode {
				case ModeGray8:
					g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
					d.Bytes8[i] = g.Y
					i++
				case ModeGrayAlpha8:
					n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
					d.Bytes8[i], d.Bytes8[i+1] = n.R, n.A
					i += 2
				case ModeRGB8:
					n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
					d.Bytes8[i], d.Bytes8[i+1], d.Bytes8[i+2] = n.R, n.G, n.B
					i += 3
				case ModeRGBA8:
					n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
					d.Bytes8[i], d.Bytes8[i+1], d.Bytes8[i+2], d.Bytes8[i+3] = n.R, n.G, n.B, n.A
					i += 4
				}
			}
		}
	case 2:
		d.Bytes16 = make([]uint16, width*height*mode.Channels())
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				switch mode {
				case ModeGray16:
					g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
					d.Bytes16[i] = g.Y
					i++
				case ModeGrayAlpha16:
					n := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
					d.Bytes16[i], d.Bytes16[i+1] = n.R, n.A
					i += 2
				case ModeRGB16:
					n := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
					d.Bytes16[i], d.Bytes16[i+1], d.Bytes16[i+2] = n.R, n.G, n.B
					i += 3
				case ModeRGBA16:
					n := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
					d.Bytes16[i], d.Bytes16[i+1], d.Bytes16[i+2], d.Bytes16[i+3] = n.R, n.G, n.B, n.A
					i += 4
				}
			}
		}
	default:
		return nil, errs.Newf(errs.ImageError, "unsupported image mode")
	}

	return d, nil
}

// toImage builds a standard library image.Image from a Decoded buffer for
// encoding. Grayscale-alpha modes have no dedicated type in the image
// package, so they round-trip through image.NRGBA/NRGBA64 with R=G=B; the
// PNG encoder then emits them as truecolor+alpha rather than grayscale+alpha,
// a known gap of the stdlib PNG encoder rather than one this package adds.
func toImage(d *Decoded) (image.Image, error) {
	if d == nil || d.Width <= 0 || d.Height <= 0 {
		return nil, errs.ErrInvalidArgument
	}

	rect := image.Rect(0, 0, d.Width, d.Height)

	switch d.Mode {
	case ModeGray8:
		if len(d.Bytes8) != d.Width*d.Height {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewGray(rect)
		copy(img.Pix, d.Bytes8)
		return img, nil

	case ModeGrayAlpha8:
		if len(d.Bytes8) != d.Width*d.Height*2 {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewNRGBA(rect)
		i := 0
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				g, a := d.Bytes8[i], d.Bytes8[i+1]
				img.SetNRGBA(x, y, color.NRGBA{R: g, G: g, B: g, A: a})
				i += 2
			}
		}
		return img, nil

	case ModeRGB8:
		if len(d.Bytes8) != d.Width*d.Height*3 {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewNRGBA(rect)
		i := 0
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: d.Bytes8[i], G: d.Bytes8[i+1], B: d.Bytes8[i+2], A: 255})
				i += 3
			}
		}
		return img, nil

	case ModeRGBA8:
		if len(d.Bytes8) != d.Width*d.Height*4 {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewNRGBA(rect)
		copy(img.Pix, d.Bytes8)
		return img, nil

	case ModeGray16:
		if len(d.Bytes16) != d.Width*d.Height {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewGray16(rect)
		i := 0
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				img.SetGray16(x, y, color.Gray16{Y: d.Bytes16[i]})
				i++
			}
		}
		return img, nil

	case ModeGrayAlpha16:
		if len(d.Bytes16) != d.Width*d.Height*2 {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewNRGBA64(rect)
		i := 0
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				g, a := d.Bytes16[i], d.Bytes16[i+1]
				img.SetNRGBA64(x, y, color.NRGBA64{R: g, G: g, B: g, A: a})
				i += 2
			}
		}
		return img, nil

	case ModeRGB16:
		if len(d.Bytes16) != d.Width*d.Height*3 {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewNRGBA64(rect)
		i := 0
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				img.SetNRGBA64(x, y, color.NRGBA64{R: d.Bytes16[i], G: d.Bytes16[i+1], B: d.Bytes16[i+2], A: 65535})
				i += 3
			}
		}
		return img, nil

	case ModeRGBA16:
		if len(d.Bytes16) != d.Width*d.Height*4 {
			return nil, errs.ErrBufferLengthWrong
		}
		img := image.NewNRGBA64(rect)
		i := 0
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				img.SetNRGBA64(x, y, color.NRGBA64{
					R: d.Bytes16[i], G: d.Bytes16[i+1], B: d.Bytes16[i+2], A: d.Bytes16[i+3],
				})
				i += 4
			}
		}
		return img, nil

	default:
		return nil, errs.Newf(errs.ImageError, "unsupported image mode")
	}
}
