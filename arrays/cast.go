package arrays

import (
	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/format"
)

// Kind identifies the requested in-memory representation for a read,
// independent of the array's on-disk format.ArrayType. Reader callers pick a
// Kind; CheckCast reports whether that choice is an allowed widening of the
// array's stored type.
type Kind uint8

const (
	KindFloat32 Kind = iota
	KindFloat64
	KindInt64
	KindDateDays32
	KindDateDays64
	KindDateDaysFloat64
	KindDateTimeMicros64
	KindDateTimeSecondsFloat64
)

// CheckCast reports whether reading an array stored as stored can be
// widened to requested, returning errs.ErrUnsafeCast if not.
//
// Allowed widenings:
//   - float32 -> float64
//   - signed integers widen within-signed (kept trivial here: OMF2 only has
//     one stored integer width, int64, so there is nothing to widen into)
//   - date (i32 days) -> i64 days or f64 days
//   - date-time (i64 µs) -> i64 µs or f64 seconds (precision loss noted)
//
// Every other combination, including any narrowing cast, fails UnsafeCast.
func CheckCast(stored format.ArrayType, requested Kind) error {
	switch stored {
	case format.NumberFloat32, format.Scalar32, format.Vertex32, format.Texcoord32,
		format.BoundaryFloat32, format.Vector32x2, format.Vector32x3:
		if requested == KindFloat32 || requested == KindFloat64 {
			return nil
		}
	case format.NumberFloat64, format.Scalar64, format.Vertex64, format.Texcoord64,
		format.BoundaryFloat64, format.Vector64x2, format.Vector64x3:
		if requested == KindFloat64 {
			return nil
		}
	case format.NumberInt64, format.BoundaryInt64:
		if requested == KindInt64 {
			return nil
		}
	case format.NumberDate, format.BoundaryDate:
		switch requested {
		case KindDateDays32, KindDateDays64, KindDateDaysFloat64:
			return nil
		}
	case format.NumberDateTime, format.BoundaryDateTime:
		switch requested {
		case KindDateTimeMicros64, KindDateTimeSecondsFloat64:
			return nil
		}
	}

	return errs.Newf(errs.UnsafeCast, "cannot cast %s array to requested representation", stored)
}

// WidenFloat32ToFloat64 performs the one non-trivial widening this codec
// supports on decode.
func WidenFloat32ToFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}

	return out
}

// DateTimeMicrosToSeconds converts stored microsecond DateTime values to
// float64 seconds, documented as a precision-lossy cast.
func DateTimeMicrosToSeconds(values []int64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v) / 1e6
	}

	return out
}

// DateDaysToFloat64 converts stored i32 day counts to float64 days.
func DateDaysToFloat64(values []int32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}

	return out
}

// DateDaysToInt64 converts stored i32 day counts to i64 days.
func DateDaysToInt64(values []int32) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}

	return out
}
