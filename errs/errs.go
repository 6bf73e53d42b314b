// Package errs defines the OMF2 error taxonomy shared by every package in this
// module: container, limits, arrays, images, index, writer, reader and omf1.
//
// Every fallible exported function in this module returns (or wraps) an *Error
// rather than a bare error, so callers can switch on Code without parsing strings.
package errs

import "fmt"

// Code is a closed enumeration of the failure modes a session can report.
//
// The set mirrors the OMF2 container/index/array/image contract: callers that
// need machine-readable dispatch should switch on Code, not on Error.Error().
type Code uint8

const (
	Success Code = iota
	Panic
	InvalidArgument
	InvalidCall
	OutOfMemory
	IoError
	NotOmf
	NewerVersion
	PreRelease
	DeserializationFailed
	SerializationFailed
	ValidationFailed
	LimitExceeded
	NotImageData
	NotParquetData
	ArrayTypeWrong
	BufferLengthWrong
	InvalidData
	UnsafeCast
	ZipMemberMissing
	ZipError
	ParquetSchemaMismatch
	ParquetError
	ImageError
)

// String returns the US-English name of the code, one per error taxonomy
// entry (each failure carries exactly one required message string).
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case Panic:
		return "Panic"
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidCall:
		return "InvalidCall"
	case OutOfMemory:
		return "OutOfMemory"
	case IoError:
		return "IoError"
	case NotOmf:
		return "NotOmf"
	case NewerVersion:
		return "NewerVersion"
	case PreRelease:
		return "PreRelease"
	case DeserializationFailed:
		return "DeserializationFailed"
	case SerializationFailed:
		return "SerializationFailed"
	case ValidationFailed:
		return "ValidationFailed"
	case LimitExceeded:
		return "LimitExceeded"
	case NotImageData:
		return "NotImageData"
	case NotParquetData:
		return "NotParquetData"
	case ArrayTypeWrong:
		return "ArrayTypeWrong"
	case BufferLengthWrong:
		return "BufferLengthWrong"
	case InvalidData:
		return "InvalidData"
	case UnsafeCast:
		return "UnsafeCast"
	case ZipMemberMissing:
		return "ZipMemberMissing"
	case ZipError:
		return "ZipError"
	case ParquetSchemaMismatch:
		return "ParquetSchemaMismatch"
	case ParquetError:
		return "ParquetError"
	case ImageError:
		return "ImageError"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned across package boundaries.
//
// Errno carries the OS errno detail for IoError; it is zero
// for every other code.
type Error struct {
	Code    Code
	Message string
	Errno   int
	cause   error
}

// New creates an *Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an *Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error that carries cause as its Unwrap() target.
func Wrap(code Code, cause error, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target has the same Code, so callers can write
// errors.Is(err, errs.New(errs.NotOmf, "")) style sentinel comparisons.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}

// WithErrno attaches an OS errno detail to an IoError.
func (e *Error) WithErrno(errno int) *Error {
	e.Errno = errno
	return e
}

// Sentinel errors for the most common failure conditions. Code comparisons
// (via errors.Is) are what callers should rely on; the Message text is
// informational only.
var (
	ErrNotOmf                 = New(NotOmf, "end-of-archive comment does not begin with \"Open Mining Format \"")
	ErrZipMemberMissing       = New(ZipMemberMissing, "archive member not found")
	ErrNewerVersion           = New(NewerVersion, "index version is newer than this reader supports")
	ErrPreRelease             = New(PreRelease, "index version carries a pre-release tag")
	ErrDeserializationFailed  = New(DeserializationFailed, "failed to parse index JSON")
	ErrSerializationFailed    = New(SerializationFailed, "failed to serialize index JSON")
	ErrValidationFailed       = New(ValidationFailed, "validation reported one or more errors")
	ErrLimitExceeded          = New(LimitExceeded, "a configured safety limit was exceeded")
	ErrNotImageData           = New(NotImageData, "data is not recognizable image data")
	ErrNotParquetData         = New(NotParquetData, "data is not a valid Parquet file")
	ErrArrayTypeWrong         = New(ArrayTypeWrong, "array reference does not match the requested array type")
	ErrBufferLengthWrong      = New(BufferLengthWrong, "caller-provided buffer length does not match the array's item count")
	ErrInvalidData            = New(InvalidData, "input data violates a semantic constraint")
	ErrUnsafeCast             = New(UnsafeCast, "requested cast would lose precision or range")
	ErrInvalidCall            = New(InvalidCall, "call is not valid in the current state")
	ErrInvalidArgument        = New(InvalidArgument, "invalid argument")
	ErrPanic                  = New(Panic, "panic recovered at the library boundary")
	ErrParquetSchemaMismatch  = New(ParquetSchemaMismatch, "Parquet schema does not match the declared array type")
)
