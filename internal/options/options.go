// Package options implements the functional-options pattern shared by every
// configurable session type in this module: writer.Writer, reader.Reader and
// omf1.Converter each take a variadic ...Option[T] at construction and apply
// them in order, so no session type grows its own config struct.
package options

// Option is one configuration step applied to a T at construction time.
// Steps that cannot fail should be built with NoError; fallible ones (e.g.
// rejecting an out-of-range compression level) with New.
type Option[T any] func(T) error

// New wraps a fallible configuration step.
func New[T any](fn func(T) error) Option[T] {
	return Option[T](fn)
}

// NoError wraps an infallible configuration step.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)

		return nil
	}
}

// Apply runs opts against target in order, stopping at the first error.
// Later options override earlier ones, so a caller-supplied option always
// wins over the constructor's defaults.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}
