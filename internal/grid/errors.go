package grid

import "errors"

var (
	// ErrNotFound indicates the path does not resolve to an existing file.
	ErrNotFound = errors.New("grid: file not found")

	// ErrCorrupt indicates the file exists but its size or encoding is invalid.
	ErrCorrupt = errors.New("grid: corrupt data")

	// ErrInvalidShape indicates a shape with a non-positive dimension.
	ErrInvalidShape = errors.New("grid: invalid shape")
)

// DecodeError wraps a decode failure with the file it came from.
type DecodeError struct {
	Op   string
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
