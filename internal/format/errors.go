package format

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying why a document failed to load.
var (
	// ErrMissingFile is returned when an expected page file does not exist.
	ErrMissingFile = errors.New("missing page file")

	// ErrMalformedHeader is returned when a page does not start with the v5 magic.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncated is returned when a read runs past the end of a page buffer.
	ErrTruncated = errors.New("truncated data")

	// ErrInvalidColorIndex is returned for a stroke color outside the palette.
	ErrInvalidColorIndex = errors.New("invalid color index")
)

// DecodeError locates a load failure within a document.
type DecodeError struct {
	Page   int    // Page index
	Offset int    // Byte offset within the page file, -1 if not applicable
	Kind   error  // One of the sentinel errors above
	Msg    string // Details
	Err    error  // Underlying error, if any
}

func (e *DecodeError) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Offset < 0 {
		return fmt.Sprintf("page %d: %s", e.Page, msg)
	}
	return fmt.Sprintf("page %d at offset %d: %s", e.Page, e.Offset, msg)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
