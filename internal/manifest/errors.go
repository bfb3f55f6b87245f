package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SyntaxError reports malformed manifest JSON.
type SyntaxError struct {
	// Msg describes the problem.
	Msg string

	// Offset is the byte offset of the error, when known.
	Offset int64

	// Err is the underlying decoder error, if any.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("malformed JSON at offset %d: %s", e.Offset, e.Msg)
	}
	return "malformed JSON: " + e.Msg
}

// Unwrap returns the underlying decoder error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{Msg: se.Error(), Offset: se.Offset, Err: err}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &SyntaxError{Msg: "unexpected end of input", Err: err}
	}
	return &SyntaxError{Msg: err.Error(), Err: err}
}

// EntryError reports a descriptor that cannot be used.
type EntryError struct {
	// Index is the zero-based position of the descriptor in the manifest.
	Index int

	// Key is the descriptor's key for object manifests.
	Key string

	// Field is the offending field, if the problem is field-specific.
	Field string

	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	where := fmt.Sprintf("entry %d", e.Index)
	if e.Key != "" {
		where = fmt.Sprintf("entry %q", e.Key)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q %s", where, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", where, e.Reason)
}
