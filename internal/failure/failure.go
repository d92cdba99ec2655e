// Package failure defines the user-facing error kinds of a summarization cycle.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the presentation layer.
type Kind string

const (
	KindEmptyInput      Kind = "EMPTY_INPUT"
	KindDecodeFailure   Kind = "DECODE_FAILURE"
	KindInvalidSettings Kind = "INVALID_SETTINGS"
	KindModelFailure    Kind = "MODEL_FAILURE"
	KindExportFailure   Kind = "EXPORT_FAILURE"
	KindNotFound        Kind = "NOT_FOUND"
)

const (
	MessageEmptyInput    = "Please upload a file or paste some text!"
	MessageDecodeFailure = "The uploaded file must be UTF-8 encoded .txt text."
	MessageModelFailure  = "The summarization service failed. Please try again."
	MessageExportFailure = "The summary could not be exported. Please try again."
	MessageNotFound      = "export not found"
)

// Error carries a kind, a message that is safe to show, and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyInput = &Error{Kind: KindEmptyInput, Message: MessageEmptyInput}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: MessageNotFound}
)

func Decode(err error) error {
	return &Error{Kind: KindDecodeFailure, Message: MessageDecodeFailure, Err: err}
}

// InvalidSettings uses the cause text as the message; validation errors are written for users.
func InvalidSettings(err error) error {
	return &Error{Kind: KindInvalidSettings, Message: err.Error(), Err: err}
}

func Model(err error) error {
	return &Error{Kind: KindModelFailure, Message: MessageModelFailure, Err: err}
}

func Export(err error) error {
	return &Error{Kind: KindExportFailure, Message: MessageExportFailure, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// MessageOf returns the user-facing message of err, or "" if err is not an *Error.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return ""
}
