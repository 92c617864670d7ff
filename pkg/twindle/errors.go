package twindle

import (
	"errors"
	"fmt"
)

// Kind labels a user facing failure
type Kind string

const (
	// KindMissingCredential indicates no bearer token is configured
	KindMissingCredential Kind = "MissingCredential"
	// KindMissingMailServerConfig indicates delivery was requested without mail relay credentials
	KindMissingMailServerConfig Kind = "MissingMailServerConfig"
	// KindMissingKindleAddress indicates delivery was requested but no address could be resolved
	KindMissingKindleAddress Kind = "MissingKindleAddress"
	// KindInvalidKindleAddress indicates the resolved address is not an email address
	KindInvalidKindleAddress Kind = "InvalidKindleAddress"
	// KindInvalidArguments indicates the command line could not be resolved into a run
	KindInvalidArguments Kind = "InvalidArguments"
)

// InternalLabel is shown for failures that carry no Kind
const InternalLabel = "Error"

// UserError is a failure the user can fix, tagged with its Kind
type UserError struct {
	Kind    Kind   // Identifies the failed check
	Message string // Human readable explanation
	Err     error  // Underlying error if any
}

// Error implements the error interface for UserError
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError of the given kind
func NewUserError(kind Kind, message string) *UserError {
	return &UserError{
		Kind:    kind,
		Message: message,
	}
}

// IsUserError reports whether err wraps a UserError of the given kind
func IsUserError(err error, kind Kind) bool {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Kind == kind
	}
	return false
}

// KindOf returns the Kind carried by err, or "" for internal failures
func KindOf(err error) Kind {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Kind
	}
	return ""
}

// Label returns the label shown next to err on the terminal
func Label(err error) string {
	if kind := KindOf(err); kind != "" {
		return string(kind)
	}
	return InternalLabel
}

// Message returns the human message of err without its kind
func Message(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
