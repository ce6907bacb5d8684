package domain

import "errors"

// Error kinds. Callers match on these with errors.Is; the concrete errors below
// carry the message shown to the user.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorizationDenied    = errors.New("authorization denied")
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
)

var (
	ErrLoginRequired = newError(ErrAuthenticationRequired, "you must be logged in")
	ErrNoOrgAccess   = newError(ErrAuthorizationDenied, "you do not have access to this organization")
	ErrNoFileAccess  = newError(ErrAuthorizationDenied, "you do not have access to this file")
	ErrFileNotFound  = newError(ErrNotFound, "this file does not exist")
	ErrUserNotFound  = newError(ErrNotFound, "no user found")

	ErrStorageIDInvalid = newError(ErrInvalidInput, "storage id was not issued by this service")
	ErrInvalidFileType  = newError(ErrInvalidInput, "type must be one of image, csv, pdf")
	ErrFileNameRequired = newError(ErrInvalidInput, "name is required")
)

type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error { return &Error{kind: kind, msg: msg} }

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }
