package common

import "errors"

type Code string

const (
	CodeNotFound      Code = "not_found"
	CodeForbidden     Code = "forbidden"
	CodeConflict      Code = "conflict"
	CodeQuotaExceeded Code = "quota_exceeded"
	CodeValidation    Code = "validation"
	CodeUnauthorized  Code = "unauthorized"
	CodeRateLimited   Code = "rate_limited"
	CodeInternal      Code = "internal"
)

// Error is the single error type services return. Business-rule
// violations carry a non-internal code; only CodeInternal wraps
// infrastructure failures.
type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf extracts the error code, defaulting to CodeInternal for
// anything that is not a *common.Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
