package apperror

import "fmt"

// AppError is the error type every service returns to the transport layer.
// Code is a stable machine-readable identifier, Message is safe to show to
// an operator, HTTPStatus is the status the handler should respond with.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches an underlying cause so errors.Is/As keep working.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetail returns a copy of e with extra context appended to the message.
// The sentinel itself stays untouched so errors.Is checks keep working.
func (e *AppError) WithDetail(detail string) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    fmt.Sprintf("%s: %s", e.Message, detail),
		HTTPStatus: e.HTTPStatus,
		Err:        e,
	}
}
