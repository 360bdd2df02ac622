package docsnip

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	ETIMEOUT  = "timeout"
	ERENDER   = "render"
	EINTERNAL = "internal"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docsnip error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// Stage names the pipeline step that failed.
type Stage string

// Pipeline stages that can fail hard. Extraction never fails.
const (
	StageLoad   Stage = "load"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
)

// StageError reports which stage failed and for which URL or path.
type StageError struct {
	Stage  Stage
	Target string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Stage, e.Target, ErrorMessageOrText(e.Err))
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ErrorMessageOrText returns the application message for application errors
// and the plain error text otherwise.
func ErrorMessageOrText(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
