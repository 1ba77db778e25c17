package usecase

import "fmt"

// ErrorCode classifies a failed invocation. Handler errors are turned into the
// spoken apology; invalid-input and internal errors are returned to the caller
// and fail the Lambda invocation.
type ErrorCode string

const (
	// ErrorInvalidInput marks an envelope the skill refuses to serve, such as a
	// foreign application id or a missing user id.
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorHandler marks a dispatch failure: no handler matched, a handler
	// returned an error or panicked.
	ErrorHandler ErrorCode = "HANDLER_ERROR"
	// ErrorInternal marks a failure of the attribute store.
	ErrorInternal ErrorCode = "INTERNAL_ERROR"
)

// Error carries the code, a short snake_case reason such as
// "dynamodb_save_error", and the underlying cause when there is one.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// newError wraps err, which may be nil, under code and reason.
func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
