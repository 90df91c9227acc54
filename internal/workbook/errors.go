package workbook

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("workbook controller closed")

// ErrorCode categorizes rejected operations.
type ErrorCode string

const (
	// ErrCodeValidation indicates a required value is missing or unparsable.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeInvalidDate indicates a date that is malformed or outside its month.
	ErrCodeInvalidDate ErrorCode = "INVALID_DATE"

	// ErrCodeUnknownMonth indicates a month name outside January..December.
	ErrCodeUnknownMonth ErrorCode = "UNKNOWN_MONTH"

	// ErrCodeUnknownField indicates a field path the schema does not define.
	ErrCodeUnknownField ErrorCode = "UNKNOWN_FIELD"

	// ErrCodeUnknownWeek indicates a week key outside week1..week5.
	ErrCodeUnknownWeek ErrorCode = "UNKNOWN_WEEK"

	// ErrCodeUnknownDimension indicates an identity-wheel key outside the fixed six.
	ErrCodeUnknownDimension ErrorCode = "UNKNOWN_DIMENSION"

	// ErrCodeProfileExists indicates CreateProfile after onboarding.
	ErrCodeProfileExists ErrorCode = "PROFILE_EXISTS"

	// ErrCodeNoProfile indicates an operation that needs a profile before one exists.
	ErrCodeNoProfile ErrorCode = "NO_PROFILE"
)

// Error reports a rejected operation. The state is unchanged when an
// operation returns an *Error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the offending input, if any.
	Field string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func newError(code ErrorCode, field string, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Field: field, Err: cause}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var we *Error
	if errors.As(err, &we) {
		return we.Code, true
	}
	return "", false
}

// IsValidationError returns true for rejected user input: missing values,
// unparsable numbers and bad dates.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	code, ok := CodeOf(err)
	return ok && (code == ErrCodeValidation || code == ErrCodeInvalidDate)
}

// IsUnknownKeyError returns true when a month, field, week or wheel key is
// outside the fixed schema.
func IsUnknownKeyError(err error) bool {
	code, _ := CodeOf(err)
	switch code {
	case ErrCodeUnknownMonth, ErrCodeUnknownField, ErrCodeUnknownWeek, ErrCodeUnknownDimension:
		return true
	}
	return false
}

// IsProfileError returns true for PROFILE_EXISTS and NO_PROFILE.
func IsProfileError(err error) bool {
	code, _ := CodeOf(err)
	return code == ErrCodeProfileExists || code == ErrCodeNoProfile
}
