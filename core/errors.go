package core

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the failure modes of notebook operations. Every code
// is non-fatal to the engine; failures surface as structured result records,
// never as panics or errors crossing the public API boundary.
type ErrorCode string

const (
	// ErrEmptyContent marks cell creation or update with blank source.
	ErrEmptyContent ErrorCode = "empty_content"
	// ErrIndexOutOfRange marks an index-based operation with an invalid index.
	ErrIndexOutOfRange ErrorCode = "index_out_of_range"
	// ErrWrongCellType marks an attempt to execute a non-code cell.
	ErrWrongCellType ErrorCode = "wrong_cell_type"
	// ErrExecutionFailure marks code that raised during execution.
	ErrExecutionFailure ErrorCode = "execution_failure"
	// ErrSerializationFailure marks notebook data that cannot be rendered to
	// the persisted format.
	ErrSerializationFailure ErrorCode = "serialization_failure"
	// ErrIOFailure marks a file that is missing or not writable.
	ErrIOFailure ErrorCode = "io_failure"
)

// Error is a classified notebook failure. It implements the error interface
// so internal layers can return it idiomatically before the boundary converts
// it into a result record.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error returns the human readable message.
func (e *Error) Error() string { return e.Message }

// NewError creates a classified error with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, or IOFailure for unclassified
// errors (the only unclassified failures left are filesystem ones).
func CodeOf(err error) ErrorCode {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Code
	}
	return ErrIOFailure
}

// IsCode reports whether err carries the given ErrorCode.
func IsCode(err error, code ErrorCode) bool {
	var ne *Error
	return errors.As(err, &ne) && ne.Code == code
}
