package ossim

import (
	"errors"
	"fmt"
)

// Error is a structured simulator error with enough context to place a
// failure in the run: which phase produced it, which process (if any)
// was involved, and the underlying cause.
type Error struct {
	Op         string // phase that failed, e.g. "config", "metadata", "build"
	ProcessNum int    // process number (-1 if not applicable)
	Code       ErrorCode
	Msg        string
	Inner      error
}

func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.ProcessNum >= 0 {
		parts = append(parts, fmt.Sprintf("process=%d", e.ProcessNum))
	}

	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}

	if len(parts) > 0 {
		return fmt.Sprintf("ossim: %s (%s)", msg, parts[0])
	}
	return fmt.Sprintf("ossim: %s", msg)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if te, ok := target.(*Error); ok {
		return e.Code == te.Code
	}
	return false
}

// ErrorCode categorizes the phase of the simulator that rejected the run.
type ErrorCode string

const (
	ErrCodeConfigInvalid   ErrorCode = "configuration file invalid"
	ErrCodeConfigNotFound  ErrorCode = "configuration file not found"
	ErrCodeMetadataInvalid ErrorCode = "metadata file invalid"
	ErrCodeMetadataNotFound ErrorCode = "metadata file not found"
	ErrCodeBuildFailed     ErrorCode = "PCB build failed"
	ErrCodeLogIOFailed     ErrorCode = "trace log write failed"
	ErrCodeSegFault        ErrorCode = "segmentation fault"
)

// NewError creates a structured error for op with no process context.
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, ProcessNum: -1, Code: code, Msg: msg}
}

// NewProcessError creates a structured error attributed to a specific process.
func NewProcessError(op string, processNum int, code ErrorCode, msg string) *Error {
	return &Error{Op: op, ProcessNum: processNum, Code: code, Msg: msg}
}

// WrapError wraps inner with op context, preserving code if inner is
// already a structured Error.
func WrapError(op string, inner error) *Error {
	if inner == nil {
		return nil
	}
	if oe, ok := inner.(*Error); ok {
		return &Error{
			Op:         op,
			ProcessNum: oe.ProcessNum,
			Code:       oe.Code,
			Msg:        oe.Msg,
			Inner:      oe.Inner,
		}
	}
	return &Error{
		Op:         op,
		ProcessNum: -1,
		Code:       ErrCodeBuildFailed,
		Msg:        inner.Error(),
		Inner:      inner,
	}
}

// IsCode reports whether err is (or wraps) a structured Error with code.
func IsCode(err error, code ErrorCode) bool {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Code == code
	}
	return false
}
