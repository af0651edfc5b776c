package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorCode represents the kind of failure a native command ran into
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotFound
	ErrCodeAlreadyExists
	ErrCodeIO
	ErrCodeProcess
	ErrCodeURLParse
	ErrCodeValidation
)

// String returns a string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeAlreadyExists:
		return "ALREADY_EXISTS"
	case ErrCodeIO:
		return "IO_FAILURE"
	case ErrCodeProcess:
		return "PROCESS_FAILURE"
	case ErrCodeURLParse:
		return "URL_PARSE_FAILURE"
	case ErrCodeValidation:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}

// CommandError is the internal error type of the command layer. It keeps the
// failure kind around until the error is flattened at the UI boundary.
type CommandError struct {
	Op        string            // command name
	Err       error             // underlying error
	Code      ErrorCode         // error classification
	Context   map[string]string // additional context information
	Timestamp time.Time         // when the error occurred
}

func (e *CommandError) Error() string {
	if e == nil {
		return "command error"
	}

	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	if e.Code != ErrCodeUnknown {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code.String()))
	}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
	}

	contextStr := ""
	if len(parts) > 0 {
		contextStr = fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}

	if e.Err != nil {
		return e.Err.Error() + contextStr
	}
	return "command error" + contextStr
}

func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements error matching for errors.Is
func (e *CommandError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*CommandError); ok {
		return e.Code == t.Code
	}
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// GetCode returns the error code as a string (for logging interface compatibility)
func (e *CommandError) GetCode() string {
	if e == nil {
		return ErrCodeUnknown.String()
	}
	return e.Code.String()
}

// GetContext returns the error context (for logging interface compatibility)
func (e *CommandError) GetContext() map[string]string {
	if e == nil || e.Context == nil {
		return make(map[string]string)
	}
	return e.Context
}

// GetTimestamp returns the error timestamp (for logging interface compatibility)
func (e *CommandError) GetTimestamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.Timestamp
}

// WithContext adds context information to the error by mutating the receiver.
// Not safe once the error has been handed to another goroutine.
func (e *CommandError) WithContext(key, value string) *CommandError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// NewCommandError creates a new command error with the given parameters
func NewCommandError(op string, err error, code ErrorCode) *CommandError {
	return &CommandError{
		Op:        op,
		Err:       err,
		Code:      code,
		Context:   make(map[string]string),
		Timestamp: time.Now(),
	}
}

// NewCommandErrorWithContext creates a new command error with additional context
func NewCommandErrorWithContext(op string, err error, code ErrorCode, context map[string]string) *CommandError {
	cmdErr := NewCommandError(op, err, code)
	if context != nil {
		cmdErr.Context = make(map[string]string, len(context))
		for k, v := range context {
			cmdErr.Context[k] = v
		}
	}
	return cmdErr
}

// CodeOf returns the code of the first CommandError in err's chain
func CodeOf(err error) ErrorCode {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ErrCodeUnknown
}

// IsNotFound checks if the error is a "not found" error
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsAlreadyExists checks if the error is an "already exists" error
func IsAlreadyExists(err error) bool {
	return CodeOf(err) == ErrCodeAlreadyExists
}

// IsIO checks if the error is a file-system failure
func IsIO(err error) bool {
	return CodeOf(err) == ErrCodeIO
}

// IsProcess checks if the error came from a spawned shell process
func IsProcess(err error) bool {
	return CodeOf(err) == ErrCodeProcess
}

// IsURLParse checks if the error is a malformed URL error
func IsURLParse(err error) bool {
	return CodeOf(err) == ErrCodeURLParse
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}
