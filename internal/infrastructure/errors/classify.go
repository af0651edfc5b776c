package errors

import (
	"errors"
	"io/fs"
	"net/url"
	"os/exec"
)

// ErrTargetExists is the cause reported when a rename destination is already taken
var ErrTargetExists = errors.New("target already exists")

// ErrPathNotFound is the cause reported when a required path is absent
var ErrPathNotFound = errors.New("path does not exist")

// ClassifyError maps the cause of a failed file-system, process or URL call to an error code
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}

	var exitErr *exec.ExitError
	var execErr *exec.Error
	var urlErr *url.Error

	switch {
	case errors.Is(err, ErrTargetExists):
		return ErrCodeAlreadyExists
	case errors.Is(err, ErrPathNotFound):
		return ErrCodeNotFound
	case errors.As(err, &exitErr), errors.As(err, &execErr):
		return ErrCodeProcess
	case errors.As(err, &urlErr):
		return ErrCodeURLParse
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.Is(err, fs.ErrExist):
		return ErrCodeAlreadyExists
	default:
		return ErrCodeIO
	}
}

// WrapWithContext wraps err with command error context, classifying it by its
// cause, and attaches contextMap
func WrapWithContext(op string, err error, contextMap map[string]string) error {
	if err == nil {
		return nil
	}
	return NewCommandErrorWithContext(op, err, ClassifyError(err), contextMap)
}

// HandlePathError wraps a failed file-system call on an input path. An absent
// path is reported as NOT_FOUND, anything else as IO_FAILURE.
func HandlePathError(op string, path string, err error) error {
	return WrapWithContext(op, err, map[string]string{
		"path": path,
	})
}

// HandleNotFound creates a standardized not found error for a missing path
func HandleNotFound(op string, path string) error {
	return NewCommandErrorWithContext(op, ErrPathNotFound, ErrCodeNotFound, map[string]string{
		"path": path,
	})
}

// HandleAlreadyExists creates a standardized collision error for an occupied destination
func HandleAlreadyExists(op string, path string) error {
	return NewCommandErrorWithContext(op, ErrTargetExists, ErrCodeAlreadyExists, map[string]string{
		"path": path,
	})
}

// HandleIOError wraps a file-system failure as IO_FAILURE whatever its cause
func HandleIOError(op string, path string, err error) error {
	return NewCommandErrorWithContext(op, err, ErrCodeIO, map[string]string{
		"path": path,
	})
}

// HandleProcessError wraps a spawn, wait or exit-status failure of a shell command
func HandleProcessError(op string, command string, err error) error {
	return NewCommandErrorWithContext(op, err, ErrCodeProcess, map[string]string{
		"command": command,
	})
}

// HandleURLParseError wraps a malformed URL failure
func HandleURLParseError(op string, raw string, err error) error {
	return NewCommandErrorWithContext(op, err, ErrCodeURLParse, map[string]string{
		"url": raw,
	})
}

// HandleValidationError creates a standardized validation error
func HandleValidationError(op string, field string, value string, reason string) error {
	contextMap := map[string]string{
		"field":  field,
		"value":  value,
		"reason": reason,
	}
	return NewCommandErrorWithContext(op, errors.New("validation failed"), ErrCodeValidation, contextMap)
}

// Flatten drops the error type so only its text crosses the UI boundary
func Flatten(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(err.Error())
}
