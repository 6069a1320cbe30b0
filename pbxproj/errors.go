package pbxproj

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when an operation needs an entity the graph does not contain.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// IsNotFoundError ...
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// MalformedInputError is returned when the project text can not be decoded
// into a project graph.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed project: %s, error: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed project: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// IsMalformedInputError ...
func IsMalformedInputError(err error) bool {
	var target *MalformedInputError
	return errors.As(err, &target)
}

func malformedf(err error, format string, v ...interface{}) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, v...), Err: err}
}
