package service

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidCredentials covers empty input, unknown username, and wrong
	// password alike. Never disclose which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotFound means the target ID does not resolve in its collection.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken means the username collides with a different user.
	ErrUsernameTaken = errors.New("username is already taken")
)

// ValidationError reports missing or malformed required fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %v", names)
}

// fieldErrors accumulates per-field messages and builds a ValidationError
// only if anything was recorded.
type fieldErrors map[string]string

func (fe fieldErrors) add(field, msg string) { fe[field] = msg }

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}
