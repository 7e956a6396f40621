package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKey is reported for keys missing from the schema.
	ErrUnknownKey = errors.New("unknown key")
	// ErrMissingValue is reported for lines with no "=value" part.
	ErrMissingValue = errors.New("missing value")
)

// KeyError describes a configuration line that could not be accepted.
// Err is ErrUnknownKey, ErrMissingValue or the underlying strconv error.
type KeyError struct {
	Line int
	Key  string
	Err  error
}

func (e *KeyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: line %d: key %q: %v", e.Line, e.Key, e.Err)
	}
	return fmt.Sprintf("config: key %q: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}
