package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrConfigNotFound indicates an explicitly requested file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUnsupportedFormat indicates a file extension no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidLevel indicates an unknown log level name.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidValue indicates a setting value outside its allowed range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrTypeMismatch indicates a setting value of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// SettingError reports a problem with one setting.
type SettingError struct {
	// Path is the dotted setting path, e.g. "tree.indentation".
	Path string
	// Value is the offending value.
	Value any
	// Err is ErrInvalidValue, ErrInvalidLevel or ErrTypeMismatch.
	Err error
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s = %v: %v", e.Path, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *SettingError) Unwrap() error {
	return e.Err
}
