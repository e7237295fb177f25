package core

import "errors"

// Common errors.
var (
	// ErrParse marks a single stored record blob that could not be decoded.
	ErrParse = errors.New("malformed record entry")

	// ErrPersistence marks a failed write to the settings backend.
	ErrPersistence = errors.New("settings write failed")

	// ErrInvalidRecord is returned when a record is missing its identity or payload.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnknownKey is returned by backends for keys outside the schema.
	ErrUnknownKey = errors.New("unknown settings key")

	// ErrTypeMismatch is returned by backends when a value does not fit the key type.
	ErrTypeMismatch = errors.New("settings value has wrong type")

	// ErrReadOnly is returned by backends opened in read-only mode.
	ErrReadOnly = errors.New("settings backend is read-only")

	// ErrIDExhausted is returned when no free id could be generated.
	ErrIDExhausted = errors.New("could not generate a free id")
)
