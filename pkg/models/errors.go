package models

import "errors"

// Common model errors
var (
	// ErrPropertyNotFound indicates that a property was not found in Data
	ErrPropertyNotFound = errors.New("property not found")

	// ErrNestedPropertyNotFound indicates that a nested property was not found in Data
	ErrNestedPropertyNotFound = errors.New("nested property not found")

	// ErrInvalidKey indicates that a key cannot be used as a routing target
	ErrInvalidKey = errors.New("invalid key")

	// ErrOddArguments indicates that name/value pairs were passed with a missing value
	ErrOddArguments = errors.New("expected name and value pairs")
)
