package models

import "errors"

// Failure kinds shared by the store, the services and both API facades.
// Callers match them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrIntegrity    = errors.New("integrity failure")
)
