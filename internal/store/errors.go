package store

import "errors"

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on unique constraint violations.
	ErrConflict = errors.New("conflict")
	// ErrNoEvaluation is returned when a similarity lookup targets a profile
	// that has never had a full factor evaluation stored.
	ErrNoEvaluation = errors.New("profile has no stored factor evaluation")
)
