// Package usecase implements the business logic for the portfolio feature.
package usecase

import "errors"

var (
	// ErrHoldingExists is returned when adding a symbol the user already holds.
	ErrHoldingExists = errors.New("holding already exists")

	// ErrHoldingNotFound is returned when updating or deleting a holding the
	// user does not have.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrDuplicateSymbols is returned when a bulk upload contains the same
	// symbol more than once. The store is left untouched.
	ErrDuplicateSymbols = errors.New("duplicate symbols in upload")

	// ErrEmptyUpload is returned when a bulk upload contains no holdings.
	ErrEmptyUpload = errors.New("no holdings in upload")

	// ErrInvalidHolding is returned when shares or average cost are out of range.
	ErrInvalidHolding = errors.New("invalid holding values")
)
