// Package usecase implements the business logic for the quote feature.
package usecase

import "errors"

// ErrDataUnavailable is returned when the provider has neither a usable
// recent price history nor usable metadata for a symbol. Single-symbol
// lookups surface it as a not-found failure; aggregations convert it into
// an inline placeholder instead of propagating it.
var ErrDataUnavailable = errors.New("no market data available for symbol")
