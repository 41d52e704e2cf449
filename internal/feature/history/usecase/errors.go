// Package usecase implements the business logic for the history feature.
package usecase

import "errors"

var (
	// ErrInvalidInterval is returned when the caller supplies a sampling
	// interval outside the supported set. This is a client-input error.
	ErrInvalidInterval = errors.New("unsupported data interval")

	// ErrRangeTooNarrow is returned when the provider explicitly rejects the
	// requested window for the given interval. Handlers surface it with a
	// message suggesting a coarser interval.
	ErrRangeTooNarrow = errors.New("requested range not available for interval")

	// ErrNoData is returned when the provider has no historical rows for the
	// symbol over the effective window.
	ErrNoData = errors.New("no historical data found for symbol")
)
