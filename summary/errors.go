package summary

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrStoreFailure wraps any ledger store error; the summary is discarded.
	ErrStoreFailure = errors.New("ledger store failure")
)
