// Package usecase implements the business logic for the portfolio feature.
package usecase

import "errors"

var (
	// ErrInvalidTicker is returned when the ticker is empty after normalization.
	ErrInvalidTicker = errors.New("ticker must not be empty")

	// ErrInvalidShares is returned when the share count is zero or negative.
	ErrInvalidShares = errors.New("number of shares must be positive")

	// ErrInvalidPrice is returned when the buy price is zero or negative.
	ErrInvalidPrice = errors.New("buy price must be positive")

	// ErrInvalidDate is returned when the buy date does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("buy date must be a valid YYYY-MM-DD date")
)
