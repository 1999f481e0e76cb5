// Package entity defines the domain models for the valuation feature.
package entity

import "time"

// ClosingPrice represents one daily closing price observation.
type ClosingPrice struct {
	Date  time.Time // Trading day, date precision only
	Close float64   // Closing price for that day
}
