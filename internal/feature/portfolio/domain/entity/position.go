// Package entity defines the domain models for the portfolio feature.
package entity

import "time"

// Position represents a single equity holding.
type Position struct {
	Ticker   string    // Normalized ticker symbol (uppercase, trimmed, e.g. "AAPL")
	Shares   int       // Number of shares held, always positive
	BuyPrice float64   // Cost basis per share, always positive
	BuyDate  time.Time // Acquisition date, date precision only (UTC midnight)
}

// MarketValue returns the value of this holding at the given price.
func (p Position) MarketValue(currentPrice float64) float64 {
	return float64(p.Shares) * currentPrice
}

// ProfitLoss returns the unrealized gain or loss at the given price.
func (p Position) ProfitLoss(currentPrice float64) float64 {
	return (currentPrice - p.BuyPrice) * float64(p.Shares)
}
