package entity

import "fmt"

// Action is the recommended trade action for a ticker.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
	ActionHold Action = "Hold"
)

// Reason tags a signal with why it was produced.
type Reason string

const (
	ReasonGoldenCross  Reason = "GoldenCross"  // SMA50 crossed above SMA200
	ReasonDeathCross   Reason = "DeathCross"   // SMA50 crossed below SMA200
	ReasonInsufficient Reason = "Insufficient" // Fewer than 200 daily observations
	ReasonInvalid      Reason = "Invalid"      // Latest moving averages undefined
	ReasonError        Reason = "Error"        // History could not be retrieved
	ReasonNeutral      Reason = "Neutral"      // No crossover at the latest point
)

// Signal is the trend recommendation for one ticker.
// Derived on demand, never stored.
type Signal struct {
	Ticker string
	Action Action
	Reason Reason
}

// Message renders the signal as a human-readable notification line.
func (s Signal) Message() string {
	switch s.Reason {
	case ReasonGoldenCross:
		return fmt.Sprintf("Buy (Golden Cross) for %s", s.Ticker)
	case ReasonDeathCross:
		return fmt.Sprintf("Sell (Death Cross) for %s", s.Ticker)
	case ReasonInsufficient:
		return fmt.Sprintf("Hold (Insufficient data for %s)", s.Ticker)
	case ReasonInvalid:
		return fmt.Sprintf("Hold (Invalid SMA for %s)", s.Ticker)
	case ReasonError:
		return fmt.Sprintf("Hold (Error for %s)", s.Ticker)
	default:
		return fmt.Sprintf("Hold for %s", s.Ticker)
	}
}

// Notification is one entry in the portfolio notification feed.
// For an empty portfolio the feed contains a single informational entry
// with no ticker or signal attached.
type Notification struct {
	Ticker  string
	Action  Action
	Reason  Reason
	Message string
}
