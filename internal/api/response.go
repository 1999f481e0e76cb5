// Package api defines the JSON request and response types shared by HTTP handlers.
package api

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	// Ticker identifies the holding a validation error applies to, when known.
	Ticker string `json:"ticker,omitempty"`
}

// MessageResponse is a simple informational payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed JWT after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// PositionResponse represents one holding.
type PositionResponse struct {
	Ticker   string  `json:"ticker"`
	Shares   int     `json:"shares"`
	BuyPrice float64 `json:"buy_price"`
	BuyDate  string  `json:"buy_date"` // YYYY-MM-DD
}

// RemoveResponse reports the outcome of a position removal.
type RemoveResponse struct {
	Ticker  string `json:"ticker"`
	Removed bool   `json:"removed"`
}

// ValuationRowResponse is one priced holding in the valuation table.
type ValuationRowResponse struct {
	Ticker       string  `json:"ticker"`
	Shares       int     `json:"shares"`
	BuyPrice     float64 `json:"buy_price"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	ProfitLoss   float64 `json:"profit_loss"`
	// Profitable flags a non-negative profit/loss for presentation (e.g. row coloring).
	Profitable bool `json:"profitable"`
}

// ValuationResponse is the full portfolio valuation table with aggregates.
type ValuationResponse struct {
	Rows            []ValuationRowResponse `json:"rows"`
	TotalValue      float64                `json:"total_value"`
	TotalProfitLoss float64                `json:"total_profit_loss"`
	Skipped         []string               `json:"skipped,omitempty"`
}

// SignalResponse is the trend signal for one ticker.
type SignalResponse struct {
	Ticker  string `json:"ticker"`
	Action  string `json:"action"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// NotificationResponse is one entry in the notification feed. Ticker, action
// and reason are empty for the informational empty-portfolio entry.
type NotificationResponse struct {
	Ticker  string `json:"ticker,omitempty"`
	Action  string `json:"action,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}
