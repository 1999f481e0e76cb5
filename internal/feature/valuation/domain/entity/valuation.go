package entity

// ValuationRow is one priced holding in a portfolio valuation.
// Derived on demand, never stored.
type ValuationRow struct {
	Ticker       string
	Shares       int
	BuyPrice     float64
	CurrentPrice float64
	MarketValue  float64 // Shares × CurrentPrice
	ProfitLoss   float64 // (CurrentPrice − BuyPrice) × Shares
}

// PortfolioValuation aggregates the priced holdings of a portfolio.
// Tickers whose current price could not be retrieved are excluded from
// Rows and from the totals, and listed in Skipped instead.
type PortfolioValuation struct {
	Rows            []ValuationRow
	TotalValue      float64
	TotalProfitLoss float64
	Skipped         []string
}
