package api

// LoginRequest is the operator login payload.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AddPositionRequest is the payload for adding or replacing a holding.
// Field-level validation (positive shares/price, date format) happens in the
// portfolio usecase so rejections carry the specific failure reason.
type AddPositionRequest struct {
	Ticker   string  `json:"ticker"`
	Shares   int     `json:"shares"`
	BuyPrice float64 `json:"buy_price"`
	BuyDate  string  `json:"buy_date,omitempty"` // YYYY-MM-DD, defaults to today (UTC)
}
