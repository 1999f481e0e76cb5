// Package handler はvaluationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/valuation/domain/entity"
)

// ValuationUsecase はポートフォリオ評価のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ValuationUsecase interface {
	ValuePortfolio(ctx context.Context) (entity.PortfolioValuation, error)
}

// SignalUsecase はシグナル生成のユースケースインターフェースを定義します。
type SignalUsecase interface {
	GenerateSignal(ctx context.Context, ticker string) entity.Signal
	CheckNotifications(ctx context.Context) ([]entity.Notification, error)
}

// ValuationHandler は評価テーブルとシグナルのHTTPリクエストを処理します。
type ValuationHandler struct {
	valuation ValuationUsecase
	signals   SignalUsecase
}

// NewValuationHandler は指定されたusecaseでValuationHandlerの新しいインスタンスを生成します。
func NewValuationHandler(valuation ValuationUsecase, signals SignalUsecase) *ValuationHandler {
	return &ValuationHandler{valuation: valuation, signals: signals}
}

// Valuation は評価テーブルと合計値をJSONで返します。
// 価格を取得できなかったティッカーはskippedとして報告されます。
//
// エンドポイント例:
// GET /portfolio/valuation
func (h *ValuationHandler) Valuation(c *gin.Context) {
	v, err := h.valuation.ValuePortfolio(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	rows := make([]api.ValuationRowResponse, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, api.ValuationRowResponse{
			Ticker:       r.Ticker,
			Shares:       r.Shares,
			BuyPrice:     r.BuyPrice,
			CurrentPrice: r.CurrentPrice,
			MarketValue:  r.MarketValue,
			ProfitLoss:   r.ProfitLoss,
			Profitable:   r.ProfitLoss >= 0,
		})
	}
	c.JSON(http.StatusOK, api.ValuationResponse{
		Rows:            rows,
		TotalValue:      v.TotalValue,
		TotalProfitLoss: v.TotalProfitLoss,
		Skipped:         v.Skipped,
	})
}

// Signal は単一ティッカーのトレンドシグナルをJSONで返します。
// データ不足や取得失敗は常にHoldシグナルとして返され、エラーにはなりません。
//
// エンドポイント例:
// GET /signals/:ticker
func (h *ValuationHandler) Signal(c *gin.Context) {
	sig := h.signals.GenerateSignal(c.Request.Context(), c.Param("ticker"))
	c.JSON(http.StatusOK, api.SignalResponse{
		Ticker:  sig.Ticker,
		Action:  string(sig.Action),
		Reason:  string(sig.Reason),
		Message: sig.Message(),
	})
}

// Notifications は保有中の全ティッカーの通知フィードをJSONで返します。
//
// エンドポイント例:
// GET /portfolio/signals
func (h *ValuationHandler) Notifications(c *gin.Context) {
	notes, err := h.signals.CheckNotifications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]api.NotificationResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, api.NotificationResponse{
			Ticker:  n.Ticker,
			Action:  string(n.Action),
			Reason:  string(n.Reason),
			Message: n.Message,
		})
	}
	c.JSON(http.StatusOK, out)
}
