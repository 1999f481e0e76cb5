// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// PortfolioUsecase は保有ポジション操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PortfolioUsecase interface {
	AddPosition(ctx context.Context, ticker string, shares int, buyPrice float64, buyDate string) (entity.Position, error)
	RemovePosition(ctx context.Context, ticker string) (bool, error)
	ListPositions(ctx context.Context) ([]entity.Position, error)
}

// PortfolioHandler は保有ポジションのHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler は指定されたusecaseでPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// isValidationError は検証エラー（400で返すべきエラー）かどうかを判定します。
func isValidationError(err error) bool {
	return errors.Is(err, usecase.ErrInvalidTicker) ||
		errors.Is(err, usecase.ErrInvalidShares) ||
		errors.Is(err, usecase.ErrInvalidPrice) ||
		errors.Is(err, usecase.ErrInvalidDate)
}

// List は全ポジションをJSONで返します。
//
// エンドポイント例:
// GET /portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	positions, err := h.uc.ListPositions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]api.PositionResponse, 0, len(positions))
	for _, pos := range positions {
		out = append(out, api.PositionResponse{
			Ticker:   pos.Ticker,
			Shares:   pos.Shares,
			BuyPrice: pos.BuyPrice,
			BuyDate:  pos.BuyDate.Format(usecase.BuyDateLayout),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Add はポジションの追加・置き換えを処理します。
// 検証エラー時は対象ティッカー付きの400を返し、ポートフォリオは変更されません。
//
// エンドポイント例:
// POST /portfolio/positions
func (h *PortfolioHandler) Add(c *gin.Context) {
	var req api.AddPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	pos, err := h.uc.AddPosition(c.Request.Context(), req.Ticker, req.Shares, req.BuyPrice, req.BuyDate)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{
				Error:  err.Error(),
				Ticker: usecase.NormalizeTicker(req.Ticker),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, api.PositionResponse{
		Ticker:   pos.Ticker,
		Shares:   pos.Shares,
		BuyPrice: pos.BuyPrice,
		BuyDate:  pos.BuyDate.Format(usecase.BuyDateLayout),
	})
}

// Remove はポジションの削除を処理します。
// 存在しないティッカーはエラーではなくremoved:falseとして報告します。
//
// エンドポイント例:
// DELETE /portfolio/positions/:ticker
func (h *PortfolioHandler) Remove(c *gin.Context) {
	ticker := usecase.NormalizeTicker(c.Param("ticker"))

	removed, err := h.uc.RemovePosition(c.Request.Context(), ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.RemoveResponse{Ticker: ticker, Removed: removed})
}
