package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"portfolio_backend/internal/feature/valuation/domain/entity"
	"portfolio_backend/internal/feature/valuation/transport/handler"
)

// mockValuationUsecase はValuationUsecaseインターフェースのモック実装です。
type mockValuationUsecase struct {
	ValuePortfolioFunc func(ctx context.Context) (entity.PortfolioValuation, error)
}

func (m *mockValuationUsecase) ValuePortfolio(ctx context.Context) (entity.PortfolioValuation, error) {
	return m.ValuePortfolioFunc(ctx)
}

// mockSignalUsecase はSignalUsecaseインターフェースのモック実装です。
type mockSignalUsecase struct {
	GenerateSignalFunc     func(ctx context.Context, ticker string) entity.Signal
	CheckNotificationsFunc func(ctx context.Context) ([]entity.Notification, error)
}

func (m *mockSignalUsecase) GenerateSignal(ctx context.Context, ticker string) entity.Signal {
	return m.GenerateSignalFunc(ctx, ticker)
}

func (m *mockSignalUsecase) CheckNotifications(ctx context.Context) ([]entity.Notification, error) {
	return m.CheckNotificationsFunc(ctx)
}

func newTestRouter(valuation handler.ValuationUsecase, signals handler.SignalUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewValuationHandler(valuation, signals)
	r := gin.New()
	r.GET("/portfolio/valuation", h.Valuation)
	r.GET("/portfolio/signals", h.Notifications)
	r.GET("/signals/:ticker", h.Signal)
	return r
}

// TestValuationHandler_Valuation は評価テーブルのレスポンスとProfitableフラグをテストします。
func TestValuationHandler_Valuation(t *testing.T) {
	valuation := &mockValuationUsecase{
		ValuePortfolioFunc: func(ctx context.Context) (entity.PortfolioValuation, error) {
			return entity.PortfolioValuation{
				Rows: []entity.ValuationRow{
					{Ticker: "AAPL", Shares: 10, BuyPrice: 100, CurrentPrice: 120, MarketValue: 1200, ProfitLoss: 200},
					{Ticker: "MSFT", Shares: 8, BuyPrice: 300, CurrentPrice: 250, MarketValue: 2000, ProfitLoss: -400},
				},
				TotalValue:      3200,
				TotalProfitLoss: -200,
				Skipped:         []string{"GOOGL"},
			}, nil
		},
	}
	r := newTestRouter(valuation, &mockSignalUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portfolio/valuation", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"rows": [
			{"ticker":"AAPL","shares":10,"buy_price":100,"current_price":120,"market_value":1200,"profit_loss":200,"profitable":true},
			{"ticker":"MSFT","shares":8,"buy_price":300,"current_price":250,"market_value":2000,"profit_loss":-400,"profitable":false}
		],
		"total_value": 3200,
		"total_profit_loss": -200,
		"skipped": ["GOOGL"]
	}`, w.Body.String())
}

// TestValuationHandler_Valuation_Empty は空のポートフォリオのレスポンスをテストします。
func TestValuationHandler_Valuation_Empty(t *testing.T) {
	valuation := &mockValuationUsecase{
		ValuePortfolioFunc: func(ctx context.Context) (entity.PortfolioValuation, error) {
			return entity.PortfolioValuation{Rows: []entity.ValuationRow{}}, nil
		},
	}
	r := newTestRouter(valuation, &mockSignalUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portfolio/valuation", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rows":[],"total_value":0,"total_profit_loss":0}`, w.Body.String())
}

// TestValuationHandler_Signal は単一ティッカーのシグナルレスポンスをテストします。
func TestValuationHandler_Signal(t *testing.T) {
	signals := &mockSignalUsecase{
		GenerateSignalFunc: func(ctx context.Context, ticker string) entity.Signal {
			assert.Equal(t, "aapl", ticker)
			return entity.Signal{Ticker: "AAPL", Action: entity.ActionBuy, Reason: entity.ReasonGoldenCross}
		},
	}
	r := newTestRouter(&mockValuationUsecase{}, signals)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/signals/aapl", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"ticker": "AAPL",
		"action": "Buy",
		"reason": "GoldenCross",
		"message": "Buy (Golden Cross) for AAPL"
	}`, w.Body.String())
}

// TestValuationHandler_Notifications は通知フィードのレスポンスをテストします。
func TestValuationHandler_Notifications(t *testing.T) {
	tests := []struct {
		name         string
		notes        []entity.Notification
		expectedBody string
	}{
		{
			name: "signals for held tickers",
			notes: []entity.Notification{
				{Ticker: "AAPL", Action: entity.ActionBuy, Reason: entity.ReasonGoldenCross, Message: "Buy (Golden Cross) for AAPL"},
				{Ticker: "MSFT", Action: entity.ActionHold, Reason: entity.ReasonNeutral, Message: "Hold for MSFT"},
			},
			expectedBody: `[
				{"ticker":"AAPL","action":"Buy","reason":"GoldenCross","message":"Buy (Golden Cross) for AAPL"},
				{"ticker":"MSFT","action":"Hold","reason":"Neutral","message":"Hold for MSFT"}
			]`,
		},
		{
			name: "empty portfolio informational entry",
			notes: []entity.Notification{
				{Message: "Portfolio is empty, no notifications to check."},
			},
			expectedBody: `[{"message":"Portfolio is empty, no notifications to check."}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := &mockSignalUsecase{
				CheckNotificationsFunc: func(ctx context.Context) ([]entity.Notification, error) {
					return tt.notes, nil
				},
			}
			r := newTestRouter(&mockValuationUsecase{}, signals)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/portfolio/signals", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
