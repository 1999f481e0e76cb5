package usecase_test

import (
	"context"
	"testing"
	"time"

	"portfolio_backend/internal/feature/valuation/domain/entity"
	"portfolio_backend/internal/feature/valuation/usecase"
)

// series は指定された終値列から日付昇順のPriceSeriesを組み立てます。
func series(closes []float64) []entity.ClosingPrice {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entity.ClosingPrice, len(closes))
	for i, c := range closes {
		out[i] = entity.ClosingPrice{Date: start.AddDate(0, 0, i), Close: c}
	}
	return out
}

// flatThen は値vをn件並べ、その後にtailを続けた終値列を返します。
func flatThen(v float64, n int, tail ...float64) []float64 {
	out := make([]float64, 0, n+len(tail))
	for i := 0; i < n; i++ {
		out = append(out, v)
	}
	return append(out, tail...)
}

func historyOf(closes []float64) *mockPriceSource {
	return &mockPriceSource{
		HistoryFunc: func(ctx context.Context, ticker string, lookbackDays int) ([]entity.ClosingPrice, error) {
			return series(closes), nil
		},
	}
}

// TestSignalUsecase_GenerateSignal はクロスオーバー判定と劣化時の挙動をテストします。
func TestSignalUsecase_GenerateSignal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		closes         []float64
		expectedAction entity.Action
		expectedReason entity.Reason
	}{
		{
			// 199件では200件の最低観測数に届かない
			name:           "insufficient: 199 observations",
			closes:         flatThen(100, 199),
			expectedAction: entity.ActionHold,
			expectedReason: entity.ReasonInsufficient,
		},
		{
			name:           "insufficient: empty series",
			closes:         nil,
			expectedAction: entity.ActionHold,
			expectedReason: entity.ReasonInsufficient,
		},
		{
			// 前日時点でSMA50とSMA200が完全に一致（非厳密比較で両分岐の第1項が成立）し、
			// 最新点で上抜け → Buy判定が先に評価される
			name:           "golden cross: previous tie resolves to buy on upward cross",
			closes:         flatThen(100, 249, 300),
			expectedAction: entity.ActionBuy,
			expectedReason: entity.ReasonGoldenCross,
		},
		{
			// 前日: SMA50 < SMA200、最新: SMA50 > SMA200 の厳密なクロス
			name:           "golden cross: strict crossover at latest point",
			closes:         append(flatThen(100, 200), flatThen(90, 49, 600)...),
			expectedAction: entity.ActionBuy,
			expectedReason: entity.ReasonGoldenCross,
		},
		{
			// 前日同値から最新点で下抜け → Sell
			name:           "death cross: previous tie with downward cross",
			closes:         flatThen(100, 249, 10),
			expectedAction: entity.ActionSell,
			expectedReason: entity.ReasonDeathCross,
		},
		{
			// 前日: SMA50 > SMA200（途中の1日だけ102でわずかな正の差をつくる）、
			// 最新: SMA50 < SMA200 の厳密なクロス
			name: "death cross: strict crossover at latest point",
			closes: func() []float64 {
				out := flatThen(100, 249, 10)
				out[240] = 102
				return out
			}(),
			expectedAction: entity.ActionSell,
			expectedReason: entity.ReasonDeathCross,
		},
		{
			// 上昇トレンド継続中はSMA50が常にSMA200の上 → クロスなし
			name: "neutral: short average stays above long average",
			closes: func() []float64 {
				out := make([]float64, 250)
				for i := range out {
					out[i] = 100 + 0.5*float64(i)
				}
				return out
			}(),
			expectedAction: entity.ActionHold,
			expectedReason: entity.ReasonNeutral,
		},
		{
			// 完全に横ばい: 最新点が同値のため厳密比較で常にHoldに落ちる
			name:           "neutral: flat series never crosses",
			closes:         flatThen(100, 250),
			expectedAction: entity.ActionHold,
			expectedReason: entity.ReasonNeutral,
		},
		{
			// ちょうど200件では前日側のSMA200が未定義 → 両分岐不成立でHold
			name:           "neutral: exactly 200 observations leaves previous undefined",
			closes:         flatThen(100, 199, 300),
			expectedAction: entity.ActionHold,
			expectedReason: entity.ReasonNeutral,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewSignalUsecase(historyOf(tc.closes), holdings())
			sig := uc.GenerateSignal(context.Background(), "AAPL")

			if sig.Ticker != "AAPL" {
				t.Errorf("expected ticker AAPL, got %q", sig.Ticker)
			}
			if sig.Action != tc.expectedAction {
				t.Errorf("expected action %q, got %q", tc.expectedAction, sig.Action)
			}
			if sig.Reason != tc.expectedReason {
				t.Errorf("expected reason %q, got %q", tc.expectedReason, sig.Reason)
			}
		})
	}
}

// TestSignalUsecase_GenerateSignal_SourceError は履歴取得の失敗が
// エラーとして伝播せず、常にHoldシグナルに解決されることを検証します。
func TestSignalUsecase_GenerateSignal_SourceError(t *testing.T) {
	t.Parallel()

	prices := &mockPriceSource{
		HistoryFunc: func(ctx context.Context, ticker string, lookbackDays int) ([]entity.ClosingPrice, error) {
			return nil, ErrSource
		},
	}
	uc := usecase.NewSignalUsecase(prices, holdings())

	sig := uc.GenerateSignal(context.Background(), "AAPL")
	if sig.Action != entity.ActionHold {
		t.Errorf("expected action Hold, got %q", sig.Action)
	}
	if sig.Reason != entity.ReasonError {
		t.Errorf("expected reason Error, got %q", sig.Reason)
	}
}

// TestSignalUsecase_GenerateSignal_NormalizesTicker はティッカーが正規化されて
// PriceSourceに渡されることを検証します。
func TestSignalUsecase_GenerateSignal_NormalizesTicker(t *testing.T) {
	t.Parallel()

	var gotTicker string
	prices := &mockPriceSource{
		HistoryFunc: func(ctx context.Context, ticker string, lookbackDays int) ([]entity.ClosingPrice, error) {
			gotTicker = ticker
			if lookbackDays != usecase.HistoryLookbackDays {
				t.Errorf("expected lookback %d, got %d", usecase.HistoryLookbackDays, lookbackDays)
			}
			return series(flatThen(100, 250)), nil
		},
	}
	uc := usecase.NewSignalUsecase(prices, holdings())

	sig := uc.GenerateSignal(context.Background(), "  aapl ")
	if gotTicker != "AAPL" {
		t.Errorf("expected normalized ticker AAPL, got %q", gotTicker)
	}
	if sig.Ticker != "AAPL" {
		t.Errorf("expected signal ticker AAPL, got %q", sig.Ticker)
	}
}

// TestSignalUsecase_CheckNotifications_Empty は空のポートフォリオで
// 情報メッセージが1件だけ返されることを検証します。
func TestSignalUsecase_CheckNotifications_Empty(t *testing.T) {
	t.Parallel()

	uc := usecase.NewSignalUsecase(&mockPriceSource{}, holdings())

	notes, err := uc.CheckNotifications(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(notes))
	}
	if notes[0].Ticker != "" || notes[0].Action != "" || notes[0].Reason != "" {
		t.Errorf("expected informational entry without signal fields, got %+v", notes[0])
	}
	if notes[0].Message != usecase.EmptyPortfolioMessage {
		t.Errorf("expected message %q, got %q", usecase.EmptyPortfolioMessage, notes[0].Message)
	}
}

// TestSignalUsecase_CheckNotifications はティッカーごとに1件、
// ListPositionsと同じ順序で通知が返されることを検証します。
func TestSignalUsecase_CheckNotifications(t *testing.T) {
	t.Parallel()

	prices := &mockPriceSource{
		HistoryFunc: func(ctx context.Context, ticker string, lookbackDays int) ([]entity.ClosingPrice, error) {
			switch ticker {
			case "AAPL":
				// ゴールデンクロス
				return series(flatThen(100, 249, 300)), nil
			case "GOOGL":
				// データ不足
				return series(flatThen(100, 10)), nil
			default:
				// クロスなし
				return series(flatThen(100, 250)), nil
			}
		},
	}
	uc := usecase.NewSignalUsecase(prices, holdings(
		holding("AAPL", 10, 150),
		holding("GOOGL", 5, 2500),
		holding("MSFT", 8, 300),
	))

	notes, err := uc.CheckNotifications(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notes))
	}
	if prices.HistoryCalls != 3 {
		t.Errorf("expected 3 history fetches, got %d", prices.HistoryCalls)
	}

	expected := []entity.Notification{
		{Ticker: "AAPL", Action: entity.ActionBuy, Reason: entity.ReasonGoldenCross, Message: "Buy (Golden Cross) for AAPL"},
		{Ticker: "GOOGL", Action: entity.ActionHold, Reason: entity.ReasonInsufficient, Message: "Hold (Insufficient data for GOOGL)"},
		{Ticker: "MSFT", Action: entity.ActionHold, Reason: entity.ReasonNeutral, Message: "Hold for MSFT"},
	}
	for i, want := range expected {
		if notes[i] != want {
			t.Errorf("notification %d: expected %+v, got %+v", i, want, notes[i])
		}
	}
}
