package usecase

import (
	"context"
	"log/slog"
	"strings"

	"portfolio_backend/internal/feature/valuation/domain/entity"
)

const (
	// HistoryLookbackDays はシグナル計算に使用する価格履歴の日数（1年）です。
	HistoryLookbackDays = 365
	// ShortWindow は短期単純移動平均の観測数です。
	ShortWindow = 50
	// LongWindow は長期単純移動平均の観測数であり、
	// シグナル計算に必要な最低観測数でもあります。黙って下げてはいけません。
	LongWindow = 200
)

// EmptyPortfolioMessage は空のポートフォリオに対する通知メッセージです。
const EmptyPortfolioMessage = "Portfolio is empty, no notifications to check."

// signalUsecase はトレンドフォロー型シグナル生成のユースケースを定義します。
type signalUsecase struct {
	prices    PriceSource
	portfolio PortfolioReader
}

// NewSignalUsecase はsignalUsecaseの新しいインスタンスを生成します。
func NewSignalUsecase(prices PriceSource, portfolio PortfolioReader) *signalUsecase {
	return &signalUsecase{prices: prices, portfolio: portfolio}
}

// sma は closes[at] を最新とする直近window件の単純移動平均を返します。
// 先行データが不足している場合は ok=false を返します。
func sma(closes []float64, window, at int) (float64, bool) {
	if window <= 0 || at >= len(closes) || at+1 < window {
		return 0, false
	}
	var sum float64
	for i := at - window + 1; i <= at; i++ {
		sum += closes[i]
	}
	return sum / float64(window), true
}

// GenerateSignal は1年分の日次終値からSMA50/SMA200のクロスオーバーを判定し、
// 指定ティッカーの売買シグナルを返します。
//
// 判定規則（直近2点のみで評価）:
//   - 前日 SMA50 <= SMA200 かつ 最新 SMA50 > SMA200 → Buy（ゴールデンクロス）
//   - 前日 SMA50 >= SMA200 かつ 最新 SMA50 < SMA200 → Sell（デッドクロス）
//   - それ以外 → Hold
//
// 前日側の比較は非厳密、最新側は厳密。最新値が同値の場合は常にHoldに落ち、
// 前日値が同値の場合はBuy判定が先に評価されます。この非対称性は仕様であり、
// 対称に「直して」はいけません。前日側のSMAが未定義（ちょうど200観測の系列）の
// 場合は両分岐とも不成立となり、Holdに落ちます。
//
// 履歴の取得失敗はエラーとして伝播させず、常にHoldシグナルに解決します。
func (s *signalUsecase) GenerateSignal(ctx context.Context, ticker string) entity.Signal {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	series, err := s.prices.History(ctx, ticker, HistoryLookbackDays)
	if err != nil {
		slog.Error("failed to fetch price history", "ticker", ticker, "error", err)
		return entity.Signal{Ticker: ticker, Action: entity.ActionHold, Reason: entity.ReasonError}
	}
	if len(series) < LongWindow {
		slog.Warn("insufficient history for signal", "ticker", ticker, "observations", len(series), "required", LongWindow)
		return entity.Signal{Ticker: ticker, Action: entity.ActionHold, Reason: entity.ReasonInsufficient}
	}

	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}
	latest := len(closes) - 1
	prev := latest - 1

	shortLatest, okShort := sma(closes, ShortWindow, latest)
	longLatest, okLong := sma(closes, LongWindow, latest)
	if !okShort || !okLong {
		// 長さガードにより到達しないはずだが、防御的にチェックする
		slog.Warn("invalid moving averages", "ticker", ticker)
		return entity.Signal{Ticker: ticker, Action: entity.ActionHold, Reason: entity.ReasonInvalid}
	}

	shortPrev, okPrevShort := sma(closes, ShortWindow, prev)
	longPrev, okPrevLong := sma(closes, LongWindow, prev)
	havePrev := okPrevShort && okPrevLong

	switch {
	case havePrev && shortPrev <= longPrev && shortLatest > longLatest:
		return entity.Signal{Ticker: ticker, Action: entity.ActionBuy, Reason: entity.ReasonGoldenCross}
	case havePrev && shortPrev >= longPrev && shortLatest < longLatest:
		return entity.Signal{Ticker: ticker, Action: entity.ActionSell, Reason: entity.ReasonDeathCross}
	default:
		return entity.Signal{Ticker: ticker, Action: entity.ActionHold, Reason: entity.ReasonNeutral}
	}
}

// CheckNotifications は保有中の全ティッカーのシグナルをListPositionsと同じ
// 決定的な順序で返します。ポートフォリオが空の場合は情報メッセージを1件だけ返します。
func (s *signalUsecase) CheckNotifications(ctx context.Context) ([]entity.Notification, error) {
	positions, err := s.portfolio.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return []entity.Notification{{Message: EmptyPortfolioMessage}}, nil
	}

	out := make([]entity.Notification, 0, len(positions))
	for _, pos := range positions {
		sig := s.GenerateSignal(ctx, pos.Ticker)
		out = append(out, entity.Notification{
			Ticker:  sig.Ticker,
			Action:  sig.Action,
			Reason:  sig.Reason,
			Message: sig.Message(),
		})
	}
	return out, nil
}
