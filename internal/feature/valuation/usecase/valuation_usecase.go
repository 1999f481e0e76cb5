package usecase

import (
	"context"
	"fmt"
	"log/slog"

	portfolioentity "portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/valuation/domain/entity"
)

// PriceSource は外部の市場データ取得機能を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceSource interface {
	// CurrentPrice は直近の取引セッションの価格を返します。
	// データが存在しない場合はErrPriceUnavailableを返します。
	CurrentPrice(ctx context.Context, ticker string) (float64, error)
	// History は直近lookbackDays日分の日次終値を日付の昇順で返します。
	History(ctx context.Context, ticker string, lookbackDays int) ([]entity.ClosingPrice, error)
}

// PortfolioReader は保有ポジションの読み取りレイヤーを抽象化します。
type PortfolioReader interface {
	// List は全ポジションをティッカーの昇順で返します。
	List(ctx context.Context) ([]portfolioentity.Position, error)
}

// valuationUsecase はポートフォリオ評価のユースケースを定義します。
// ポートフォリオと外部データのみに依存するステートレスな計算です。
type valuationUsecase struct {
	prices    PriceSource
	portfolio PortfolioReader
}

// NewValuationUsecase はvaluationUsecaseの新しいインスタンスを生成します。
func NewValuationUsecase(prices PriceSource, portfolio PortfolioReader) *valuationUsecase {
	return &valuationUsecase{prices: prices, portfolio: portfolio}
}

// CurrentPrice は指定ティッカーの現在価格をPriceSourceから取得します。
// データが存在しない場合はErrPriceUnavailableを返します。
func (u *valuationUsecase) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	return u.prices.CurrentPrice(ctx, ticker)
}

// ValuePortfolio は全ポジションの評価額と損益を計算し、合計とともに返します。
// 現在価格を取得できなかったティッカーは集計から除外してSkippedに記録し、
// 計算全体を中断することはありません。空のポートフォリオでは合計はゼロになります。
func (u *valuationUsecase) ValuePortfolio(ctx context.Context) (entity.PortfolioValuation, error) {
	positions, err := u.portfolio.List(ctx)
	if err != nil {
		return entity.PortfolioValuation{}, fmt.Errorf("list positions: %w", err)
	}

	v := entity.PortfolioValuation{Rows: make([]entity.ValuationRow, 0, len(positions))}
	for _, pos := range positions {
		price, err := u.prices.CurrentPrice(ctx, pos.Ticker)
		if err != nil {
			// 取得失敗は致命的エラーではなく、そのティッカーを除外して続行する
			slog.Warn("current price unavailable, excluding from totals", "ticker", pos.Ticker, "error", err)
			v.Skipped = append(v.Skipped, pos.Ticker)
			continue
		}

		row := entity.ValuationRow{
			Ticker:       pos.Ticker,
			Shares:       pos.Shares,
			BuyPrice:     pos.BuyPrice,
			CurrentPrice: price,
			MarketValue:  pos.MarketValue(price),
			ProfitLoss:   pos.ProfitLoss(price),
		}
		v.Rows = append(v.Rows, row)
		v.TotalValue += row.MarketValue
		v.TotalProfitLoss += row.ProfitLoss
	}
	return v, nil
}
