package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
)

// BuyDateLayout は取得日の日付フォーマットです。
const BuyDateLayout = "2006-01-02"

// PortfolioRepository は保有ポジションの読み書きレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PortfolioRepository interface {
	// Upsert はポジションを保存します。同一ティッカーの既存エントリは完全に置き換えます。
	Upsert(ctx context.Context, pos entity.Position) error
	// Remove は指定ティッカーのポジションを削除し、存在したかどうかを返します。
	Remove(ctx context.Context, ticker string) (bool, error)
	// List は全ポジションをティッカーの昇順で返します。
	List(ctx context.Context) ([]entity.Position, error)
}

// portfolioUsecase は保有ポジション操作のユースケースを定義します。
type portfolioUsecase struct {
	positions PortfolioRepository
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(positions PortfolioRepository) *portfolioUsecase {
	return &portfolioUsecase{positions: positions}
}

// NormalizeTicker はティッカーシンボルを正規化します（大文字化、前後の空白除去）。
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// AddPosition はポジションを検証して登録します。
// 同一ティッカーの既存ポジションは部分マージではなく完全に置き換えられます。
// buyDateが空の場合は現在の日付（UTC）を使用します。
// 検証エラー時はポートフォリオを変更せず、対象ティッカーを含むエラーを返します。
func (u *portfolioUsecase) AddPosition(ctx context.Context, ticker string, shares int, buyPrice float64, buyDate string) (entity.Position, error) {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return entity.Position{}, ErrInvalidTicker
	}
	if shares <= 0 {
		return entity.Position{}, fmt.Errorf("add position %s: %w", ticker, ErrInvalidShares)
	}
	if buyPrice <= 0 {
		return entity.Position{}, fmt.Errorf("add position %s: %w", ticker, ErrInvalidPrice)
	}

	var date time.Time
	if buyDate == "" {
		// 取得日はUTCの暦日で統一する
		now := time.Now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse(BuyDateLayout, buyDate)
		if err != nil {
			return entity.Position{}, fmt.Errorf("add position %s: %w", ticker, ErrInvalidDate)
		}
		date = parsed
	}

	pos := entity.Position{
		Ticker:   ticker,
		Shares:   shares,
		BuyPrice: buyPrice,
		BuyDate:  date,
	}
	if err := u.positions.Upsert(ctx, pos); err != nil {
		return entity.Position{}, fmt.Errorf("add position %s: %w", ticker, err)
	}

	slog.Info("position added", "ticker", ticker, "shares", shares, "buy_price", buyPrice, "buy_date", date.Format(BuyDateLayout))
	return pos, nil
}

// RemovePosition は指定ティッカーのポジションを削除します。
// 存在しないティッカーの削除はエラーではなく、falseを返すno-opです。
func (u *portfolioUsecase) RemovePosition(ctx context.Context, ticker string) (bool, error) {
	ticker = NormalizeTicker(ticker)
	removed, err := u.positions.Remove(ctx, ticker)
	if err != nil {
		return false, fmt.Errorf("remove position %s: %w", ticker, err)
	}
	if removed {
		slog.Info("position removed", "ticker", ticker)
	} else {
		slog.Warn("position not found", "ticker", ticker)
	}
	return removed, nil
}

// ListPositions は全ポジションをティッカーの昇順で返します。
// 順序はプロセス実行中、呼び出しをまたいで決定的です。
func (u *portfolioUsecase) ListPositions(ctx context.Context) ([]entity.Position, error) {
	return u.positions.List(ctx)
}
