package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"portfolio_backend/internal/feature/valuation/domain/entity"
	"portfolio_backend/internal/feature/valuation/usecase"
	"portfolio_backend/internal/platform/externalapi/twelvedata/dto"
	"portfolio_backend/internal/shared/ratelimiter"
)

// maxOutputSize は1回のtime_seriesリクエストで要求する最大データ件数です。
const maxOutputSize = 5000

// TwelveDataPrices はTwelve Data外部APIから株価データを取得するPriceSource実装です。
type TwelveDataPrices struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// TwelveDataPricesがPriceSourceを実装していることをコンパイル時に検証します。
var _ usecase.PriceSource = (*TwelveDataPrices)(nil)

// NewTwelveDataPrices は指定された設定とHTTPクライアントでTwelveDataPricesの新しいインスタンスを生成します。
// limiterはnil可で、その場合はレートリミットなしで動作します。
func NewTwelveDataPrices(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *TwelveDataPrices {
	return &TwelveDataPrices{cfg: cfg, client: client, limiter: limiter}
}

// get はレートリミットを適用してGETリクエストを実行し、レスポンスボディをoutにデコードします。
func (t *TwelveDataPrices) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	if t.limiter != nil {
		t.limiter.WaitIfNeeded()
	}
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/%s?%s", t.cfg.BaseURL, endpoint, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("twelvedata http %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// CurrentPrice はTwelve Data APIから直近の取引セッションの価格を取得します。
// APIがデータなし・エラーを返した場合はErrPriceUnavailableにマップします。
func (t *TwelveDataPrices) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", ticker)

	var body dto.PriceResponse
	if err := t.get(ctx, "price", q, &body); err != nil {
		return 0, err
	}
	if body.Status == "error" || body.Price == "" {
		return 0, fmt.Errorf("%w: %s", usecase.ErrPriceUnavailable, body.Message)
	}

	price, err := strconv.ParseFloat(body.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", body.Price, err)
	}
	return price, nil
}

// History はTwelve Data APIから直近lookbackDays日分の日次終値を取得し、
// 日付の昇順で返します。
func (t *TwelveDataPrices) History(ctx context.Context, ticker string, lookbackDays int) ([]entity.ClosingPrice, error) {
	start := time.Now().UTC().AddDate(0, 0, -lookbackDays)

	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("interval", "1day")
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("outputsize", strconv.Itoa(maxOutputSize))

	var body dto.TimeSeriesResponse
	if err := t.get(ctx, "time_series", q, &body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	series := make([]entity.ClosingPrice, 0, len(body.Values))
	for _, v := range body.Values {
		// タイムスタンプをパース
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		// 終値をパース
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}

		series = append(series, entity.ClosingPrice{Date: tm, Close: c})
	}

	// APIは新しい順で返すため、昇順に並べ替える
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}
