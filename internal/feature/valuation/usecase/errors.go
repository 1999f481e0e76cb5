// Package usecase はポートフォリオ評価とシグナル生成のビジネスロジックを実装します。
package usecase

import "errors"

// ErrPriceUnavailable is returned by a PriceSource when no data exists for
// the most recent trading session. It marks a degraded outcome, not a fault:
// valuation excludes the ticker instead of aborting.
var ErrPriceUnavailable = errors.New("price unavailable")
