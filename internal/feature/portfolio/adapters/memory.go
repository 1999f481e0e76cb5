// Package adapters provides storage implementations for the portfolio feature.
package adapters

import (
	"context"
	"sort"
	"sync"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// PortfolioMemory はポジションをプロセス内メモリに保持するPortfolioRepository実装です。
// 永続化は行わず、ポートフォリオの寿命はプロセスの寿命と同じです。
// 書き込みはミューテックスで直列化され、読み取りはスナップショットのコピーを返します。
type PortfolioMemory struct {
	mu        sync.RWMutex
	positions map[string]entity.Position
}

// PortfolioMemoryがPortfolioRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PortfolioRepository = (*PortfolioMemory)(nil)

// NewPortfolioMemory は空のPortfolioMemoryの新しいインスタンスを生成します。
func NewPortfolioMemory() *PortfolioMemory {
	return &PortfolioMemory{positions: make(map[string]entity.Position)}
}

// Upsert はポジションを保存します。同一ティッカーの既存エントリは完全に置き換えます。
func (m *PortfolioMemory) Upsert(ctx context.Context, pos entity.Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[pos.Ticker] = pos
	return nil
}

// Remove は指定ティッカーのポジションを削除し、存在したかどうかを返します。
func (m *PortfolioMemory) Remove(ctx context.Context, ticker string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.positions[ticker]; !ok {
		return false, nil
	}
	delete(m.positions, ticker)
	return true, nil
}

// List は全ポジションをティッカーの昇順で返します。
// 返されるスライスはコピーであり、呼び出し元が変更しても内部状態には影響しません。
func (m *PortfolioMemory) List(ctx context.Context) ([]entity.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Position, 0, len(m.positions))
	for _, pos := range m.positions {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}
