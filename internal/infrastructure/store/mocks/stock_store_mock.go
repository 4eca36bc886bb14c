package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/reseller-console/internal/domain/stock"
)

// MockStockStore is an in-memory StockStore for testing.
type MockStockStore struct {
	mu    sync.RWMutex
	items map[int64]stock.Item

	// For tracking calls and injecting failures in tests
	MarkSoldCalls    [][]int64
	MarkSoldErr      error
	MarkSoldOverride func(ctx context.Context, ids []int64) (int64, error)
	DeleteCalls      [][]int64
	DeleteErr        error
	ListErr          error
}

// NewMockStockStore creates a MockStockStore seeded with items.
func NewMockStockStore(items ...stock.Item) *MockStockStore {
	m := &MockStockStore{items: make(map[int64]stock.Item)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

// Item returns the current state of one item.
func (m *MockStockStore) Item(id int64) (stock.Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	return item, ok
}

func (m *MockStockStore) ListByProduct(ctx context.Context, productID int64, offset, limit int) ([]stock.Item, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	all := m.sortedByProduct(productID, false)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockStockStore) GetByIDs(ctx context.Context, ids []int64) ([]stock.Item, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []stock.Item
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *MockStockStore) SelectUnsold(ctx context.Context, productID int64, limit int) ([]stock.Item, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	unsold := m.sortedByProduct(productID, true)
	if len(unsold) > limit {
		unsold = unsold[:limit]
	}
	return unsold, nil
}

func (m *MockStockStore) MarkSold(ctx context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MarkSoldCalls = append(m.MarkSoldCalls, append([]int64(nil), ids...))

	if m.MarkSoldOverride != nil {
		return m.MarkSoldOverride(ctx, ids)
	}
	if m.MarkSoldErr != nil {
		return 0, m.MarkSoldErr
	}

	var affected int64
	for _, id := range ids {
		item, ok := m.items[id]
		if !ok || item.Sold {
			continue
		}
		item.Sold = true
		m.items[id] = item
		affected++
	}
	return affected, nil
}

func (m *MockStockStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, append([]int64(nil), ids...))

	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}

	var deleted int64
	for _, id := range ids {
		if _, ok := m.items[id]; ok {
			delete(m.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MockStockStore) sortedByProduct(productID int64, unsoldOnly bool) []stock.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []stock.Item
	for _, item := range m.items {
		if item.ProductID != productID {
			continue
		}
		if unsoldOnly && item.Sold {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
