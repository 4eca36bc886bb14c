package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/example/reseller-console/internal/domain/order"
	"github.com/example/reseller-console/internal/domain/stock"
	"github.com/example/reseller-console/internal/infrastructure/store"
)

// StatusUpdate records one order status transition.
type StatusUpdate struct {
	OrderID int64
	Status  string
}

// MockOrderStore is an in-memory OrderStore for testing.
type MockOrderStore struct {
	mu     sync.Mutex
	orders map[int64]order.PendingOrder

	nextFinalizedID int64

	// For tracking calls and injecting failures in tests
	StatusUpdates []StatusUpdate
	ConfirmCalls  []int64
	Finalized     []order.FinalizedOrder
	UpdateErr     error
	ConfirmErr    error
	InsertErr     error
}

// NewMockOrderStore creates a MockOrderStore seeded with orders.
func NewMockOrderStore(orders ...order.PendingOrder) *MockOrderStore {
	m := &MockOrderStore{
		orders:          make(map[int64]order.PendingOrder),
		nextFinalizedID: 1000,
	}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

// Order returns the current state of one pending order.
func (m *MockOrderStore) Order(id int64) (order.PendingOrder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	return o, ok
}

func (m *MockOrderStore) GetPendingOrder(ctx context.Context, id int64) (*order.PendingOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := o
	return &copied, nil
}

func (m *MockOrderStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StatusUpdates = append(m.StatusUpdates, StatusUpdate{OrderID: id, Status: status})
	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	if o, ok := m.orders[id]; ok && o.Status == order.StatusPending {
		o.Status = status
		m.orders[id] = o
	}
	return nil
}

func (m *MockOrderStore) Confirm(ctx context.Context, id, fulfilledOrderID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ConfirmCalls = append(m.ConfirmCalls, id)
	if m.ConfirmErr != nil {
		return m.ConfirmErr
	}

	if o, ok := m.orders[id]; ok && o.Status == order.StatusPending {
		o.Status = order.StatusConfirmed
		m.orders[id] = o
	}
	return nil
}

func (m *MockOrderStore) InsertFinalizedOrder(ctx context.Context, fo *order.FinalizedOrder) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil {
		return 0, m.InsertErr
	}

	m.nextFinalizedID++
	saved := *fo
	saved.ID = m.nextFinalizedID
	m.Finalized = append(m.Finalized, saved)
	return saved.ID, nil
}

// MockProductStore is an in-memory ProductStore for testing.
type MockProductStore struct {
	Products map[int64]stock.Product
}

func NewMockProductStore(products ...stock.Product) *MockProductStore {
	m := &MockProductStore{Products: make(map[int64]stock.Product)}
	for _, p := range products {
		m.Products[p.ID] = p
	}
	return m
}

func (m *MockProductStore) GetProduct(ctx context.Context, id int64) (*stock.Product, error) {
	p, ok := m.Products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := p
	return &copied, nil
}
