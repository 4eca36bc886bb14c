package mocks

import (
	"context"

	"github.com/example/reseller-console/internal/infrastructure/store"
)

// MockOperatorStore is an in-memory OperatorStore for testing.
type MockOperatorStore struct {
	Operators map[string]store.Operator

	GetErr error
}

// NewMockOperatorStore creates a MockOperatorStore seeded with operators.
func NewMockOperatorStore(operators ...store.Operator) *MockOperatorStore {
	m := &MockOperatorStore{Operators: make(map[string]store.Operator)}
	for _, op := range operators {
		m.Operators[op.ID] = op
	}
	return m
}

func (m *MockOperatorStore) GetOperatorByEmail(ctx context.Context, email string) (*store.Operator, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, op := range m.Operators {
		if op.Email == email {
			copied := op
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MockOperatorStore) GetOperator(ctx context.Context, id string) (*store.Operator, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	op, ok := m.Operators[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := op
	return &copied, nil
}
