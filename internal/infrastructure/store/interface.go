package store

import (
	"context"
	"errors"
	"time"

	"github.com/example/reseller-console/internal/domain/order"
	"github.com/example/reseller-console/internal/domain/stock"
)

var ErrNotFound = errors.New("not found")

// StockStore is the credential inventory. Items are mutated only through
// MarkSold and DeleteByIDs.
type StockStore interface {
	// ListByProduct returns one page of a product's items ordered by id
	// ascending.
	ListByProduct(ctx context.Context, productID int64, offset, limit int) ([]stock.Item, error)

	// GetByIDs fetches items by explicit id list, in no particular order.
	GetByIDs(ctx context.Context, ids []int64) ([]stock.Item, error)

	// SelectUnsold returns up to limit unsold items of a product, oldest
	// id first.
	SelectUnsold(ctx context.Context, productID int64, limit int) ([]stock.Item, error)

	// MarkSold flips the sold flag for the given ids, conditional on the
	// rows still being unsold, and reports how many rows were affected.
	MarkSold(ctx context.Context, ids []int64) (int64, error)

	// DeleteByIDs removes items and reports how many rows were deleted.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

// OrderStore is the pending/finalized order ledger.
type OrderStore interface {
	GetPendingOrder(ctx context.Context, id int64) (*order.PendingOrder, error)

	// UpdateStatus moves a pending order to a terminal status. The write
	// is conditional on the row still being pending; moving an already
	// terminal order is a no-op.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Confirm marks the order confirmed with a reference to the
	// finalized order and the confirmation time.
	Confirm(ctx context.Context, id, fulfilledOrderID int64, at time.Time) error

	// InsertFinalizedOrder writes the immutable snapshot and returns its
	// generated id.
	InsertFinalizedOrder(ctx context.Context, fo *order.FinalizedOrder) (int64, error)
}

// ProductStore looks up catalog entries for delivery rendering.
type ProductStore interface {
	GetProduct(ctx context.Context, id int64) (*stock.Product, error)
}

// Operator is a console staff account.
type Operator struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

// OperatorStore backs operator login and session refresh.
type OperatorStore interface {
	GetOperatorByEmail(ctx context.Context, email string) (*Operator, error)
	GetOperator(ctx context.Context, id string) (*Operator, error)
}
