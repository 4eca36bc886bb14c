package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/example/reseller-console/internal/domain/order"
)

// PostgresOrderStore implements OrderStore on the shared PostgreSQL
// database.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func (s *PostgresOrderStore) GetPendingOrder(ctx context.Context, id int64) (*order.PendingOrder, error) {
	var o order.PendingOrder
	var bonus sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, buyer_ref, product_id, quantity, COALESCE(bonus_quantity, 0),
		        unit_price, amount, code, status, created_at
		 FROM direct_orders
		 WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.BuyerRef, &o.ProductID, &o.Quantity, &bonus,
		&o.UnitPrice, &o.Amount, &o.Code, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.BonusQuantity = int(bonus.Int64)
	return &o, nil
}

func (s *PostgresOrderStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE direct_orders SET status = $2 WHERE id = $1 AND status = $3`,
		id, status, order.StatusPending,
	)
	return err
}

func (s *PostgresOrderStore) Confirm(ctx context.Context, id, fulfilledOrderID int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE direct_orders
		 SET status = $2, fulfilled_order_id = $3, confirmed_at = $4
		 WHERE id = $1 AND status = $5`,
		id, order.StatusConfirmed, fulfilledOrderID, at, order.StatusPending,
	)
	return err
}

func (s *PostgresOrderStore) InsertFinalizedOrder(ctx context.Context, fo *order.FinalizedOrder) (int64, error) {
	snapshot, err := json.Marshal(fo.ContentSnapshot)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO orders (buyer_ref, product_id, content, price, quantity, order_group, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		fo.BuyerRef, fo.ProductID, snapshot, fo.TotalPrice, fo.Quantity, fo.GroupCode, fo.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
