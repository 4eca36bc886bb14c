package store

import (
	"context"
	"database/sql"

	"github.com/example/reseller-console/internal/domain/stock"
	"github.com/lib/pq"
)

// deleteChunkSize bounds a single DELETE statement's id list.
const deleteChunkSize = 1000

// PostgresStockStore implements StockStore and ProductStore on the
// shared PostgreSQL database.
type PostgresStockStore struct {
	db *sql.DB
}

func NewPostgresStockStore(db *sql.DB) *PostgresStockStore {
	return &PostgresStockStore{db: db}
}

func (s *PostgresStockStore) ListByProduct(ctx context.Context, productID int64, offset, limit int) ([]stock.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, content, sold
		 FROM stock
		 WHERE product_id = $1
		 ORDER BY id ASC
		 OFFSET $2 LIMIT $3`,
		productID, offset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (s *PostgresStockStore) GetByIDs(ctx context.Context, ids []int64) ([]stock.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, content, sold
		 FROM stock
		 WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (s *PostgresStockStore) SelectUnsold(ctx context.Context, productID int64, limit int) ([]stock.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, content, sold
		 FROM stock
		 WHERE product_id = $1 AND sold = false
		 ORDER BY id ASC
		 LIMIT $2`,
		productID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// MarkSold is the allocation commit point. The sold=false predicate makes
// the claim a compare-and-swap: rows another fulfillment grabbed first are
// simply not affected, and the caller compares the count.
func (s *PostgresStockStore) MarkSold(ctx context.Context, ids []int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE stock SET sold = true WHERE id = ANY($1) AND sold = false`,
		pq.Array(ids),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *PostgresStockStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	var deleted int64
	for start := 0; start < len(ids); start += deleteChunkSize {
		end := start + deleteChunkSize
		if end > len(ids) {
			end = len(ids)
		}

		result, err := s.db.ExecContext(ctx,
			`DELETE FROM stock WHERE id = ANY($1)`,
			pq.Array(ids[start:end]),
		)
		if err != nil {
			return deleted, err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}

func (s *PostgresStockStore) GetProduct(ctx context.Context, id int64) (*stock.Product, error) {
	var p stock.Product
	var description, formatData sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, format_data FROM products WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &description, &formatData)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.FormatData = formatData.String
	return &p, nil
}

func scanItems(rows *sql.Rows) ([]stock.Item, error) {
	var items []stock.Item
	for rows.Next() {
		var item stock.Item
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Content, &item.Sold); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
