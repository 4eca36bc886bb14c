package store

import (
	"context"
	"database/sql"
	"strings"
)

// PostgresOperatorStore implements OperatorStore on the shared
// PostgreSQL database.
type PostgresOperatorStore struct {
	db *sql.DB
}

func NewPostgresOperatorStore(db *sql.DB) *PostgresOperatorStore {
	return &PostgresOperatorStore{db: db}
}

func (s *PostgresOperatorStore) GetOperatorByEmail(ctx context.Context, email string) (*Operator, error) {
	var op Operator
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, password_hash, created_at
		 FROM operators
		 WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&op.ID, &op.Email, &op.Name, &op.Role, &op.PasswordHash, &op.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *PostgresOperatorStore) GetOperator(ctx context.Context, id string) (*Operator, error) {
	var op Operator
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, password_hash, created_at
		 FROM operators
		 WHERE id = $1`,
		id,
	).Scan(&op.ID, &op.Email, &op.Name, &op.Role, &op.PasswordHash, &op.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}
