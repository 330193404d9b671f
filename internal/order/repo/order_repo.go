package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order/entity"
)

// OrderRepo provides data access for the orders table using sqlx.
type OrderRepo struct {
	db *sqlx.DB
}

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// EnsureTable creates the orders table if not exists (idempotent). Run it
// after the users table exists.
func (r *OrderRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS orders (
  id CHAR(24) PRIMARY KEY,
  user_id CHAR(24) NOT NULL REFERENCES users(id),
  items JSONB NOT NULL CHECK (jsonb_typeof(items) = 'array' AND jsonb_array_length(items) > 0),
  total_amount NUMERIC NOT NULL CHECK (total_amount >= 0),
  shipping JSONB NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','paid','shipped','delivered','cancelled')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id);`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create writes the order, lines and shipping included, in one statement.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	const q = `INSERT INTO orders (id, user_id, items, total_amount, shipping, status, created_at, updated_at)
		VALUES (:id, :user_id, :items, :total_amount, :shipping, :status, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, q, o)
	return err
}

