package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
)

// ProductRepo provides data access for the products table using sqlx.
type ProductRepo struct {
	db *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `id, name, price, description, image, created_at, updated_at`

// EnsureTable creates the products table if not exists (idempotent).
func (r *ProductRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS products (
  id CHAR(24) PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  description TEXT NOT NULL,
  image TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC);`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	const q = `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Price, p.Description, p.Image, p.CreatedAt, p.UpdatedAt)
	return err
}

// Update overwrites the editable fields of p.ID and returns the stored row,
// or sql.ErrNoRows when the id does not exist.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	const q = `UPDATE products SET name=$2, price=$3, description=$4, image=$5, updated_at=$6
		WHERE id=$1 RETURNING ` + productColumns
	var out entity.Product
	if err := r.db.GetContext(ctx, &out, q, p.ID, p.Name, p.Price, p.Description, p.Image, p.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one product, returning sql.ErrNoRows when nothing matched.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteAll empties the catalog and reports how many rows went.
func (r *ProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetByID returns a product by id or sql.ErrNoRows.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	var p entity.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the whole catalog, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC`
	out := []entity.Product{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}
