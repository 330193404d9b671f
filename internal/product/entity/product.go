package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one catalog entry. Price is kept as an exact decimal end to end.
type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Description string          `db:"description" json:"description"`
	Image       string          `db:"image" json:"image"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}
