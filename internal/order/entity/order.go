package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle states. Only StatusPending is ever written here; the rest
// are reserved for fulfilment tooling.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// LineItem snapshots a catalog entry at checkout time.
type LineItem struct {
	ProductID string          `json:"product"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int64           `json:"quantity"`
}

// Total returns price × quantity.
func (l LineItem) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// LineItems is stored as one JSONB column.
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) { return jsonValue(li) }
func (li *LineItems) Scan(src any) error          { return jsonScan(src, li) }

// Shipping is the validated destination, stored as one JSONB column.
type Shipping struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Pincode     string `json:"pincode"`
	AddressLine string `json:"addressLine"`
}

func (s Shipping) Value() (driver.Value, error) { return jsonValue(s) }
func (s *Shipping) Scan(src any) error          { return jsonScan(src, s) }

// Order is one placed order. Items and shipping live inside the row so the
// whole order is written by a single INSERT.
type Order struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user"`
	Items       LineItems       `db:"items" json:"items"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Shipping    Shipping        `db:"shipping" json:"shipping"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func jsonScan(src any, dst any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	}
	return errors.New("unsupported jsonb source")
}
