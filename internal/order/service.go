package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product"
	productentity "github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoValidProducts  = errors.New("no valid products found for this order")
)

// ValidationError carries the issues of a rejected checkout payload.
type ValidationError struct {
	Issues validation.Issues
}

func (e *ValidationError) Error() string { return e.Issues.Join(", ") }

// ProductLookup resolves catalog entries. It must return
// product.ErrProductNotFound for unknown ids; *product.ProductService does.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*productentity.Product, error)
}

// Store persists orders; *repo.OrderRepo satisfies it.
type Store interface {
	Create(ctx context.Context, o *entity.Order) error
}

// CheckoutService turns a cart into a persisted order.
type CheckoutService struct {
	products ProductLookup
	store    Store
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewCheckoutService(products ProductLookup, store Store, logger *zap.SugaredLogger) *CheckoutService {
	return &CheckoutService{products: products, store: store, logger: logger, now: time.Now}
}

// Checkout places an order for caller. A nil caller fails before the body
// is looked at. Lines whose product no longer exists are dropped; if none
// remain nothing is written. Prices come from the catalog only.
func (s *CheckoutService) Checkout(ctx context.Context, caller *session.Identity, raw any) (*entity.Order, error) {
	if caller == nil || caller.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	in, issues := ParseCheckout(raw)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	lines := make(entity.LineItems, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		p, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				s.logger.Infow("checkout: product not found", "product_id", item.ProductID)
				continue
			}
			return nil, fmt.Errorf("resolve product %s: %w", item.ProductID, err)
		}
		line := entity.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  item.Quantity,
		}
		total = total.Add(line.Total())
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrNoValidProducts
	}

	now := s.now().UTC()
	o := &entity.Order{
		ID:          utilities.NewObjectID(),
		UserID:      caller.UserID,
		Items:       lines,
		TotalAmount: total,
		Shipping:    in.Shipping,
		Status:      entity.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Infow("order created", "order_id", o.ID, "user_id", o.UserID,
		"items", len(lines), "total", total.String())
	return o, nil
}
