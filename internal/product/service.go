package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// ErrProductNotFound covers unknown and malformed ids alike.
var ErrProductNotFound = errors.New("product not found")

// Store is the persistence the service needs; *repo.ProductRepo satisfies it.
type Store interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
}

// ProductService manages the catalog.
type ProductService struct {
	store Store
	now   func() time.Time
}

func NewProductService(store Store) *ProductService {
	return &ProductService{store: store, now: time.Now}
}

func (s *ProductService) Create(ctx context.Context, in Input) (*entity.Product, error) {
	now := s.now().UTC()
	p := &entity.Product{
		ID:          utilities.NewObjectID(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in Input) (*entity.Product, error) {
	if !utilities.IsObjectID(id) {
		return nil, ErrProductNotFound
	}
	p, err := s.store.Update(ctx, &entity.Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if !utilities.IsObjectID(id) {
		return ErrProductNotFound
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Get resolves one catalog entry, as checkout does for each line.
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	if !utilities.IsObjectID(id) {
		return nil, ErrProductNotFound
	}
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	ps, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return ps, nil
}
