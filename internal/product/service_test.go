package product

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

type memStore struct {
	mu   sync.Mutex
	rows map[string]entity.Product
}

func newMemStore() *memStore { return &memStore{rows: map[string]entity.Product{}} }

func (m *memStore) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID] = *p
	return nil
}

func (m *memStore) Update(_ context.Context, p *entity.Product) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[p.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cur.Name, cur.Price, cur.Description, cur.Image, cur.UpdatedAt = p.Name, p.Price, p.Description, p.Image, p.UpdatedAt
	m.rows[p.ID] = cur
	return &cur, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (m *memStore) List(context.Context) ([]entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Product, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ticking returns a clock that advances one second per call.
func ticking() func() time.Time {
	t := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestService() *ProductService {
	svc := NewProductService(newMemStore())
	svc.now = ticking()
	return svc
}

func sampleInput(name string) Input {
	return Input{
		Name:        name,
		Description: "A sample product",
		Image:       "https://example.com/a.png",
		Price:       decimal.RequireFromString("100"),
	}
}

func TestCreateThenList(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, sampleInput("First"))
	require.NoError(t, err)
	assert.True(t, utilities.IsObjectID(first.ID))
	second, err := svc.Create(ctx, sampleInput("Second"))
	require.NoError(t, err)

	ps, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, second.ID, ps[0].ID)
	assert.Equal(t, first.ID, ps[1].ID)
}

func TestUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p, err := svc.Create(ctx, sampleInput("Old"))
	require.NoError(t, err)

	in := sampleInput("New")
	in.Price = decimal.RequireFromString("59.90")
	got, err := svc.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))
	assert.Equal(t, p.CreatedAt, got.CreatedAt)

	_, err = svc.Update(ctx, utilities.NewObjectID(), in)
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = svc.Update(ctx, "not-an-id", in)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteAndGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p, err := svc.Create(ctx, sampleInput("Gone"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "xyz"), ErrProductNotFound)

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
