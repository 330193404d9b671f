package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
)

func newRepoWithMock(t *testing.T) (*ProductRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProductRepo(sqlx.NewDb(db, "postgres")), mock
}

var cols = []string{"id", "name", "price", "description", "image", "created_at", "updated_at"}

var ts = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func TestEnsureTable(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS products`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.EnsureTable(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	p := &entity.Product{
		ID: "65a1b2c3d4e5f60718293a4b", Name: "Mug", Price: decimal.RequireFromString("4.50"),
		Description: "Ceramic mug", Image: "https://e.com/m.png", CreatedAt: ts, UpdatedAt: ts,
	}
	mock.ExpectExec(`INSERT INTO products \(id, name, price, description, image, created_at, updated_at\)`).
		WithArgs(p.ID, p.Name, sqlmock.AnyArg(), p.Description, p.Image, ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Returning(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)UPDATE products SET .* WHERE id=\$1 RETURNING`).
		WithArgs("65a1b2c3d4e5f60718293a4b", "Mug", sqlmock.AnyArg(), "Ceramic mug", "https://e.com/m.png", ts).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("65a1b2c3d4e5f60718293a4b", "Mug", "5.25", "Ceramic mug", "https://e.com/m.png", ts.Add(-time.Hour), ts))

	got, err := repo.Update(context.Background(), &entity.Product{
		ID: "65a1b2c3d4e5f60718293a4b", Name: "Mug", Price: decimal.RequireFromString("5.25"),
		Description: "Ceramic mug", Image: "https://e.com/m.png", UpdatedAt: ts,
	})
	require.NoError(t, err)
	assert.Equal(t, "5.25", got.Price.String())
	assert.Equal(t, ts.Add(-time.Hour), got.CreatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`UPDATE products`).WillReturnRows(sqlmock.NewRows(cols))

	_, err := repo.Update(context.Background(), &entity.Product{ID: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE FROM products WHERE id=\$1`).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM products WHERE id=\$1`).WithArgs("b").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "a"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "b"), sql.ErrNoRows)
}

func TestDeleteAll(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`^DELETE FROM products$`).WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}

func TestList_NewestFirst(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM products ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b", "Two", "2", "second", "https://e.com/2.png", ts.Add(time.Minute), ts).
			AddRow("a", "One", "1", "first", "https://e.com/1.png", ts, ts))

	ps, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "b", ps[0].ID)
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM products`).WillReturnRows(sqlmock.NewRows(cols))

	ps, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM products WHERE id=\$1`).WithArgs("a").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("a", "One", "1.10", "first", "https://e.com/1.png", ts, ts))

	p, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.1").Equal(p.Price))
}
