package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestCreateUser(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("g-1", "alice@example.com", "Alice", "alice", "img/default_avatar.png", "", false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	u, err := store.Users().Create(context.Background(), &entity.User{
		ExternalID: "g-1", Email: "alice@example.com", DisplayName: "Alice", Username: "alice", Avatar: entity.DefaultAvatar,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("expected id 7, got %d", u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.Users().Create(context.Background(), &entity.User{Username: "alice"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("FROM users WHERE id").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Users().GetByID(context.Background(), 3)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListProducts(t *testing.T) {
	store, mock := newMock(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cols := []string{"id", "name", "category", "brand", "description", "price", "seller_id", "status", "created_at", "updated_at"}
	rows := sqlmock.NewRows(cols).
		AddRow(2, "Pixel", "Android", "Google", "phone", "19.99", 1, "accepted", now, now).
		AddRow(1, "iPhone", "Apple", "Apple", "phone", "25.50", 1, "accepted", now, now)
	mock.ExpectQuery("FROM products WHERE status").WithArgs("accepted", "%pho%").WillReturnRows(rows)

	got, err := store.Products().List(context.Background(), repository.ProductFilter{Status: entity.StatusAccepted, Query: "pho"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if !got[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("unexpected price %s", got[0].Price)
	}
	if got[1].Status != entity.StatusAccepted {
		t.Fatalf("unexpected status %q", got[1].Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBuildListQuery(t *testing.T) {
	q, args := buildListQuery(repository.ProductFilter{SellerID: 4, Category: "Bikes"})
	want := `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 AND category = $2 ORDER BY created_at DESC, id DESC`
	if q != want {
		t.Fatalf("unexpected query:\n%s", q)
	}
	if len(args) != 2 || args[0] != int64(4) || args[1] != "Bikes" {
		t.Fatalf("unexpected args %v", args)
	}

	q, args = buildListQuery(repository.ProductFilter{})
	if len(args) != 0 || q != `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC` {
		t.Fatalf("unexpected unfiltered query %q", q)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.Products().Update(context.Background(), &entity.Product{ID: 9, Status: entity.StatusPending})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCartItems_UsesArray(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("DELETE FROM carts WHERE id = ANY").WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := store.Carts().Delete(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// no ids, no query
	if err := store.Carts().Delete(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInTx_Commit(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments WHERE product_id").WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM carts WHERE product_id").WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.InTx(context.Background(), func(tx repository.Store) error {
		if err := tx.Comments().DeleteByProduct(context.Background(), 5); err != nil {
			return err
		}
		// nested calls join the outer transaction
		return tx.InTx(context.Background(), func(inner repository.Store) error {
			return inner.Carts().DeleteByProduct(context.Background(), 5)
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInTx_RollbackOnError(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := store.InTx(context.Background(), func(tx repository.Store) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	for range schema {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
