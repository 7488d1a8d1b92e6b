package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a PostgreSQL implementation of repository.Store.
type Store struct {
	db *sql.DB
	q  dbtx
	tx *sql.Tx
}

var _ repository.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository         { return &UserRepository{q: s.q} }
func (s *Store) Products() repository.ProductRepository   { return &ProductRepository{q: s.q} }
func (s *Store) Images() repository.ImageRepository       { return &ImageRepository{q: s.q} }
func (s *Store) Carts() repository.CartRepository         { return &CartRepository{q: s.q} }
func (s *Store) Favorites() repository.FavoriteRepository { return &FavoriteRepository{q: s.q} }
func (s *Store) Comments() repository.CommentRepository   { return &CommentRepository{q: s.q} }

func (s *Store) InTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback after a successful Commit returns sql.ErrTxDone and is ignored.
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&Store{db: s.db, q: tx, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	mapped := mapError(err)
	if mapped == repository.ErrNotFound || mapped == repository.ErrDuplicate {
		return mapped
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
