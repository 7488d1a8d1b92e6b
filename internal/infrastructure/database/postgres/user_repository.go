package postgres

import (
	"context"
	"time"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// UserRepository is a PostgreSQL implementation of UserRepository.
type UserRepository struct {
	q dbtx
}

var _ repository.UserRepository = (*UserRepository)(nil)

const (
	userColumns = `id, external_id, email, display_name, username, avatar, phone, is_admin, created_at`

	insertUserQuery = `
		INSERT INTO users (external_id, email, display_name, username, avatar, phone, is_admin, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			display_name = $2,
			username = $3,
			avatar = $4,
			phone = $5,
			is_admin = $6
		WHERE id = $7
	`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.ExternalID, &u.Email, &u.DisplayName, &u.Username, &u.Avatar, &u.Phone, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	out := *user
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	err := r.q.QueryRowContext(ctx, insertUserQuery,
		out.ExternalID, out.Email, out.DisplayName, out.Username, out.Avatar, out.Phone, out.IsAdmin, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, wrap("create user", err)
	}
	return &out, nil
}

func (r *UserRepository) getBy(ctx context.Context, column string, value any) (*entity.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrap("get user", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return r.getBy(ctx, "external_id", externalID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, wrap("list users", err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("scan user", err)
		}
		out = append(out, u)
	}
	return out, wrap("list users", rows.Err())
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	res, err := r.q.ExecContext(ctx, updateUserQuery,
		user.Email, user.DisplayName, user.Username, user.Avatar, user.Phone, user.IsAdmin, user.ID,
	)
	if err != nil {
		return nil, wrap("update user", err)
	}
	if err := expectRow(res); err != nil {
		return nil, wrap("update user", err)
	}
	out := *user
	return &out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return wrap("delete user", err)
	}
	return wrap("delete user", expectRow(res))
}
