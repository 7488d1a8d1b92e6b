package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// CartRepository is a PostgreSQL implementation of CartRepository.
type CartRepository struct {
	q dbtx
}

var _ repository.CartRepository = (*CartRepository)(nil)

const cartColumns = `id, user_id, product_id, quantity, created_at`

func scanCart(row scanner) (*entity.CartItem, error) {
	var c entity.CartItem
	if err := row.Scan(&c.ID, &c.UserID, &c.ProductID, &c.Quantity, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *CartRepository) Create(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	out := *item
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO carts (user_id, product_id, quantity, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		out.UserID, out.ProductID, out.Quantity, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, wrap("create cart item", err)
	}
	return &out, nil
}

func (r *CartRepository) GetByID(ctx context.Context, id int64) (*entity.CartItem, error) {
	c, err := scanCart(r.q.QueryRowContext(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get cart item", err)
	}
	return c, nil
}

func (r *CartRepository) Find(ctx context.Context, userID, productID int64) (*entity.CartItem, error) {
	c, err := scanCart(r.q.QueryRowContext(ctx,
		`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 AND product_id = $2 ORDER BY id LIMIT 1`,
		userID, productID))
	if err != nil {
		return nil, wrap("find cart item", err)
	}
	return c, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.CartItem, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, wrap("list cart", err)
	}
	defer rows.Close()

	out := make([]*entity.CartItem, 0)
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, wrap("scan cart item", err)
		}
		out = append(out, c)
	}
	return out, wrap("list cart", rows.Err())
}

func (r *CartRepository) Update(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE carts SET quantity = $1 WHERE id = $2`, item.Quantity, item.ID)
	if err != nil {
		return nil, wrap("update cart item", err)
	}
	if err := expectRow(res); err != nil {
		return nil, wrap("update cart item", err)
	}
	out := *item
	return &out, nil
}

func (r *CartRepository) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.ExecContext(ctx, `DELETE FROM carts WHERE id = ANY($1)`, pq.Array(ids))
	return wrap("delete cart items", err)
}

func (r *CartRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM carts WHERE product_id = $1`, productID)
	return wrap("delete cart items by product", err)
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return wrap("delete cart items by user", err)
}

// FavoriteRepository is a PostgreSQL implementation of FavoriteRepository.
type FavoriteRepository struct {
	q dbtx
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)

const favoriteColumns = `id, user_id, product_id, created_at`

func scanFavorite(row scanner) (*entity.Favorite, error) {
	var f entity.Favorite
	if err := row.Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return &f, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, fav *entity.Favorite) (*entity.Favorite, error) {
	out := *fav
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO favorites (user_id, product_id, created_at) VALUES ($1,$2,$3) RETURNING id`,
		out.UserID, out.ProductID, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, wrap("create favorite", err)
	}
	return &out, nil
}

func (r *FavoriteRepository) GetByID(ctx context.Context, id int64) (*entity.Favorite, error) {
	f, err := scanFavorite(r.q.QueryRowContext(ctx, `SELECT `+favoriteColumns+` FROM favorites WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get favorite", err)
	}
	return f, nil
}

func (r *FavoriteRepository) Find(ctx context.Context, userID, productID int64) (*entity.Favorite, error) {
	f, err := scanFavorite(r.q.QueryRowContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 AND product_id = $2 ORDER BY id LIMIT 1`,
		userID, productID))
	if err != nil {
		return nil, wrap("find favorite", err)
	}
	return f, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Favorite, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, wrap("list favorites", err)
	}
	defer rows.Close()

	out := make([]*entity.Favorite, 0)
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, wrap("scan favorite", err)
		}
		out = append(out, f)
	}
	return out, wrap("list favorites", rows.Err())
}

func (r *FavoriteRepository) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.ExecContext(ctx, `DELETE FROM favorites WHERE id = ANY($1)`, pq.Array(ids))
	return wrap("delete favorites", err)
}

func (r *FavoriteRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM favorites WHERE product_id = $1`, productID)
	return wrap("delete favorites by product", err)
}

func (r *FavoriteRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID)
	return wrap("delete favorites by user", err)
}

// CommentRepository is a PostgreSQL implementation of CommentRepository.
type CommentRepository struct {
	q dbtx
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

const commentColumns = `id, content, user_id, product_id, created_at`

func scanComment(row scanner) (*entity.Comment, error) {
	var c entity.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.UserID, &c.ProductID, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) (*entity.Comment, error) {
	out := *c
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO comments (content, user_id, product_id, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		out.Content, out.UserID, out.ProductID, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, wrap("create comment", err)
	}
	return &out, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	c, err := scanComment(r.q.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get comment", err)
	}
	return c, nil
}

func (r *CommentRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.Comment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE product_id = $1 ORDER BY created_at, id`, productID)
	if err != nil {
		return nil, wrap("list comments", err)
	}
	defer rows.Close()

	out := make([]*entity.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, wrap("scan comment", err)
		}
		out = append(out, c)
	}
	return out, wrap("list comments", rows.Err())
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return wrap("delete comment", err)
	}
	return wrap("delete comment", expectRow(res))
}

func (r *CommentRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM comments WHERE product_id = $1`, productID)
	return wrap("delete comments by product", err)
}

func (r *CommentRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM comments WHERE user_id = $1`, userID)
	return wrap("delete comments by user", err)
}
