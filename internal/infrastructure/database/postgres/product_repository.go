package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// ProductRepository is a PostgreSQL implementation of ProductRepository.
type ProductRepository struct {
	q dbtx
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

const (
	productColumns = `id, name, category, brand, description, price, seller_id, status, created_at, updated_at`

	insertProductQuery = `
		INSERT INTO products (name, category, brand, description, price, seller_id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`
	getProductByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	updateProductQuery  = `
		UPDATE products
		SET name = $1,
			category = $2,
			brand = $3,
			description = $4,
			price = $5,
			status = $6,
			updated_at = $7
		WHERE id = $8
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
	categoriesQuery    = `
		SELECT DISTINCT category FROM products
		WHERE status = $1 AND category <> ''
		ORDER BY category
	`
)

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	var status string
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Description, &p.Price, &p.SellerID, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = entity.Status(status)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	out := *p
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = out.CreatedAt
	}
	err := r.q.QueryRowContext(ctx, insertProductQuery,
		out.Name, out.Category, out.Brand, out.Description, out.Price, out.SellerID, string(out.Status), out.CreatedAt, out.UpdatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, wrap("create product", err)
	}
	return &out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		return nil, wrap("get product", err)
	}
	return p, nil
}

// buildListQuery renders the filter as a WHERE clause with positional args.
func buildListQuery(f repository.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.SellerID != 0 {
		add("seller_id = $%d", f.SellerID)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC`
	return q, args
}

func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	q, args := buildListQuery(filter)
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()

	out := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		out = append(out, p)
	}
	return out, wrap("list products", rows.Err())
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	res, err := r.q.ExecContext(ctx, updateProductQuery,
		p.Name, p.Category, p.Brand, p.Description, p.Price, string(p.Status), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return nil, wrap("update product", err)
	}
	if err := expectRow(res); err != nil {
		return nil, wrap("update product", err)
	}
	out := *p
	return &out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return wrap("delete product", err)
	}
	return wrap("delete product", expectRow(res))
}

func (r *ProductRepository) Categories(ctx context.Context, status entity.Status) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, categoriesQuery, string(status))
	if err != nil {
		return nil, wrap("list categories", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, wrap("scan category", err)
		}
		out = append(out, c)
	}
	return out, wrap("list categories", rows.Err())
}

// ImageRepository is a PostgreSQL implementation of ImageRepository.
type ImageRepository struct {
	q dbtx
}

var _ repository.ImageRepository = (*ImageRepository)(nil)

func (r *ImageRepository) Create(ctx context.Context, img *entity.ProductImage) (*entity.ProductImage, error) {
	out := *img
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO product_images (product_id, path) VALUES ($1,$2) RETURNING id`,
		out.ProductID, out.Path,
	).Scan(&out.ID)
	if err != nil {
		return nil, wrap("create image", err)
	}
	return &out, nil
}

func (r *ImageRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	return r.list(ctx, `SELECT id, product_id, path FROM product_images WHERE product_id = $1 ORDER BY id`, productID)
}

func (r *ImageRepository) ListByProducts(ctx context.Context, productIDs []int64) ([]*entity.ProductImage, error) {
	if len(productIDs) == 0 {
		return []*entity.ProductImage{}, nil
	}
	return r.list(ctx, `SELECT id, product_id, path FROM product_images WHERE product_id = ANY($1) ORDER BY id`, pq.Array(productIDs))
}

func (r *ImageRepository) list(ctx context.Context, query string, arg any) ([]*entity.ProductImage, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, wrap("list images", err)
	}
	defer rows.Close()

	out := make([]*entity.ProductImage, 0)
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Path); err != nil {
			return nil, wrap("scan image", err)
		}
		out = append(out, &img)
	}
	return out, wrap("list images", rows.Err())
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return wrap("delete image", err)
	}
	return wrap("delete image", expectRow(res))
}
