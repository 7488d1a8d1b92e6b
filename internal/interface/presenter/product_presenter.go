package presenter

import (
	"github.com/shopspring/decimal"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

type ProductPresenter struct {
	assets AssetURL
	users  *UserPresenter
}

func NewProductPresenter(assets AssetURL, users *UserPresenter) *ProductPresenter {
	return &ProductPresenter{assets: assets, users: users}
}

type ImageResponse struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type ProductResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Brand       string           `json:"brand"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	SellerID    int64            `json:"seller_id"`
	Status      string           `json:"status"`
	Images      []*ImageResponse `json:"images,omitempty"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

type CommentResponse struct {
	ID        int64            `json:"id"`
	Content   string           `json:"content"`
	ProductID int64            `json:"product_id"`
	Author    *ContactResponse `json:"author,omitempty"`
	CreatedAt string           `json:"created_at"`
}

type ProductDetailResponse struct {
	*ProductResponse
	Seller   *ContactResponse   `json:"seller"`
	Comments []*CommentResponse `json:"comments"`
}

type BrowseResponse struct {
	Products   []*ProductResponse `json:"products"`
	Categories []string           `json:"categories"`
	Query      string             `json:"q"`
	Category   string             `json:"category"`
}

// FormResponse carries what a product form needs to render.
type FormResponse struct {
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses,omitempty"`
}

func (p *ProductPresenter) ToResponse(product *entity.Product, images []*entity.ProductImage) *ProductResponse {
	if product == nil {
		return nil
	}
	out := &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Brand:       product.Brand,
		Description: product.Description,
		Price:       product.Price,
		SellerID:    product.SellerID,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt.Format(timeLayout),
		UpdatedAt:   product.UpdatedAt.Format(timeLayout),
	}
	for _, img := range images {
		out.Images = append(out.Images, &ImageResponse{ID: img.ID, Path: img.Path, URL: p.assets.resolve(img.Path)})
	}
	return out
}

func (p *ProductPresenter) ToView(view *usecase.ProductView) *ProductResponse {
	if view == nil {
		return nil
	}
	return p.ToResponse(view.Product, view.Images)
}

func (p *ProductPresenter) ToList(views []*usecase.ProductView) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, p.ToView(v))
	}
	return out
}

func (p *ProductPresenter) ToComment(c *entity.Comment, author *entity.User) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		ProductID: c.ProductID,
		Author:    p.users.ToContact(author),
		CreatedAt: c.CreatedAt.Format(timeLayout),
	}
}

func (p *ProductPresenter) ToDetail(d *usecase.ProductDetail) *ProductDetailResponse {
	comments := make([]*CommentResponse, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, p.ToComment(c.Comment, c.Author))
	}
	return &ProductDetailResponse{
		ProductResponse: p.ToView(&d.ProductView),
		Seller:          p.users.ToContact(d.Seller),
		Comments:        comments,
	}
}

func (p *ProductPresenter) ToBrowse(r *usecase.BrowseResult) *BrowseResponse {
	return &BrowseResponse{
		Products:   p.ToList(r.Products),
		Categories: r.Categories,
		Query:      r.Query,
		Category:   r.Category,
	}
}

// ToForm lists categories, plus statuses when the viewer may change them.
func (p *ProductPresenter) ToForm(categories []string, admin bool) *FormResponse {
	out := &FormResponse{Categories: categories}
	if admin {
		for _, s := range entity.Statuses {
			out.Statuses = append(out.Statuses, string(s))
		}
	}
	return out
}
