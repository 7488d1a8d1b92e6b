package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the moderation state of a product.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Statuses lists every moderation status in display order.
var Statuses = []Status{StatusPending, StatusAccepted, StatusRejected}

// Valid reports whether s is one of the known moderation statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// MinProductImages is the number of images every committed product must keep.
const MinProductImages = 2

// RecommendedCategories is the fixed, order-significant category list offered to sellers.
var RecommendedCategories = []string{
	"Apple",
	"Android",
	"Laptops",
	"Tablets",
	"Accessories",
	"Vehicles: Cars & Motorbikes",
	"Bikes",
	"Computers",
}

type Product struct {
	ID          int64
	Name        string
	Category    string
	Brand       string
	Description string
	Price       decimal.Decimal
	SellerID    int64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Visible reports whether non-admin viewers may see the product.
func (p *Product) Visible() bool {
	return p.Status == StatusAccepted
}

// ProductImage points at an uploaded file relative to the public directory.
type ProductImage struct {
	ID        int64
	ProductID int64
	Path      string
}
