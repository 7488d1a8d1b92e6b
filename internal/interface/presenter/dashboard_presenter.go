package presenter

import "github.com/wichananm65/buytouch-backend/internal/usecase"

type DashboardResponse struct {
	PendingProducts []*ProductResponse `json:"pending_products"`
	Products        []*ProductResponse `json:"products"`
	Users           []*UserResponse    `json:"users"`
}

func ToDashboard(d *usecase.Dashboard, products *ProductPresenter, users *UserPresenter) *DashboardResponse {
	return &DashboardResponse{
		PendingProducts: products.ToList(d.Pending),
		Products:        products.ToList(d.Products),
		Users:           users.ToList(d.Users),
	}
}
