package entity

import "time"

type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
}

type Favorite struct {
	ID        int64
	UserID    int64
	ProductID int64
	CreatedAt time.Time
}

type Comment struct {
	ID        int64
	Content   string
	UserID    int64
	ProductID int64
	CreatedAt time.Time
}
