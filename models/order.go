package models

import "time"

// CartItem is one line of a cart snapshot as submitted at checkout.
// Items are stored on the order verbatim; they are not re-validated
// against the catalog.
type CartItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// Customer is the checkout contact block submitted with an order.
type Customer struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Address string `json:"address"`
}

// Order is an immutable record of one checkout. UserID always equals
// the identity claim of the token presented at creation time. Total is
// the client-submitted figure, stored as-is.
type Order struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Items     []CartItem `json:"items"`
	Total     int64      `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}
