package api

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// ProductFields is the writable subset of a product, used by the admin
// create/update endpoints.
type ProductFields struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
}

type CartItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId,omitempty"`
	Status    string      `json:"status,omitempty"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
}

type OrderItem struct {
	ID        int64    `json:"id"`
	OrderID   int64    `json:"orderId,omitempty"`
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult mirrors the POST /auth/login response body.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
