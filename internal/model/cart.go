package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a single cart line may hold.
const MaxQuantity = 99

// CartItem represents one product line in a user's cart.
type CartItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      string          `json:"-" db:"user_id"`
	ProductID   string          `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// LineTotal returns price * quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// AddCartItemRequest represents the request payload for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents the request payload for changing a line quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents the response payload for a cart.
type CartResponse struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ClampQuantity bounds a requested quantity to [0, MaxQuantity].
func ClampQuantity(qty int) int {
	if qty < 0 {
		return 0
	}
	if qty > MaxQuantity {
		return MaxQuantity
	}
	return qty
}
