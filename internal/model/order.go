package model

import (
	"time"

	"bakery-kart/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusDelivering = "delivering"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a customer order with the totals computed at submission.
type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         string          `json:"-" db:"user_id"`
	Status         string          `json:"status" db:"status"`
	Name           string          `json:"name" db:"name"`
	Phone          string          `json:"phone" db:"phone"`
	Address        string          `json:"address" db:"address"`
	Note           *string         `json:"note,omitempty" db:"note"`
	SlipURL        string          `json:"slipUrl" db:"slip_url"`
	DistanceKm     decimal.Decimal `json:"distanceKm" db:"distance_km"`
	Subtotal       decimal.Decimal `json:"subtotal" db:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount" db:"discount_amount"`
	ShippingCost   decimal.Decimal `json:"shippingCost" db:"shipping_cost"`
	TotalPrice     decimal.Decimal `json:"totalPrice" db:"total_price"`
	PromotionCode  *string         `json:"promotionCode,omitempty" db:"promotion_code"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Name and price are copied
// from the cart so later catalogue edits do not change past orders.
type OrderItem struct {
	ID          uuid.UUID       `json:"-" db:"id"`
	OrderID     uuid.UUID       `json:"-" db:"order_id"`
	ProductID   string          `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
}

// QuoteRequest represents the request payload for pricing the current cart.
type QuoteRequest struct {
	// CouponCode is a code the customer is trying to apply now.
	CouponCode string `json:"couponCode,omitempty"`
	// AppliedCode is a code accepted by an earlier quote.
	AppliedCode string          `json:"appliedCode,omitempty"`
	DistanceKm  decimal.Decimal `json:"distanceKm"`
}

// QuoteResponse represents the response payload for a checkout quote.
type QuoteResponse struct {
	pricing.Quote
	Items   []CartItem `json:"items"`
	Message string     `json:"message,omitempty"`
}

// PlaceOrderRequest represents the request payload for submitting an order.
type PlaceOrderRequest struct {
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Note       *string         `json:"note,omitempty"`
	SlipURL    string          `json:"slipUrl"`
	DistanceKm decimal.Decimal `json:"distanceKm"`
	CouponCode string          `json:"couponCode,omitempty"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order
	Items []OrderItem `json:"items"`
}
