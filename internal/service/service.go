package service

import (
	"context"

	"bakery-kart/internal/coupon"
	"bakery-kart/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for the product catalogue.
type ProductService interface {
	// GetAll retrieves products with pagination and an optional category filter.
	GetAll(ctx context.Context, limit, offset int, category string) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartService defines operations on a user's cart.
type CartService interface {
	Get(ctx context.Context, userID string) (*model.CartResponse, error)

	// AddItem adds a product, merging with an existing line for the same product.
	AddItem(ctx context.Context, userID string, req *model.AddCartItemRequest) (*model.CartItem, error)

	// UpdateItem sets a line's quantity, clamped to [0, model.MaxQuantity].
	// A resulting quantity of zero removes the line and returns nil.
	UpdateItem(ctx context.Context, userID string, id uuid.UUID, req *model.UpdateCartItemRequest) (*model.CartItem, error)

	RemoveItem(ctx context.Context, userID string, id uuid.UUID) error
}

// ProfileService defines operations on customer profiles.
type ProfileService interface {
	// Get returns the user's profile. Users without a stored profile get an
	// empty one.
	Get(ctx context.Context, userID string) (*model.Profile, error)

	// SetBirthday stores the birthday once; later attempts fail with
	// model.ErrBirthdayLocked.
	SetBirthday(ctx context.Context, userID string, req *model.SetBirthdayRequest) (*model.Profile, error)

	// IsBirthdayMonth reports whether the current month, in the shop's time
	// zone, is the user's birth month.
	IsBirthdayMonth(ctx context.Context, userID string) (bool, error)
}

// CouponService defines operations on promotions and saved coupons.
type CouponService interface {
	// ListPromotions returns the promotions currently advertised.
	ListPromotions(ctx context.Context) []coupon.Promotion

	ListSaved(ctx context.Context, userID string) ([]coupon.SavedCoupon, error)

	// Save collects a catalogue promotion. The bool is false when the user
	// had already saved it.
	Save(ctx context.Context, userID, code string) (*coupon.SavedCoupon, bool, error)

	Remove(ctx context.Context, userID, code string) error
}

// CheckoutService prices carts and turns them into orders.
type CheckoutService interface {
	// Quote prices the user's current cart.
	Quote(ctx context.Context, userID string, req *model.QuoteRequest) (*model.QuoteResponse, error)

	// PlaceOrder re-prices the cart, stores the order and empties the cart.
	PlaceOrder(ctx context.Context, userID string, req *model.PlaceOrderRequest) (*model.OrderResponse, error)
}

// OrderService defines read operations on placed orders.
type OrderService interface {
	// GetByID returns the order if it belongs to userID.
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*model.OrderResponse, error)

	// List returns the user's orders, newest first.
	List(ctx context.Context, userID string, limit, offset int) ([]model.Order, error)
}
