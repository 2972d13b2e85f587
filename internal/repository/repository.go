package repository

import (
	"context"
	"time"

	"bakery-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products with pagination support. An empty category
	// matches every product.
	GetAll(ctx context.Context, limit, offset int, category string) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil, nil when the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartRepository defines the interface for cart data access operations.
// Cart lines carry the product's current name and price.
type CartRepository interface {
	// List returns the user's cart lines, oldest first.
	List(ctx context.Context, userID string) ([]model.CartItem, error)

	// Get returns one cart line, or nil, nil if the user has no such line.
	Get(ctx context.Context, userID string, id uuid.UUID) (*model.CartItem, error)

	// Add inserts a line or merges quantity into the existing line for the
	// same product. The stored quantity never exceeds model.MaxQuantity.
	Add(ctx context.Context, userID, productID string, quantity int) (uuid.UUID, error)

	// UpdateQuantity sets a line's quantity. Returns false if the line does not exist.
	UpdateQuantity(ctx context.Context, userID string, id uuid.UUID, quantity int) (bool, error)

	// Delete removes a line. Returns false if the line does not exist.
	Delete(ctx context.Context, userID string, id uuid.UUID) (bool, error)

	// ListTx is List within tx. The returned lines stay locked until tx ends.
	ListTx(ctx context.Context, tx pgx.Tx, userID string) ([]model.CartItem, error)

	// DeleteTx removes the listed lines within the provided transaction.
	DeleteTx(ctx context.Context, tx pgx.Tx, userID string, ids []uuid.UUID) error
}

// ProfileRepository defines the interface for profile data access operations.
type ProfileRepository interface {
	// Get returns the user's profile, or nil, nil if none has been stored.
	Get(ctx context.Context, userID string) (*model.Profile, error)

	// SetBirthday stores the birthday unless one is already set.
	// Returns false when the birthday was already locked.
	SetBirthday(ctx context.Context, userID string, birthday time.Time) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error)
}
