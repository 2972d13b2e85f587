// Package coupon holds the promotion catalogue shown to customers and the
// per-user store of saved ("collected") coupons. Whether a coupon actually
// applies to a cart is decided by the pricing package, never here.
package coupon

import (
	"context"
	"time"

	"bakery-kart/internal/pricing"
)

// Promotion is a catalogue entry describing a coupon to customers.
type Promotion struct {
	Code        string       `json:"code"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ValidUntil  *time.Time   `json:"validUntil,omitempty"`
	Kind        pricing.Kind `json:"kind"`
}

// Active reports whether the promotion is still advertised at now.
// Promotions without an end date never expire.
func (p Promotion) Active(now time.Time) bool {
	return p.ValidUntil == nil || !now.After(*p.ValidUntil)
}

// Catalog is a read-only set of promotions keyed by normalised code.
type Catalog interface {
	// Lookup returns the promotion for code. The code is normalised first.
	Lookup(code string) (Promotion, bool)

	// All returns every promotion ordered by code.
	All() []Promotion

	// Size returns the number of promotions in the catalogue.
	Size() int
}

// Loader defines the interface for loading promotion files.
type Loader interface {
	// Load reads a gzipped JSON-lines promotion file and returns a Catalog.
	Load(ctx context.Context, filePath string) (Catalog, error)
}

// SavedCoupon is a promotion a customer collected for later use.
type SavedCoupon struct {
	Code    string    `json:"code"`
	Title   string    `json:"title"`
	SavedAt time.Time `json:"savedAt"`
}

// SavedStore keeps each user's collected coupons.
type SavedStore interface {
	// List returns the user's saved coupons in the order they were saved.
	List(ctx context.Context, userID string) ([]SavedCoupon, error)

	// Save stores the coupon and reports false when the code was already saved.
	Save(ctx context.Context, userID string, c SavedCoupon) (bool, error)

	// Remove deletes a saved code. Removing an unknown code is not an error.
	Remove(ctx context.Context, userID, code string) error

	// IsSaved reports whether the user already saved code.
	IsSaved(ctx context.Context, userID, code string) (bool, error)
}
