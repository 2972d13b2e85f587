package coupon

import (
	"sort"

	"bakery-kart/internal/pricing"
)

// mapCatalog implements Catalog using a map keyed by normalised code.
type mapCatalog struct {
	promotions map[string]Promotion
}

// NewMapCatalog creates a new map-based catalogue.
func NewMapCatalog(capacity int) Catalog {
	return &mapCatalog{
		promotions: make(map[string]Promotion, capacity),
	}
}

// Lookup returns the promotion for code.
func (c *mapCatalog) Lookup(code string) (Promotion, bool) {
	p, ok := c.promotions[pricing.NormalizeCode(code)]
	return p, ok
}

// All returns every promotion ordered by code.
func (c *mapCatalog) All() []Promotion {
	out := make([]Promotion, 0, len(c.promotions))
	for _, p := range c.promotions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Size returns the number of promotions.
func (c *mapCatalog) Size() int {
	return len(c.promotions)
}

// Add stores p, replacing any promotion with the same code.
func (c *mapCatalog) Add(p Promotion) {
	p.Code = pricing.NormalizeCode(p.Code)
	c.promotions[p.Code] = p
}
