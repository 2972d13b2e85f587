// Package pricing computes checkout totals for a bakery cart: subtotal with
// the cupcake bundle promotion, distance-based shipping, coupon discounts and
// the final payable amount.
//
// Every function in this package is pure. Callers own the cart and coupon
// state and re-run the computation whenever any input changes.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Line is a single product selection in the cart.
type Line struct {
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// RevocationPolicy decides what happens to an applied coupon that no longer
// qualifies after the cart changed.
type RevocationPolicy int

const (
	// KeepCode zeroes the discount but leaves the code applied, so it is
	// reinstated automatically if the cart qualifies again.
	KeepCode RevocationPolicy = iota
	// ClearCode zeroes the discount and drops the code.
	ClearCode
)

// String returns the configuration name of the policy.
func (p RevocationPolicy) String() string {
	switch p {
	case ClearCode:
		return "clear"
	default:
		return "keep"
	}
}

// ParseRevocationPolicy parses "keep" or "clear".
func ParseRevocationPolicy(s string) (RevocationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "":
		return KeepCode, nil
	case "clear":
		return ClearCode, nil
	default:
		return KeepCode, fmt.Errorf("invalid revocation policy: %s (must be keep or clear)", s)
	}
}

// Config holds the pricing policy constants.
type Config struct {
	// BaseShippingFee is charged for any delivery with a positive distance.
	BaseShippingFee decimal.Decimal

	// PerKmFee is charged per kilometre on top of the base fee.
	PerKmFee decimal.Decimal

	// FreeDeliveryMinimum is the subtotal at which FREEDEL waives shipping.
	FreeDeliveryMinimum decimal.Decimal

	// WelcomeMinimum is the subtotal at which WELCOME50 becomes valid.
	WelcomeMinimum decimal.Decimal

	// WelcomeDiscount is the flat amount taken off by WELCOME50.
	WelcomeDiscount decimal.Decimal

	// BirthdayRate is the fraction of the subtotal taken off by HBD10.
	BirthdayRate decimal.Decimal

	// BundleSize and BundlePaid describe the cupcake promotion:
	// every BundleSize cupcakes are charged as BundlePaid.
	BundleSize int
	BundlePaid int

	Revocation RevocationPolicy
}

// DefaultConfig returns the storefront's standard pricing policy.
func DefaultConfig() Config {
	return Config{
		BaseShippingFee:     decimal.NewFromInt(30),
		PerKmFee:            decimal.NewFromInt(5),
		FreeDeliveryMinimum: decimal.NewFromInt(500),
		WelcomeMinimum:      decimal.NewFromInt(300),
		WelcomeDiscount:     decimal.NewFromInt(50),
		BirthdayRate:        decimal.New(10, -2),
		BundleSize:          4,
		BundlePaid:          3,
		Revocation:          KeepCode,
	}
}

// Engine evaluates pricing rules under a fixed Config. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates a pricing engine.
func NewEngine(cfg Config) *Engine {
	if cfg.BundleSize <= 0 {
		cfg.BundleSize = 4
	}
	if cfg.BundlePaid <= 0 || cfg.BundlePaid > cfg.BundleSize {
		cfg.BundlePaid = cfg.BundleSize - 1
	}
	return &Engine{cfg: cfg}
}

// Config returns the policy the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

var cupcakeKeywords = []string{"cupcake", "คัพเค้ก"}

// IsCupcake reports whether a product name belongs to the cupcake category.
func IsCupcake(productName string) bool {
	name := strings.ToLower(productName)
	for _, kw := range cupcakeKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// HasCupcake reports whether any line with a positive quantity is a cupcake.
func HasCupcake(lines []Line) bool {
	for _, l := range lines {
		if l.Quantity > 0 && IsCupcake(l.ProductName) {
			return true
		}
	}
	return false
}

// Subtotal sums the cart before discount and shipping.
//
// Cupcakes are priced as one pool: the quantity of every cupcake line is
// summed and charged at the unit price of the last cupcake line. When
// appliedCode is CUPCAKE3GET1 the pool is charged as BundlePaid for every
// BundleSize units.
func (e *Engine) Subtotal(lines []Line, appliedCode string) decimal.Decimal {
	other := decimal.Zero
	cupcakeCount := 0
	cupcakePrice := decimal.Zero

	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if IsCupcake(l.ProductName) {
			cupcakeCount += l.Quantity
			// Last cupcake line wins; mixed cupcake prices collapse to one.
			cupcakePrice = l.UnitPrice
			continue
		}
		other = other.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	bundled := NormalizeCode(appliedCode) == CodeCupcakeBundle
	return other.Add(e.cupcakeTotal(cupcakeCount, cupcakePrice, bundled))
}

func (e *Engine) cupcakeTotal(count int, price decimal.Decimal, bundled bool) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	if !bundled {
		return price.Mul(decimal.NewFromInt(int64(count)))
	}

	sets := count / e.cfg.BundleSize
	remainder := count % e.cfg.BundleSize
	charged := sets*e.cfg.BundlePaid + remainder
	return price.Mul(decimal.NewFromInt(int64(charged)))
}

// Shipping returns the delivery fee for the given distance. A non-positive
// distance costs nothing, and FREEDEL waives the fee once the subtotal
// reaches FreeDeliveryMinimum.
func (e *Engine) Shipping(distanceKm, subtotal decimal.Decimal, appliedCode string) decimal.Decimal {
	if !distanceKm.IsPositive() {
		return decimal.Zero
	}
	if NormalizeCode(appliedCode) == CodeFreeDelivery && subtotal.GreaterThanOrEqual(e.cfg.FreeDeliveryMinimum) {
		return decimal.Zero
	}
	return e.cfg.BaseShippingFee.Add(distanceKm.Mul(e.cfg.PerKmFee))
}

// FinalPrice returns subtotal - discount + shipping, floored at zero.
func (e *Engine) FinalPrice(subtotal, discount, shipping decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
