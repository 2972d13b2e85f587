package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Coupon codes with a pricing rule.
const (
	CodeBirthday      = "HBD10"
	CodeFreeDelivery  = "FREEDEL"
	CodeWelcome       = "WELCOME50"
	CodeCupcakeBundle = "CUPCAKE3GET1"
)

// Kind classifies what a coupon does to the totals.
type Kind string

const (
	KindPercentage     Kind = "percentage"
	KindShippingWaiver Kind = "shipping_waiver"
	KindFlat           Kind = "flat"
	KindBundle         Kind = "bundle"
)

var couponKinds = map[string]Kind{
	CodeBirthday:      KindPercentage,
	CodeFreeDelivery:  KindShippingWaiver,
	CodeWelcome:       KindFlat,
	CodeCupcakeBundle: KindBundle,
}

// Codes returns every coupon code the engine can price.
func Codes() []string {
	return []string{CodeBirthday, CodeFreeDelivery, CodeWelcome, CodeCupcakeBundle}
}

// KindOf returns the rule kind for a code and whether the code is known.
func KindOf(code string) (Kind, bool) {
	k, ok := couponKinds[NormalizeCode(code)]
	return k, ok
}

// NormalizeCode trims surrounding space and upper-cases a user-typed code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Reason identifies why a coupon was rejected or revoked.
type Reason string

const (
	ReasonEmptyCode        Reason = "empty_code"
	ReasonNotFound         Reason = "code_not_found"
	ReasonNotBirthdayMonth Reason = "not_birthday_month"
	ReasonMinimumNotMet    Reason = "minimum_not_met"
	ReasonNoCupcake        Reason = "requires_cupcake"
	ReasonAlreadyApplied   Reason = "already_applied"
)

// Rejection is a user-correctable reason a coupon does not apply.
// Minimum and Shortfall are set only for ReasonMinimumNotMet.
type Rejection struct {
	Code      string           `json:"code"`
	Reason    Reason           `json:"reason"`
	Minimum   *decimal.Decimal `json:"minimum,omitempty"`
	Shortfall *decimal.Decimal `json:"shortfall,omitempty"`
}

// Message returns a human-readable explanation.
func (r Rejection) Message() string {
	switch r.Reason {
	case ReasonEmptyCode:
		return "please enter a coupon code"
	case ReasonNotFound:
		return "code not found"
	case ReasonNotBirthdayMonth:
		return "not birthday month"
	case ReasonMinimumNotMet:
		if r.Minimum != nil && r.Shortfall != nil {
			return fmt.Sprintf("minimum order of %s required (short by %s)",
				r.Minimum.StringFixed(2), r.Shortfall.StringFixed(2))
		}
		return "minimum order not met"
	case ReasonNoCupcake:
		return "requires cupcake in cart"
	case ReasonAlreadyApplied:
		return "a coupon is already applied, remove it first"
	default:
		return string(r.Reason)
	}
}

// Revocation reports that a previously accepted coupon stopped qualifying.
type Revocation struct {
	Rejection
	// CodeKept is true when the policy left the code applied with no discount.
	CodeKept bool `json:"codeKept"`
}

// Message returns a human-readable explanation.
func (r Revocation) Message() string {
	return fmt.Sprintf("coupon %s no longer applies: %s", r.Code, r.Rejection.Message())
}

// Evaluation is the outcome of a fresh coupon apply attempt.
type Evaluation struct {
	Code      string
	Applied   bool
	Discount  decimal.Decimal
	Rejection *Rejection
}

// Revalidation is the outcome of re-checking an applied coupon.
type Revalidation struct {
	// AppliedCode is the code still applied after the revocation policy ran.
	AppliedCode string
	Discount    decimal.Decimal
	Revoked     *Revocation
}

// Evaluate validates a coupon against the current cart. Rejections are
// returned as values; an unknown or rejected code applies no discount.
func (e *Engine) Evaluate(code string, lines []Line, subtotal decimal.Decimal, isBirthdayMonth bool) Evaluation {
	code = NormalizeCode(code)
	if code == "" {
		return Evaluation{Discount: decimal.Zero, Rejection: &Rejection{Reason: ReasonEmptyCode}}
	}

	if rej := e.check(code, lines, subtotal, isBirthdayMonth); rej != nil {
		return Evaluation{Code: code, Discount: decimal.Zero, Rejection: rej}
	}

	return Evaluation{Code: code, Applied: true, Discount: e.discount(code, subtotal)}
}

// Revalidate re-checks an applied coupon after the cart changed. If the
// coupon no longer qualifies its discount drops to zero and a Revocation is
// returned; the engine's RevocationPolicy decides whether the code stays.
// Unknown codes are always dropped.
func (e *Engine) Revalidate(appliedCode string, lines []Line, subtotal decimal.Decimal, isBirthdayMonth bool) Revalidation {
	code := NormalizeCode(appliedCode)
	if code == "" {
		return Revalidation{Discount: decimal.Zero}
	}

	// A code without a rule was never applicable, so no policy can keep it.
	if _, ok := KindOf(code); !ok {
		return Revalidation{
			Discount: decimal.Zero,
			Revoked:  &Revocation{Rejection: Rejection{Code: code, Reason: ReasonNotFound}},
		}
	}

	rej := e.check(code, lines, subtotal, isBirthdayMonth)
	if rej == nil {
		return Revalidation{AppliedCode: code, Discount: e.discount(code, subtotal)}
	}

	rv := Revalidation{
		Discount: decimal.Zero,
		Revoked:  &Revocation{Rejection: *rej},
	}
	if e.cfg.Revocation == KeepCode {
		rv.AppliedCode = code
		rv.Revoked.CodeKept = true
	}
	return rv
}

// check returns nil when code is valid for the cart.
func (e *Engine) check(code string, lines []Line, subtotal decimal.Decimal, isBirthdayMonth bool) *Rejection {
	switch code {
	case CodeBirthday:
		if !isBirthdayMonth {
			return &Rejection{Code: code, Reason: ReasonNotBirthdayMonth}
		}
	case CodeFreeDelivery:
		return minimumRejection(code, subtotal, e.cfg.FreeDeliveryMinimum)
	case CodeWelcome:
		return minimumRejection(code, subtotal, e.cfg.WelcomeMinimum)
	case CodeCupcakeBundle:
		if !HasCupcake(lines) {
			return &Rejection{Code: code, Reason: ReasonNoCupcake}
		}
	default:
		return &Rejection{Code: code, Reason: ReasonNotFound}
	}
	return nil
}

func minimumRejection(code string, subtotal, minimum decimal.Decimal) *Rejection {
	if subtotal.GreaterThanOrEqual(minimum) {
		return nil
	}
	shortfall := minimum.Sub(subtotal)
	return &Rejection{
		Code:      code,
		Reason:    ReasonMinimumNotMet,
		Minimum:   &minimum,
		Shortfall: &shortfall,
	}
}

// discount assumes code already passed check.
func (e *Engine) discount(code string, subtotal decimal.Decimal) decimal.Decimal {
	switch code {
	case CodeBirthday:
		return subtotal.Mul(e.cfg.BirthdayRate)
	case CodeWelcome:
		return e.cfg.WelcomeDiscount
	default:
		// FREEDEL acts on shipping, CUPCAKE3GET1 on the subtotal.
		return decimal.Zero
	}
}
