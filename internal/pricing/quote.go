package pricing

import "github.com/shopspring/decimal"

// QuoteInput is everything needed to price one checkout.
type QuoteInput struct {
	Lines []Line

	// CouponCode is a fresh apply attempt. It is ignored with
	// ReasonAlreadyApplied when AppliedCode is set to a different code.
	CouponCode string

	// AppliedCode is a coupon accepted earlier in the session. It is
	// revalidated against the current cart.
	AppliedCode string

	DistanceKm      decimal.Decimal
	IsBirthdayMonth bool
}

// Quote holds the computed totals for a checkout.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Shipping    decimal.Decimal `json:"shippingCost"`
	FinalPrice  decimal.Decimal `json:"finalPrice"`
	AppliedCode string          `json:"appliedCode,omitempty"`
	Rejection   *Rejection      `json:"rejection,omitempty"`
	Revocation  *Revocation     `json:"revocation,omitempty"`
}

// Quote composes Subtotal, Evaluate/Revalidate, Shipping and FinalPrice.
func (e *Engine) Quote(in QuoteInput) Quote {
	applied := NormalizeCode(in.AppliedCode)
	attempt := NormalizeCode(in.CouponCode)

	q := Quote{Discount: decimal.Zero}

	if applied != "" {
		rv := e.Revalidate(applied, in.Lines, e.Subtotal(in.Lines, applied), in.IsBirthdayMonth)
		q.AppliedCode = rv.AppliedCode
		q.Discount = rv.Discount
		q.Revocation = rv.Revoked
		if attempt == applied {
			attempt = ""
		}
	}

	if attempt != "" {
		if q.AppliedCode != "" {
			q.Rejection = &Rejection{Code: attempt, Reason: ReasonAlreadyApplied}
		} else {
			ev := e.Evaluate(attempt, in.Lines, e.Subtotal(in.Lines, attempt), in.IsBirthdayMonth)
			if ev.Applied {
				q.AppliedCode = ev.Code
				q.Discount = ev.Discount
			} else {
				q.Rejection = ev.Rejection
			}
		}
	}

	q.Subtotal = e.Subtotal(in.Lines, q.AppliedCode)
	q.Shipping = e.Shipping(in.DistanceKm, q.Subtotal, q.AppliedCode)
	q.FinalPrice = e.FinalPrice(q.Subtotal, q.Discount, q.Shipping)

	return q
}
