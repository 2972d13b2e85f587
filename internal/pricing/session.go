package pricing

import "github.com/shopspring/decimal"

// Session is the coupon state of one checkout: the cart lines, the applied
// code and the delivery distance. It re-runs the engine on every read so an
// applied coupon is revalidated whenever the cart changes.
//
// A Session is not safe for concurrent use.
type Session struct {
	engine          *Engine
	lines           []Line
	appliedCode     string
	distanceKm      decimal.Decimal
	isBirthdayMonth bool
}

// NewSession starts an empty checkout session.
func (e *Engine) NewSession(isBirthdayMonth bool) *Session {
	return &Session{
		engine:          e,
		distanceKm:      decimal.Zero,
		isBirthdayMonth: isBirthdayMonth,
	}
}

// SetLines replaces the cart contents.
func (s *Session) SetLines(lines []Line) {
	s.lines = append([]Line(nil), lines...)
}

// SetDistance records the delivery distance in kilometres.
func (s *Session) SetDistance(km decimal.Decimal) {
	s.distanceKm = km
}

// AppliedCode returns the code currently applied, or "".
func (s *Session) AppliedCode() string {
	return s.appliedCode
}

// Apply tries to apply a coupon. Only one coupon may be applied at a time.
func (s *Session) Apply(code string) Evaluation {
	code = NormalizeCode(code)
	if s.appliedCode != "" {
		return Evaluation{
			Code:      code,
			Discount:  decimal.Zero,
			Rejection: &Rejection{Code: code, Reason: ReasonAlreadyApplied},
		}
	}

	ev := s.engine.Evaluate(code, s.lines, s.engine.Subtotal(s.lines, code), s.isBirthdayMonth)
	if ev.Applied {
		s.appliedCode = ev.Code
	}
	return ev
}

// Remove drops the applied coupon.
func (s *Session) Remove() {
	s.appliedCode = ""
}

// Totals recomputes the checkout, revalidating the applied coupon.
func (s *Session) Totals() Quote {
	q := s.engine.Quote(QuoteInput{
		Lines:           s.lines,
		AppliedCode:     s.appliedCode,
		DistanceKm:      s.distanceKm,
		IsBirthdayMonth: s.isBirthdayMonth,
	})
	s.appliedCode = q.AppliedCode
	return q
}
