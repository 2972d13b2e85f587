package model

import "time"

// Profile holds the customer facts the storefront keeps per user.
type Profile struct {
	UserID    string     `json:"userId" db:"user_id"`
	Birthday  *time.Time `json:"birthday,omitempty" db:"birthday"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// BirthdayLocked reports whether the birthday has been set. It can only be
// set once.
func (p *Profile) BirthdayLocked() bool {
	return p != nil && p.Birthday != nil
}

// IsBirthdayMonth reports whether now falls in the customer's birth month.
// A profile without a birthday never qualifies.
func (p *Profile) IsBirthdayMonth(now time.Time) bool {
	if p == nil || p.Birthday == nil {
		return false
	}
	return p.Birthday.Month() == now.Month()
}

// SetBirthdayRequest represents the request payload for setting a birthday.
type SetBirthdayRequest struct {
	Birthday string `json:"birthday"` // YYYY-MM-DD
}
