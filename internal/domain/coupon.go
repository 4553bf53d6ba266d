package domain

import "time"

// Coupon is a single redeemable code belonging to exactly one book.
// Lifecycle: unassigned -> assigned -> locked -> redeemed. The locked
// state is not persisted here; it is derived from the presence of a
// lock-store entry for the code. Redeemed is terminal.
type Coupon struct {
	ID               int64
	Code             string
	CouponBookID     int64
	AssignedToUserID *int64
	IsRedeemed       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAssigned reports whether the coupon has been assigned to a user.
func (c *Coupon) IsAssigned() bool {
	return c.AssignedToUserID != nil
}
