package domain

import "time"

// CouponBook is a named pool of coupon codes sharing a redemption policy.
// Books are immutable once coupons have been issued against them.
type CouponBook struct {
	ID                        int64
	Name                      string
	MaxUsesPerUser            int
	IsRedeemableMultipleTimes bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
