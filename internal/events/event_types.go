package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCouponAssigned EventType = "coupon_assigned"
	EventCouponLocked   EventType = "coupon_locked"
	EventCouponRedeemed EventType = "coupon_redeemed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Code      string      `json:"code"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CouponAssignedPayload payload.
type CouponAssignedPayload struct {
	CouponID     int64 `json:"coupon_id"`
	CouponBookID int64 `json:"coupon_book_id"`
	UserID       int64 `json:"user_id"`
}

// CouponLockedPayload payload.
type CouponLockedPayload struct {
	CouponID   int64   `json:"coupon_id"`
	UserID     *int64  `json:"user_id,omitempty"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

// CouponRedeemedPayload payload.
type CouponRedeemedPayload struct {
	CouponID int64  `json:"coupon_id"`
	UserID   *int64 `json:"user_id,omitempty"`
}
