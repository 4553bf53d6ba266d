package dto

import (
	"time"

	"github.com/gonexe/coupon-book-service/internal/domain"
)

// CreateCouponBookRequest payload.
type CreateCouponBookRequest struct {
	Name                      string `json:"name"`
	MaxUsesPerUser            int    `json:"max_uses_per_user"`
	IsRedeemableMultipleTimes bool   `json:"is_redeemable_multiple_times"`
}

// UploadCouponCodesRequest payload.
type UploadCouponCodesRequest struct {
	Codes []string `json:"codes"`
}

// AssignCouponRequest payload.
type AssignCouponRequest struct {
	CouponBookID int64 `json:"couponBookId"`
}

// CouponBookResponse response.
type CouponBookResponse struct {
	ID                        int64     `json:"id"`
	Name                      string    `json:"name"`
	MaxUsesPerUser            int       `json:"max_uses_per_user"`
	IsRedeemableMultipleTimes bool      `json:"is_redeemable_multiple_times"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// CouponResponse response.
type CouponResponse struct {
	ID               int64     `json:"id"`
	Code             string    `json:"code"`
	CouponBookID     int64     `json:"coupon_book_id"`
	AssignedToUserID *int64    `json:"assigned_to_user_id"`
	IsRedeemed       bool      `json:"is_redeemed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewCouponBookResponse maps a domain coupon book.
func NewCouponBookResponse(book *domain.CouponBook) CouponBookResponse {
	return CouponBookResponse{
		ID:                        book.ID,
		Name:                      book.Name,
		MaxUsesPerUser:            book.MaxUsesPerUser,
		IsRedeemableMultipleTimes: book.IsRedeemableMultipleTimes,
		CreatedAt:                 book.CreatedAt,
		UpdatedAt:                 book.UpdatedAt,
	}
}

// NewCouponResponse maps a domain coupon.
func NewCouponResponse(coupon *domain.Coupon) CouponResponse {
	return CouponResponse{
		ID:               coupon.ID,
		Code:             coupon.Code,
		CouponBookID:     coupon.CouponBookID,
		AssignedToUserID: coupon.AssignedToUserID,
		IsRedeemed:       coupon.IsRedeemed,
		CreatedAt:        coupon.CreatedAt,
		UpdatedAt:        coupon.UpdatedAt,
	}
}

// NewCouponListResponse maps a slice of domain coupons.
func NewCouponListResponse(coupons []domain.Coupon) []CouponResponse {
	result := make([]CouponResponse, 0, len(coupons))
	for i := range coupons {
		result = append(result, NewCouponResponse(&coupons[i]))
	}
	return result
}
