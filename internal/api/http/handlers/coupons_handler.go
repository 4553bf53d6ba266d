package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gonexe/coupon-book-service/internal/api/dto"
	"github.com/gonexe/coupon-book-service/internal/auth"
	"github.com/gonexe/coupon-book-service/internal/service"
	apperrors "github.com/gonexe/coupon-book-service/pkg/util"
)

// CouponsHandler exposes coupon lifecycle endpoints.
type CouponsHandler struct {
	coupons *service.CouponService
}

// NewCouponsHandler constructs handler.
func NewCouponsHandler(coupons *service.CouponService) *CouponsHandler {
	return &CouponsHandler{coupons: coupons}
}

// Assign handles POST /coupons/assign.
func (h *CouponsHandler) Assign(c *fiber.Ctx) error {
	userID, ok := auth.CallerID(c)
	if !ok {
		return apperrors.NewUnauthorized("caller identity required")
	}

	var req dto.AssignCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CouponBookID == 0 {
		return apperrors.NewValidationError("Coupon book ID is required", nil)
	}

	coupon, err := h.coupons.AssignRandomCoupon(c.UserContext(), req.CouponBookID, userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCouponResponse(coupon))
}

// AssignSpecific handles POST /coupons/assign/:code.
func (h *CouponsHandler) AssignSpecific(c *fiber.Ctx) error {
	userID, ok := auth.CallerID(c)
	if !ok {
		return apperrors.NewUnauthorized("caller identity required")
	}

	coupon, err := h.coupons.AssignSpecificCoupon(c.UserContext(), c.Params("code"), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCouponResponse(coupon))
}

// Lock handles POST /coupons/lock/:code.
func (h *CouponsHandler) Lock(c *fiber.Ctx) error {
	if err := h.coupons.LockCouponForRedemption(c.UserContext(), c.Params("code")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Coupon locked for redemption"})
}

// Redeem handles POST /coupons/redeem/:code.
func (h *CouponsHandler) Redeem(c *fiber.Ctx) error {
	coupon, err := h.coupons.RedeemCoupon(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Coupon redeemed successfully",
		"coupon":  dto.NewCouponResponse(coupon),
	})
}

// ListMine handles GET /coupons/user-coupons.
func (h *CouponsHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := auth.CallerID(c)
	if !ok {
		return apperrors.NewUnauthorized("caller identity required")
	}

	coupons, err := h.coupons.GetUserAssignedCoupons(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCouponListResponse(coupons))
}
