package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gonexe/coupon-book-service/internal/api/dto"
	"github.com/gonexe/coupon-book-service/internal/service"
	apperrors "github.com/gonexe/coupon-book-service/pkg/util"
)

// CouponBooksHandler exposes coupon book endpoints.
type CouponBooksHandler struct {
	books *service.CouponBookService
}

// NewCouponBooksHandler constructs handler.
func NewCouponBooksHandler(books *service.CouponBookService) *CouponBooksHandler {
	return &CouponBooksHandler{books: books}
}

// Create handles POST /coupon-books.
func (h *CouponBooksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCouponBookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	book, err := h.books.CreateCouponBook(c.UserContext(), service.CouponBookInput{
		Name:                      req.Name,
		MaxUsesPerUser:            req.MaxUsesPerUser,
		IsRedeemableMultipleTimes: req.IsRedeemableMultipleTimes,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewCouponBookResponse(book))
}

// UploadCodes handles POST /coupon-books/:id/codes.
func (h *CouponBooksHandler) UploadCodes(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("Coupon book ID is required", nil)
	}

	var req dto.UploadCouponCodesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	coupons, err := h.books.UploadCouponCodes(c.UserContext(), int64(bookID), req.Codes)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewCouponListResponse(coupons))
}
