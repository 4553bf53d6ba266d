package service

import (
	"context"
	"strings"

	"github.com/gonexe/coupon-book-service/internal/domain"
	"github.com/gonexe/coupon-book-service/internal/repository"
	apperrors "github.com/gonexe/coupon-book-service/pkg/util"
)

// CouponBookInput describes coupon book creation payload.
type CouponBookInput struct {
	Name                      string
	MaxUsesPerUser            int
	IsRedeemableMultipleTimes bool
}

// CouponBookService validates and persists coupon book definitions and
// the bulk code uploads feeding the lifecycle engine's pool.
type CouponBookService struct {
	books   repository.CouponBookRepository
	coupons repository.CouponRepository
}

// NewCouponBookService builds the service.
func NewCouponBookService(books repository.CouponBookRepository, coupons repository.CouponRepository) *CouponBookService {
	return &CouponBookService{books: books, coupons: coupons}
}

// CreateCouponBook validates input and persists a new coupon book.
func (s *CouponBookService) CreateCouponBook(ctx context.Context, input CouponBookInput) (*domain.CouponBook, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("Coupon book name is required", nil)
	}
	if input.MaxUsesPerUser < 1 {
		return nil, apperrors.NewValidationError("Max uses per user must be at least 1", nil)
	}

	book := &domain.CouponBook{
		Name:                      input.Name,
		MaxUsesPerUser:            input.MaxUsesPerUser,
		IsRedeemableMultipleTimes: input.IsRedeemableMultipleTimes,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return book, nil
}

// UploadCouponCodes bulk-inserts one unassigned coupon per code into
// the given book. Duplicate codes are accepted as-is.
func (s *CouponBookService) UploadCouponCodes(ctx context.Context, couponBookID int64, codes []string) ([]domain.Coupon, error) {
	if couponBookID == 0 {
		return nil, apperrors.NewValidationError("Coupon book ID is required", nil)
	}
	if len(codes) == 0 {
		return nil, apperrors.NewValidationError("A list of coupon codes is required", nil)
	}

	coupons := make([]domain.Coupon, 0, len(codes))
	for _, code := range codes {
		coupons = append(coupons, domain.Coupon{
			Code:         code,
			CouponBookID: couponBookID,
		})
	}

	inserted, err := s.coupons.BulkInsert(ctx, coupons)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return inserted, nil
}
