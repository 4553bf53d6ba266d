package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gonexe/coupon-book-service/internal/domain"
	"github.com/gonexe/coupon-book-service/internal/events"
	"github.com/gonexe/coupon-book-service/internal/lockstore"
	"github.com/gonexe/coupon-book-service/internal/repository"
	apperrors "github.com/gonexe/coupon-book-service/pkg/util"
)

// CouponService owns the coupon lifecycle: assignment, locking and
// redemption. All cross-request coordination lives in the two stores;
// the service itself keeps no mutable state.
type CouponService struct {
	coupons    repository.CouponRepository
	locks      lockstore.LockStore
	dispatcher events.Dispatcher
	lockTTL    time.Duration
	logger     *zap.Logger
}

// CouponDependencies bundles collaborators for the coupon service.
type CouponDependencies struct {
	CouponRepo repository.CouponRepository
	LockStore  lockstore.LockStore
	Dispatcher events.Dispatcher
	LockTTL    time.Duration
	Logger     *zap.Logger
}

// NewCouponService constructs the service.
func NewCouponService(deps CouponDependencies) *CouponService {
	ttl := deps.LockTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CouponService{
		coupons:    deps.CouponRepo,
		locks:      deps.LockStore,
		dispatcher: deps.Dispatcher,
		lockTTL:    ttl,
		logger:     logger,
	}
}

// AssignRandomCoupon claims an arbitrary unassigned coupon from the
// book for the user. The claim is one conditional update, so two
// concurrent callers never receive the same coupon.
func (s *CouponService) AssignRandomCoupon(ctx context.Context, couponBookID, userID int64) (*domain.Coupon, error) {
	coupon, err := s.coupons.AssignFirstAvailable(ctx, couponBookID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage("No available coupons found")
		}
		return nil, apperrors.NewStorageError(err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventCouponAssigned,
		Code: coupon.Code,
		Payload: events.CouponAssignedPayload{
			CouponID:     coupon.ID,
			CouponBookID: coupon.CouponBookID,
			UserID:       userID,
		},
	})
	return coupon, nil
}

// AssignSpecificCoupon assigns the coupon with the given code to the
// user. A coupon that is already assigned is silently reassigned; the
// lookup only fails when no coupon carries the code.
func (s *CouponService) AssignSpecificCoupon(ctx context.Context, code string, userID int64) (*domain.Coupon, error) {
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage("Coupon not found or already assigned")
		}
		return nil, apperrors.NewStorageError(err)
	}

	assigned, err := s.coupons.AssignByID(ctx, coupon.ID, userID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventCouponAssigned,
		Code: assigned.Code,
		Payload: events.CouponAssignedPayload{
			CouponID:     assigned.ID,
			CouponBookID: assigned.CouponBookID,
			UserID:       userID,
		},
	})
	return assigned, nil
}

// LockCouponForRedemption places a short-lived lock on an assigned
// coupon so at most one caller can proceed to redemption. The lock is
// acquired with an atomic set-if-absent, so two racing callers cannot
// both obtain it.
func (s *CouponService) LockCouponForRedemption(ctx context.Context, code string) error {
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("Coupon not found")
		}
		return apperrors.NewStorageError(err)
	}

	if !coupon.IsAssigned() {
		return apperrors.NewConflict("Coupon has not been assigned to a user", nil)
	}

	acquired, err := s.locks.Acquire(ctx, lockstore.RedemptionKey(code), uuid.NewString(), s.lockTTL)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if !acquired {
		return apperrors.NewConflict("Coupon is already locked", nil)
	}

	s.publish(ctx, events.Event{
		Type: events.EventCouponLocked,
		Code: code,
		Payload: events.CouponLockedPayload{
			CouponID:   coupon.ID,
			UserID:     coupon.AssignedToUserID,
			TTLSeconds: s.lockTTL.Seconds(),
		},
	})
	return nil
}

// RedeemCoupon commits a redemption while its lock is held. The
// redeemed flag flips exactly once; the lock is cleared afterwards and
// left to expire if the delete fails.
func (s *CouponService) RedeemCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	key := lockstore.RedemptionKey(code)
	_, locked, err := s.locks.Get(ctx, key)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	if !locked {
		return nil, apperrors.NewConflict("Coupon is not locked for redemption", nil)
	}

	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage("Coupon not found")
		}
		return nil, apperrors.NewStorageError(err)
	}
	if coupon.IsRedeemed {
		return nil, apperrors.NewConflict("Coupon has already been redeemed", nil)
	}

	redeemed, err := s.coupons.MarkRedeemed(ctx, coupon.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// lost the race to another redeemer between read and write
			return nil, apperrors.NewConflict("Coupon has already been redeemed", nil)
		}
		return nil, apperrors.NewStorageError(err)
	}

	if err := s.locks.Release(ctx, key); err != nil {
		// redemption already committed; the lock entry expires on its own
		s.logger.Warn("failed to release redemption lock", zap.String("code", code), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		Type: events.EventCouponRedeemed,
		Code: code,
		Payload: events.CouponRedeemedPayload{
			CouponID: redeemed.ID,
			UserID:   redeemed.AssignedToUserID,
		},
	})
	return redeemed, nil
}

// GetUserAssignedCoupons returns all coupons assigned to the user.
func (s *CouponService) GetUserAssignedCoupons(ctx context.Context, userID int64) ([]domain.Coupon, error) {
	coupons, err := s.coupons.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return coupons, nil
}

func (s *CouponService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
