package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gonexe/coupon-book-service/internal/domain"
)

const couponColumns = `id, code, coupon_book_id, assigned_to_user_id, is_redeemed, created_at, updated_at`

// CouponRepository encapsulates coupon persistence.
type CouponRepository interface {
	BulkInsert(ctx context.Context, coupons []domain.Coupon) ([]domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	// AssignFirstAvailable claims one unassigned coupon in the book for
	// the user in a single conditional update. Returns pgx.ErrNoRows
	// when the book has no unassigned coupons left.
	AssignFirstAvailable(ctx context.Context, couponBookID, userID int64) (*domain.Coupon, error)
	AssignByID(ctx context.Context, id, userID int64) (*domain.Coupon, error)
	// MarkRedeemed flips is_redeemed for a coupon that has not been
	// redeemed yet. Returns pgx.ErrNoRows when the flag was already set.
	MarkRedeemed(ctx context.Context, id int64) (*domain.Coupon, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Coupon, error)
}

type couponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository instantiates repository.
func NewCouponRepository(pool *pgxpool.Pool) CouponRepository {
	return &couponRepository{pool: pool}
}

func (r *couponRepository) BulkInsert(ctx context.Context, coupons []domain.Coupon) ([]domain.Coupon, error) {
	const query = `
        INSERT INTO coupons (code, coupon_book_id, is_redeemed)
        VALUES ($1, $2, false)
        RETURNING ` + couponColumns

	batch := &pgx.Batch{}
	for _, coupon := range coupons {
		batch.Queue(query, coupon.Code, coupon.CouponBookID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := make([]domain.Coupon, 0, len(coupons))
	for range coupons {
		coupon, err := scanCoupon(results.QueryRow())
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, *coupon)
	}
	return inserted, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const query = `SELECT ` + couponColumns + ` FROM coupons WHERE code=$1`
	return scanCoupon(r.pool.QueryRow(ctx, query, code))
}

func (r *couponRepository) AssignFirstAvailable(ctx context.Context, couponBookID, userID int64) (*domain.Coupon, error) {
	// Single statement so two concurrent callers can never claim the
	// same row; SKIP LOCKED sends them to different candidates.
	const query = `
        UPDATE coupons SET assigned_to_user_id=$2, updated_at=NOW()
        WHERE id = (
            SELECT id FROM coupons
            WHERE coupon_book_id=$1 AND assigned_to_user_id IS NULL
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, query, couponBookID, userID))
}

func (r *couponRepository) AssignByID(ctx context.Context, id, userID int64) (*domain.Coupon, error) {
	const query = `
        UPDATE coupons SET assigned_to_user_id=$2, updated_at=NOW()
        WHERE id=$1
        RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *couponRepository) MarkRedeemed(ctx context.Context, id int64) (*domain.Coupon, error) {
	const query = `
        UPDATE coupons SET is_redeemed=true, updated_at=NOW()
        WHERE id=$1 AND is_redeemed=false
        RETURNING ` + couponColumns
	return scanCoupon(r.pool.QueryRow(ctx, query, id))
}

func (r *couponRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Coupon, error) {
	const query = `SELECT ` + couponColumns + ` FROM coupons WHERE assigned_to_user_id=$1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *coupon)
	}
	return result, rows.Err()
}

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var coupon domain.Coupon
	if err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.CouponBookID,
		&coupon.AssignedToUserID,
		&coupon.IsRedeemed,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &coupon, nil
}
