package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gonexe/coupon-book-service/internal/domain"
)

// CouponBookRepository encapsulates coupon book persistence.
type CouponBookRepository interface {
	Create(ctx context.Context, book *domain.CouponBook) error
	GetByID(ctx context.Context, id int64) (*domain.CouponBook, error)
}

type couponBookRepository struct {
	pool *pgxpool.Pool
}

// NewCouponBookRepository returns a Postgres-backed implementation.
func NewCouponBookRepository(pool *pgxpool.Pool) CouponBookRepository {
	return &couponBookRepository{pool: pool}
}

func (r *couponBookRepository) Create(ctx context.Context, book *domain.CouponBook) error {
	const query = `
        INSERT INTO coupon_books (name, max_uses_per_user, is_redeemable_multiple_times)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		book.Name,
		book.MaxUsesPerUser,
		book.IsRedeemableMultipleTimes,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

func (r *couponBookRepository) GetByID(ctx context.Context, id int64) (*domain.CouponBook, error) {
	const query = `
        SELECT id, name, max_uses_per_user, is_redeemable_multiple_times, created_at, updated_at
        FROM coupon_books WHERE id=$1`

	var book domain.CouponBook
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Name,
		&book.MaxUsesPerUser,
		&book.IsRedeemableMultipleTimes,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &book, nil
}
