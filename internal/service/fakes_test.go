package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gonexe/coupon-book-service/internal/domain"
)

// memCouponRepo is an in-memory CouponRepository. Its mutex stands in
// for the row-level atomicity the real store provides.
type memCouponRepo struct {
	mu      sync.Mutex
	nextID  int64
	coupons map[int64]*domain.Coupon
}

func newMemCouponRepo() *memCouponRepo {
	return &memCouponRepo{coupons: make(map[int64]*domain.Coupon)}
}

func (r *memCouponRepo) BulkInsert(_ context.Context, coupons []domain.Coupon) ([]domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := make([]domain.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		r.nextID++
		coupon.ID = r.nextID
		coupon.IsRedeemed = false
		coupon.AssignedToUserID = nil
		coupon.CreatedAt = time.Now()
		coupon.UpdatedAt = coupon.CreatedAt
		stored := coupon
		r.coupons[coupon.ID] = &stored
		inserted = append(inserted, coupon)
	}
	return inserted, nil
}

func (r *memCouponRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.sortedIDs() {
		if r.coupons[id].Code == code {
			return copyCoupon(r.coupons[id]), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memCouponRepo) AssignFirstAvailable(_ context.Context, couponBookID, userID int64) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.sortedIDs() {
		coupon := r.coupons[id]
		if coupon.CouponBookID == couponBookID && coupon.AssignedToUserID == nil {
			uid := userID
			coupon.AssignedToUserID = &uid
			coupon.UpdatedAt = time.Now()
			return copyCoupon(coupon), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memCouponRepo) AssignByID(_ context.Context, id, userID int64) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	coupon, ok := r.coupons[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	uid := userID
	coupon.AssignedToUserID = &uid
	coupon.UpdatedAt = time.Now()
	return copyCoupon(coupon), nil
}

func (r *memCouponRepo) MarkRedeemed(_ context.Context, id int64) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	coupon, ok := r.coupons[id]
	if !ok || coupon.IsRedeemed {
		return nil, pgx.ErrNoRows
	}
	coupon.IsRedeemed = true
	coupon.UpdatedAt = time.Now()
	return copyCoupon(coupon), nil
}

func (r *memCouponRepo) ListByUser(_ context.Context, userID int64) ([]domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Coupon
	for _, id := range r.sortedIDs() {
		coupon := r.coupons[id]
		if coupon.AssignedToUserID != nil && *coupon.AssignedToUserID == userID {
			result = append(result, *copyCoupon(coupon))
		}
	}
	return result, nil
}

func (r *memCouponRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.coupons))
	for id := range r.coupons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func copyCoupon(coupon *domain.Coupon) *domain.Coupon {
	clone := *coupon
	if coupon.AssignedToUserID != nil {
		uid := *coupon.AssignedToUserID
		clone.AssignedToUserID = &uid
	}
	return &clone
}

// memCouponBookRepo is an in-memory CouponBookRepository.
type memCouponBookRepo struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]*domain.CouponBook
}

func newMemCouponBookRepo() *memCouponBookRepo {
	return &memCouponBookRepo{books: make(map[int64]*domain.CouponBook)}
}

func (r *memCouponBookRepo) Create(_ context.Context, book *domain.CouponBook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	book.ID = r.nextID
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *memCouponBookRepo) GetByID(_ context.Context, id int64) (*domain.CouponBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *book
	return &clone, nil
}

func (r *memCouponBookRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.books)
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// memLockStore is an in-memory LockStore with an injectable clock so
// tests can advance past the TTL.
type memLockStore struct {
	mu      sync.Mutex
	entries map[string]lockEntry
	now     func() time.Time
}

type lockEntry struct {
	value     string
	expiresAt time.Time
}

func newMemLockStore() *memLockStore {
	return &memLockStore{
		entries: make(map[string]lockEntry),
		now:     time.Now,
	}
}

func (s *memLockStore) Acquire(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purge()
	if _, exists := s.entries[key]; exists {
		return false, nil
	}
	s.entries[key] = lockEntry{value: value, expiresAt: s.now().Add(ttl)}
	return true, nil
}

func (s *memLockStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purge()
	entry, exists := s.entries[key]
	if !exists {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (s *memLockStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *memLockStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.now
	s.now = func() time.Time { return base().Add(d) }
}

func (s *memLockStore) purge() {
	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
