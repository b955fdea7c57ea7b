package discountcodes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type fakeRepo struct {
	byCode map[string]DiscountCode
	byID   map[int64]DiscountCode
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byCode: map[string]DiscountCode{}, byID: map[int64]DiscountCode{}}
}

func (f *fakeRepo) put(d DiscountCode) {
	f.byCode[d.Code] = d
	f.byID[d.ID] = d
}

func (f *fakeRepo) List(ctx context.Context) ([]DiscountCode, error) { return nil, nil }

func (f *fakeRepo) Get(ctx context.Context, id int64) (DiscountCode, error) {
	d, ok := f.byID[id]
	if !ok {
		return DiscountCode{}, shared.ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) GetByCode(ctx context.Context, code string) (DiscountCode, error) {
	d, ok := f.byCode[code]
	if !ok {
		return DiscountCode{}, shared.ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) Create(ctx context.Context, form DiscountCodeForm) (DiscountCode, error) {
	return DiscountCode{}, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, form DiscountCodeForm) (DiscountCode, error) {
	return DiscountCode{}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeRepo) IncrementUsage(ctx context.Context, id int64) error {
	d := f.byID[id]
	d.UsedCount++
	f.put(d)
	return nil
}

func (f *fakeRepo) DecrementUsage(ctx context.Context, id int64) error {
	d := f.byID[id]
	if d.UsedCount > 0 {
		d.UsedCount--
	}
	f.put(d)
	return nil
}

func (f *fakeRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, d := range f.byID {
		if d.Active && d.ValidTo != nil && d.ValidTo.Before(now) {
			d.Active = false
			f.byID[id] = d
			f.byCode[d.Code] = d
			n++
		}
	}
	return n, nil
}

func newTestService(repo Repository, now time.Time) *Service {
	service := NewService(repo)
	service.now = func() time.Time { return now }
	return service
}

func TestValidateCode(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	from := now.AddDate(0, 0, -1)
	to := now.AddDate(0, 0, 1)
	limit := 10

	repo := newFakeRepo()
	repo.put(DiscountCode{ID: 1, Code: "SPRING", Active: true, ValidFrom: &from, ValidTo: &to, UsageLimit: &limit, UsedCount: 3})
	service := newTestService(repo, now)

	d, err := service.ValidateCode(context.Background(), "SPRING")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
}

func TestValidateCodeExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	to := now.AddDate(0, 0, -1)

	repo := newFakeRepo()
	repo.put(DiscountCode{ID: 1, Code: "OLD", Active: true, ValidTo: &to})
	service := newTestService(repo, now)

	_, err := service.ValidateCode(context.Background(), "OLD")
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateCodeNotYetValid(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	from := now.AddDate(0, 0, 5)

	repo := newFakeRepo()
	repo.put(DiscountCode{ID: 1, Code: "SOON", Active: true, ValidFrom: &from})
	service := newTestService(repo, now)

	_, err := service.ValidateCode(context.Background(), "SOON")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestValidateCodeInactive(t *testing.T) {
	repo := newFakeRepo()
	repo.put(DiscountCode{ID: 1, Code: "DEAD", Active: false})
	service := newTestService(repo, time.Now())

	_, err := service.ValidateCode(context.Background(), "DEAD")
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "not active")
}

func TestValidateCodeUsageLimit(t *testing.T) {
	limit := 2
	repo := newFakeRepo()
	repo.put(DiscountCode{ID: 1, Code: "FULL", Active: true, UsageLimit: &limit, UsedCount: 2})
	service := newTestService(repo, time.Now())

	_, err := service.ValidateCode(context.Background(), "FULL")
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "usage limit")
}

func TestValidateCodeUnknown(t *testing.T) {
	service := newTestService(newFakeRepo(), time.Now())

	_, err := service.ValidateCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSweepExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	repo := newFakeRepo()
	repo.put(DiscountCode{ID: 1, Code: "GONE", Active: true, ValidTo: &past})
	repo.put(DiscountCode{ID: 2, Code: "ALIVE", Active: true, ValidTo: &future})
	service := newTestService(repo, now)

	swept, err := service.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)
	assert.False(t, repo.byCode["GONE"].Active)
	assert.True(t, repo.byCode["ALIVE"].Active)
}

func TestApply(t *testing.T) {
	amount := int64(30)
	percent := 25

	assert.Equal(t, int64(70), Apply(DiscountCode{Amount: &amount}, 100))
	assert.Equal(t, int64(75), Apply(DiscountCode{Percent: &percent}, 100))
	// Flat amount wins when both are set.
	assert.Equal(t, int64(70), Apply(DiscountCode{Amount: &amount, Percent: &percent}, 100))
	// Never below zero.
	assert.Equal(t, int64(0), Apply(DiscountCode{Amount: &amount}, 10))
	// No discount fields set leaves the price alone.
	assert.Equal(t, int64(100), Apply(DiscountCode{}, 100))
}
