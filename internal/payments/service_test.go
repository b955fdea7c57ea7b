package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type fakeRepo struct {
	rows       map[int64]Payment
	nextID     int64
	monthSince time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Payment{}, nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters ListFilters) ([]Payment, error) {
	var out []Payment
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Payment, error) {
	p, ok := f.rows[id]
	if !ok {
		return Payment{}, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Create(ctx context.Context, params CreateParams) (Payment, error) {
	p := Payment{
		ID:              f.nextID,
		ReceiptNo:       params.ReceiptNo,
		PaymentMethodID: params.PaymentMethodID,
		UserID:          params.UserID,
		EnrollmentID:    params.EnrollmentID,
		Payer:           params.Payer,
		Note:            params.Note,
		Amount:          params.Amount,
		Currency:        params.Currency,
		Type:            params.Type,
		PaidAt:          params.PaidAt,
	}
	f.nextID++
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, params CreateParams) (Payment, error) {
	p, ok := f.rows[id]
	if !ok {
		return Payment{}, shared.ErrNotFound
	}
	p.Amount = params.Amount
	p.Note = params.Note
	f.rows[id] = p
	return p, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) TotalByDateRange(ctx context.Context, currency string, from, to time.Time) (int64, error) {
	var total int64
	for _, p := range f.rows {
		if p.Currency == currency && !p.PaidAt.Before(from) && p.PaidAt.Before(to) {
			total += p.Amount
		}
	}
	return total, nil
}

func (f *fakeRepo) TotalByMonth(ctx context.Context, currency string, since time.Time) ([]MonthTotal, error) {
	f.monthSince = since
	var totals []MonthTotal
	for _, p := range f.rows {
		if p.Currency == currency && !p.PaidAt.Before(since) {
			totals = append(totals, MonthTotal{Month: shared.MonthStart(p.PaidAt), Total: p.Amount})
		}
	}
	return totals, nil
}

func (f *fakeRepo) Recent(ctx context.Context, limit int) ([]Payment, error) { return nil, nil }

func (f *fakeRepo) MethodDistribution(ctx context.Context, currency string) ([]MethodShare, error) {
	return nil, nil
}

func TestCreateAssignsReceiptNo(t *testing.T) {
	service := NewService(newFakeRepo())
	payer := "Walk-in customer"

	p, err := service.Create(context.Background(), PaymentForm{PaymentMethodID: 1, UserID: 2, Payer: &payer, Amount: 250_000})
	require.NoError(t, err)
	_, err = uuid.Parse(p.ReceiptNo)
	assert.NoError(t, err, "receipt number must be a UUID")
	assert.Equal(t, "IQD", p.Currency)
	assert.Equal(t, "full", p.Type)
	assert.False(t, p.PaidAt.IsZero())
}

func TestCreateRequiresPayerOrEnrollment(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Create(context.Background(), PaymentForm{PaymentMethodID: 1, UserID: 2, Amount: 100})
	require.ErrorIs(t, err, shared.ErrValidation)

	empty := ""
	_, err = service.Create(context.Background(), PaymentForm{PaymentMethodID: 1, UserID: 2, Amount: 100, Payer: &empty})
	assert.ErrorIs(t, err, shared.ErrValidation)

	enrollmentID := int64(9)
	_, err = service.Create(context.Background(), PaymentForm{PaymentMethodID: 1, UserID: 2, Amount: 100, EnrollmentID: &enrollmentID})
	assert.NoError(t, err)
}

func TestCreateHonoursExplicitPaidAt(t *testing.T) {
	service := NewService(newFakeRepo())
	payer := "Walk-in customer"
	paidAt := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)

	p, err := service.Create(context.Background(), PaymentForm{PaymentMethodID: 1, UserID: 2, Payer: &payer, Amount: 100, PaidAt: &paidAt})
	require.NoError(t, err)
	assert.True(t, p.PaidAt.Equal(paidAt))
}

func TestTotalByMonthWindow(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	service.now = func() time.Time { return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC) }

	_, err := service.TotalByMonth(context.Background(), "IQD", 6)
	require.NoError(t, err)
	// Whole months only: the bound is the month start, six months back.
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), repo.monthSince)
}

func TestTotalByMonthClampsRange(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	service.now = func() time.Time { return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC) }

	_, err := service.TotalByMonth(context.Background(), "IQD", -5)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), repo.monthSince)

	_, err = service.TotalByMonth(context.Background(), "IQD", 120)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), repo.monthSince)
}
