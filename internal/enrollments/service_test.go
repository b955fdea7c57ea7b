package enrollments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/batches"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/discountcodes"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type fakeRepo struct {
	rows   map[int64]Enrollment
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Enrollment{}, nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters ListFilters) ([]Enrollment, error) {
	var out []Enrollment
	for _, e := range f.rows {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Enrollment, error) {
	e, ok := f.rows[id]
	if !ok {
		return Enrollment{}, shared.ErrNotFound
	}
	return e, nil
}

func (f *fakeRepo) Create(ctx context.Context, params CreateParams) (Enrollment, error) {
	e := Enrollment{
		ID:             f.nextID,
		StudentID:      params.StudentID,
		BatchID:        params.BatchID,
		DiscountCodeID: params.DiscountCodeID,
		UserID:         params.UserID,
		TotalPrice:     params.TotalPrice,
		Currency:       params.Currency,
		EnrolledAt:     params.EnrolledAt,
		Status:         params.Status,
		Notes:          params.Notes,
	}
	f.nextID++
	f.rows[e.ID] = e
	return e, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, params CreateParams) (Enrollment, error) {
	e, ok := f.rows[id]
	if !ok {
		return Enrollment{}, shared.ErrNotFound
	}
	e.StudentID = params.StudentID
	e.BatchID = params.BatchID
	e.DiscountCodeID = params.DiscountCodeID
	e.TotalPrice = params.TotalPrice
	e.Currency = params.Currency
	e.Status = params.Status
	e.Notes = params.Notes
	f.rows[id] = e
	return e, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status string) (Enrollment, error) {
	e, ok := f.rows[id]
	if !ok {
		return Enrollment{}, shared.ErrNotFound
	}
	e.Status = status
	f.rows[id] = e
	return e, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeBatchSource struct {
	batch    batches.Batch
	capacity bool
}

func (f *fakeBatchSource) Get(ctx context.Context, id int64) (batches.Batch, error) {
	if id != f.batch.ID {
		return batches.Batch{}, shared.ErrNotFound
	}
	return f.batch, nil
}

func (f *fakeBatchSource) HasCapacity(ctx context.Context, id int64) (bool, error) {
	return f.capacity, nil
}

type fakeDiscountSource struct {
	code       discountcodes.DiscountCode
	err        error
	increments []int64
	decrements []int64
}

func (f *fakeDiscountSource) ValidateCode(ctx context.Context, code string) (discountcodes.DiscountCode, error) {
	if f.err != nil {
		return discountcodes.DiscountCode{}, f.err
	}
	if code != f.code.Code {
		return discountcodes.DiscountCode{}, shared.ErrNotFound
	}
	return f.code, nil
}

func (f *fakeDiscountSource) IncrementUsage(ctx context.Context, id int64) error {
	f.increments = append(f.increments, id)
	return nil
}

func (f *fakeDiscountSource) DecrementUsage(ctx context.Context, id int64) error {
	f.decrements = append(f.decrements, id)
	return nil
}

func testBatch() batches.Batch {
	return batches.Batch{ID: 7, Name: "A1 Evening", Status: "open", ActualPrice: 500_000, Currency: "IQD"}
}

func TestCreateDefaultsPriceFromBatch(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: true}, &fakeDiscountSource{})

	e, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), e.TotalPrice)
	assert.Equal(t, "IQD", e.Currency)
	assert.Equal(t, "pending", e.Status)
	assert.Nil(t, e.DiscountCodeID)
}

func TestCreateExplicitPriceWins(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: true}, &fakeDiscountSource{})

	price := int64(450_000)
	e, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3, TotalPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(450_000), e.TotalPrice)
}

func TestCreateBatchFull(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: false}, &fakeDiscountSource{})

	_, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, repo.rows)
}

func TestCreateUnknownBatch(t *testing.T) {
	service := NewService(newFakeRepo(), &fakeBatchSource{batch: testBatch(), capacity: true}, &fakeDiscountSource{})

	_, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 99, UserID: 3})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateAppliesDiscountAndBumpsUsage(t *testing.T) {
	repo := newFakeRepo()
	amount := int64(100_000)
	discounts := &fakeDiscountSource{code: discountcodes.DiscountCode{ID: 4, Code: "EARLY", Amount: &amount}}
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: true}, discounts)

	e, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3, DiscountCode: "EARLY"})
	require.NoError(t, err)
	assert.Equal(t, int64(400_000), e.TotalPrice)
	require.NotNil(t, e.DiscountCodeID)
	assert.Equal(t, int64(4), *e.DiscountCodeID)
	assert.Equal(t, []int64{4}, discounts.increments)
}

func TestCreateInvalidDiscountRejectsEnrollment(t *testing.T) {
	repo := newFakeRepo()
	discounts := &fakeDiscountSource{err: shared.ErrValidation}
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: true}, discounts)

	_, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3, DiscountCode: "BAD"})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, repo.rows)
	assert.Empty(t, discounts.increments)
}

func TestDeleteReleasesDiscountUsage(t *testing.T) {
	repo := newFakeRepo()
	amount := int64(50_000)
	discounts := &fakeDiscountSource{code: discountcodes.DiscountCode{ID: 4, Code: "EARLY", Amount: &amount}}
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: true}, discounts)

	e, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3, DiscountCode: "EARLY"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), e.ID))
	assert.Equal(t, []int64{4}, discounts.decrements)
	assert.Empty(t, repo.rows)
}

func TestDeleteWithoutDiscountLeavesUsageAlone(t *testing.T) {
	repo := newFakeRepo()
	discounts := &fakeDiscountSource{}
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: true}, discounts)

	e, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), e.ID))
	assert.Empty(t, discounts.decrements)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	service := NewService(newFakeRepo(), &fakeBatchSource{}, &fakeDiscountSource{})

	_, err := service.UpdateStatus(context.Background(), 1, "archived")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateKeepsPriceAndDiscount(t *testing.T) {
	repo := newFakeRepo()
	amount := int64(100_000)
	discounts := &fakeDiscountSource{code: discountcodes.DiscountCode{ID: 4, Code: "EARLY", Amount: &amount}}
	service := NewService(repo, &fakeBatchSource{batch: testBatch(), capacity: true}, discounts)

	e, err := service.Create(context.Background(), EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3, DiscountCode: "EARLY"})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), e.ID, EnrollmentForm{StudentID: 1, BatchID: 7, UserID: 3, Notes: "moved to evening slot"})
	require.NoError(t, err)
	assert.Equal(t, e.TotalPrice, updated.TotalPrice)
	assert.Equal(t, e.DiscountCodeID, updated.DiscountCodeID)
	assert.Equal(t, "moved to evening slot", updated.Notes)
}
