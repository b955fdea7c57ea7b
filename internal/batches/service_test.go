package batches

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type fakeRepo struct {
	rows     map[int64]Batch
	enrolled map[int64]int
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Batch{}, enrolled: map[int64]int{}, nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters ListFilters) ([]Batch, error) {
	var out []Batch
	for _, b := range f.rows {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Batch, error) {
	b, ok := f.rows[id]
	if !ok {
		return Batch{}, shared.ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) Create(ctx context.Context, form BatchForm) (Batch, error) {
	b := Batch{
		ID:          f.nextID,
		CourseID:    form.CourseID,
		Name:        form.Name,
		Level:       form.Level,
		Capacity:    form.Capacity,
		Status:      form.Status,
		ActualPrice: form.ActualPrice,
		Currency:    form.Currency,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
	}
	f.nextID++
	f.rows[b.ID] = b
	return b, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, form BatchForm) (Batch, error) {
	b, ok := f.rows[id]
	if !ok {
		return Batch{}, shared.ErrNotFound
	}
	b.Name = form.Name
	b.Status = form.Status
	b.Capacity = form.Capacity
	f.rows[id] = b
	return b, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status string) (Batch, error) {
	b, ok := f.rows[id]
	if !ok {
		return Batch{}, shared.ErrNotFound
	}
	b.Status = status
	f.rows[id] = b
	return b, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) EnrolledCount(ctx context.Context, id int64) (int, error) {
	return f.enrolled[id], nil
}

func TestCreateDefaults(t *testing.T) {
	service := NewService(newFakeRepo())

	b, err := service.Create(context.Background(), BatchForm{CourseID: 1, Name: "A1 Morning"})
	require.NoError(t, err)
	assert.Equal(t, "open", b.Status)
	assert.Equal(t, "IQD", b.Currency)
}

func TestCreateEndBeforeStart(t *testing.T) {
	service := NewService(newFakeRepo())
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)

	_, err := service.Create(context.Background(), BatchForm{CourseID: 1, Name: "A1 Morning", StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.UpdateStatus(context.Background(), 1, "paused")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestHasCapacityUnlimited(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	b, err := service.Create(context.Background(), BatchForm{CourseID: 1, Name: "A1 Morning"})
	require.NoError(t, err)
	repo.enrolled[b.ID] = 500

	ok, err := service.HasCapacity(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, ok, "nil capacity means unlimited")
}

func TestHasCapacityCounting(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	capacity := 15

	b, err := service.Create(context.Background(), BatchForm{CourseID: 1, Name: "A1 Morning", Capacity: &capacity})
	require.NoError(t, err)

	repo.enrolled[b.ID] = 14
	ok, err := service.HasCapacity(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	repo.enrolled[b.ID] = 15
	ok, err = service.HasCapacity(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasCapacityClosedBatch(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	b, err := service.Create(context.Background(), BatchForm{CourseID: 1, Name: "A1 Morning"})
	require.NoError(t, err)
	_, err = service.UpdateStatus(context.Background(), b.ID, "closed")
	require.NoError(t, err)

	ok, err := service.HasCapacity(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
