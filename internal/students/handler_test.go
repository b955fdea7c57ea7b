package students

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/rbac"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type fakeRepo struct {
	rows   map[int64]Student
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Student{}, nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters ListFilters) ([]Student, error) {
	out := []Student{}
	for _, s := range f.rows {
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Student, error) {
	s, ok := f.rows[id]
	if !ok {
		return Student{}, shared.ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) Create(ctx context.Context, form StudentForm) (Student, error) {
	s := Student{ID: f.nextID, FullName: form.FullName, Phone: form.Phone, Status: form.Status, CourseType: form.CourseType}
	f.nextID++
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, form StudentForm) (Student, error) {
	s, ok := f.rows[id]
	if !ok {
		return Student{}, shared.ErrNotFound
	}
	s.FullName = form.FullName
	s.Phone = form.Phone
	s.Status = form.Status
	f.rows[id] = s
	return s, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type allowAll struct{}

func (allowAll) GrantedNames(ctx context.Context, roleID int64) ([]string, error) {
	return shared.PermissionCatalog(), nil
}

func newTestRouter(repo Repository) chi.Router {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	guard := rbac.Middleware{Source: allowAll{}, Logger: logger}
	handler := NewHandler(logger, NewService(repo), guard)

	r := chi.NewRouter()
	roleID := int64(1)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims := &shared.Claims{UserID: 1, RoleID: &roleID}
			next.ServeHTTP(w, req.WithContext(shared.ContextWithClaims(req.Context(), claims)))
		})
	})
	r.Route("/students", handler.MountRoutes)
	return r
}

func TestCreateAndGetStudent(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	body := `{"full_name":"Sara Ahmed","phone":"07701234567","course_type":"ielts"}`
	req := httptest.NewRequest(http.MethodPost, "/students/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Sara Ahmed", created.FullName)
	assert.Equal(t, "pending", created.Status)

	req = httptest.NewRequest(http.MethodGet, "/students/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateStudentMissingPhone(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodPost, "/students/", bytes.NewBufferString(`{"full_name":"No Phone"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phone")
}

func TestCreateStudentBadJSON(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodPost, "/students/", bytes.NewBufferString(`{"full_name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStudentNotFound(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/students/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStudentBadID(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/students/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListStudentsFiltersByStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.rows[1] = Student{ID: 1, FullName: "A", Phone: "1", Status: "pending"}
	repo.rows[2] = Student{ID: 2, FullName: "B", Phone: "2", Status: "accepted"}
	repo.nextID = 3
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/students/?status=accepted", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "B", listed[0].FullName)
}

func TestDeleteStudent(t *testing.T) {
	repo := newFakeRepo()
	repo.rows[1] = Student{ID: 1, FullName: "A", Phone: "1", Status: "pending"}
	repo.nextID = 2
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/students/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.rows)
}

func TestUpdateStudentInvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.rows[1] = Student{ID: 1, FullName: "A", Phone: "1", Status: "pending"}
	repo.nextID = 2
	router := newTestRouter(repo)

	body := `{"full_name":"A","phone":"1","status":"graduated"}`
	req := httptest.NewRequest(http.MethodPatch, "/students/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
