package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/rolodex-api/internal/api"
	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/service"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// mockContactService is a function-field fake for service.ContactService.
type mockContactService struct {
	t        *testing.T
	createFn func(ctx context.Context, username string, input service.ContactInput) (*domain.Contact, error)
	getFn    func(ctx context.Context, username string, id int64) (*domain.Contact, error)
	updateFn func(ctx context.Context, username string, id int64, input service.ContactInput) (*domain.Contact, error)
	deleteFn func(ctx context.Context, username string, id int64) error
	searchFn func(ctx context.Context, username string, query service.SearchQuery) ([]domain.Contact, service.Paging, error)
}

func (m *mockContactService) Create(ctx context.Context, username string, input service.ContactInput) (*domain.Contact, error) {
	if m.createFn == nil {
		m.t.Fatal("unexpected call to Create")
	}
	return m.createFn(ctx, username, input)
}

func (m *mockContactService) Get(ctx context.Context, username string, id int64) (*domain.Contact, error) {
	if m.getFn == nil {
		m.t.Fatal("unexpected call to Get")
	}
	return m.getFn(ctx, username, id)
}

func (m *mockContactService) Update(ctx context.Context, username string, id int64, input service.ContactInput) (*domain.Contact, error) {
	if m.updateFn == nil {
		m.t.Fatal("unexpected call to Update")
	}
	return m.updateFn(ctx, username, id, input)
}

func (m *mockContactService) Delete(ctx context.Context, username string, id int64) error {
	if m.deleteFn == nil {
		m.t.Fatal("unexpected call to Delete")
	}
	return m.deleteFn(ctx, username, id)
}

func (m *mockContactService) Search(ctx context.Context, username string, query service.SearchQuery) ([]domain.Contact, service.Paging, error) {
	if m.searchFn == nil {
		m.t.Fatal("unexpected call to Search")
	}
	return m.searchFn(ctx, username, query)
}

// withPathParam injects a chi route parameter the way the router would,
// reusing the route context so parameters accumulate across calls.
func withPathParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

func TestContactHandlerCreate(t *testing.T) {
	t.Run("stamps the owner from context", func(t *testing.T) {
		svc := &mockContactService{
			t: t,
			createFn: func(ctx context.Context, username string, input service.ContactInput) (*domain.Contact, error) {
				assert.Equal(t, "alice", username)
				return &domain.Contact{ID: 42, Username: username, FirstName: input.FirstName}, nil
			},
		}
		handler := api.NewContactHandler(svc)

		req := withUser(
			httptest.NewRequest(http.MethodPost, "/api/contacts",
				strings.NewReader(`{"first_name":"Bob"}`)),
			&domain.User{Username: "alice"})
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"data":{"id":42,"first_name":"Bob","last_name":"","email":"","phone":""}}`,
			rec.Body.String())
	})

	t.Run("rejects a missing first name", func(t *testing.T) {
		handler := api.NewContactHandler(&mockContactService{t: t})

		req := withUser(
			httptest.NewRequest(http.MethodPost, "/api/contacts",
				strings.NewReader(`{"last_name":"Jones"}`)),
			&domain.User{Username: "alice"})
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Contains(t, body["errors"], "FirstName")
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		handler := api.NewContactHandler(&mockContactService{t: t})

		req := withUser(
			httptest.NewRequest(http.MethodPost, "/api/contacts",
				strings.NewReader(`{"first_name":"Bob","email":"not-an-email"}`)),
			&domain.User{Username: "alice"})
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContactHandlerGet(t *testing.T) {
	t.Run("returns the contact", func(t *testing.T) {
		svc := &mockContactService{
			t: t,
			getFn: func(ctx context.Context, username string, id int64) (*domain.Contact, error) {
				assert.Equal(t, int64(42), id)
				return &domain.Contact{ID: 42, Username: username, FirstName: "Bob"}, nil
			},
		}
		handler := api.NewContactHandler(svc)

		req := withPathParam(withUser(
			httptest.NewRequest(http.MethodGet, "/api/contacts/42", nil),
			&domain.User{Username: "alice"}), "contactId", "42")
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing contact is a 404 with the canonical message", func(t *testing.T) {
		svc := &mockContactService{
			t: t,
			getFn: func(ctx context.Context, username string, id int64) (*domain.Contact, error) {
				return nil, store.ErrContactNotFound
			},
		}
		handler := api.NewContactHandler(svc)

		req := withPathParam(withUser(
			httptest.NewRequest(http.MethodGet, "/api/contacts/42", nil),
			&domain.User{Username: "alice"}), "contactId", "42")
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"errors":"Contact is not found"}`, rec.Body.String())
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		handler := api.NewContactHandler(&mockContactService{t: t})

		req := withPathParam(withUser(
			httptest.NewRequest(http.MethodGet, "/api/contacts/abc", nil),
			&domain.User{Username: "alice"}), "contactId", "abc")
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContactHandlerUpdate(t *testing.T) {
	svc := &mockContactService{
		t: t,
		updateFn: func(ctx context.Context, username string, id int64, input service.ContactInput) (*domain.Contact, error) {
			assert.Equal(t, int64(42), id)
			assert.Equal(t, "Robert", input.FirstName)
			assert.Empty(t, input.Email, "absent fields replace with empty")
			return &domain.Contact{ID: 42, Username: username, FirstName: input.FirstName}, nil
		},
	}
	handler := api.NewContactHandler(svc)

	req := withPathParam(withUser(
		httptest.NewRequest(http.MethodPut, "/api/contacts/42",
			strings.NewReader(`{"first_name":"Robert"}`)),
		&domain.User{Username: "alice"}), "contactId", "42")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContactHandlerDelete(t *testing.T) {
	svc := &mockContactService{
		t: t,
		deleteFn: func(ctx context.Context, username string, id int64) error {
			assert.Equal(t, int64(42), id)
			return nil
		},
	}
	handler := api.NewContactHandler(svc)

	req := withPathParam(withUser(
		httptest.NewRequest(http.MethodDelete, "/api/contacts/42", nil),
		&domain.User{Username: "alice"}), "contactId", "42")
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":"OK"}`, rec.Body.String())
}

func TestContactHandlerSearch(t *testing.T) {
	t.Run("returns the page envelope", func(t *testing.T) {
		svc := &mockContactService{
			t: t,
			searchFn: func(ctx context.Context, username string, query service.SearchQuery) ([]domain.Contact, service.Paging, error) {
				assert.Equal(t, "bob", query.Name)
				assert.Equal(t, 2, query.Page)
				assert.Equal(t, 5, query.Size)
				return []domain.Contact{{ID: 6, FirstName: "Bob"}},
					service.Paging{Page: 2, TotalPage: 2, TotalItem: 6}, nil
			},
		}
		handler := api.NewContactHandler(svc)

		req := withUser(
			httptest.NewRequest(http.MethodGet, "/api/contacts?name=bob&page=2&size=5", nil),
			&domain.User{Username: "alice"})
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"data":[{"id":6,"first_name":"Bob","last_name":"","email":"","phone":""}],
			  "paging":{"page":2,"total_page":2,"total_item":6}}`,
			rec.Body.String())
	})

	t.Run("empty result keeps an empty array", func(t *testing.T) {
		svc := &mockContactService{
			t: t,
			searchFn: func(ctx context.Context, username string, query service.SearchQuery) ([]domain.Contact, service.Paging, error) {
				return nil, service.Paging{Page: 1, TotalPage: 0, TotalItem: 0}, nil
			},
		}
		handler := api.NewContactHandler(svc)

		req := withUser(
			httptest.NewRequest(http.MethodGet, "/api/contacts", nil),
			&domain.User{Username: "alice"})
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"data":[],"paging":{"page":1,"total_page":0,"total_item":0}}`,
			rec.Body.String())
	})

	t.Run("rejects an oversized page", func(t *testing.T) {
		handler := api.NewContactHandler(&mockContactService{t: t})

		req := withUser(
			httptest.NewRequest(http.MethodGet, "/api/contacts?size=101", nil),
			&domain.User{Username: "alice"})
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a non-numeric page", func(t *testing.T) {
		handler := api.NewContactHandler(&mockContactService{t: t})

		req := withUser(
			httptest.NewRequest(http.MethodGet, "/api/contacts?page=abc", nil),
			&domain.User{Username: "alice"})
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContactHandlerRequiresUser(t *testing.T) {
	handler := api.NewContactHandler(&mockContactService{t: t})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"errors":"Unauthorized"}`, rec.Body.String())
}
