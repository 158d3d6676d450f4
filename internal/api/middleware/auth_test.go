package middleware_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/rolodex-api/internal/api/middleware"
	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// tokenOnlyUserStore fakes the single store method the middleware uses.
type tokenOnlyUserStore struct {
	t            *testing.T
	getByTokenFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *tokenOnlyUserStore) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	if s.getByTokenFn == nil {
		s.t.Fatal("unexpected call to GetByToken")
	}
	return s.getByTokenFn(ctx, token)
}

func (s *tokenOnlyUserStore) Create(ctx context.Context, user *domain.User) error {
	s.t.Fatal("unexpected call to Create")
	return nil
}

func (s *tokenOnlyUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.t.Fatal("unexpected call to GetByUsername")
	return nil, nil
}

func (s *tokenOnlyUserStore) CountByUsername(ctx context.Context, username string) (int64, error) {
	s.t.Fatal("unexpected call to CountByUsername")
	return 0, nil
}

func (s *tokenOnlyUserStore) Update(ctx context.Context, user *domain.User) error {
	s.t.Fatal("unexpected call to Update")
	return nil
}

func (s *tokenOnlyUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

func TestAuthenticate(t *testing.T) {
	t.Run("passes the user to the next handler", func(t *testing.T) {
		users := &tokenOnlyUserStore{
			t: t,
			getByTokenFn: func(ctx context.Context, token string) (*domain.User, error) {
				assert.Equal(t, "token-123", token)
				return &domain.User{Username: "alice", Name: "Alice Smith"}, nil
			},
		}
		m := middleware.NewAuthMiddleware(users)

		var seen *domain.User
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := middleware.GetUser(r)
			require.True(t, ok)
			seen = user
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		req.Header.Set("Authorization", "token-123")
		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "alice", seen.Username)
	})

	t.Run("missing header is a 401 without a lookup", func(t *testing.T) {
		m := middleware.NewAuthMiddleware(&tokenOnlyUserStore{t: t})

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"errors":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("unknown token is a 401", func(t *testing.T) {
		users := &tokenOnlyUserStore{
			t: t,
			getByTokenFn: func(ctx context.Context, token string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		m := middleware.NewAuthMiddleware(users)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		req.Header.Set("Authorization", "stale-token")
		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"errors":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("store failure is a 500, not a 401", func(t *testing.T) {
		users := &tokenOnlyUserStore{
			t: t,
			getByTokenFn: func(ctx context.Context, token string) (*domain.User, error) {
				return nil, errors.New("connection refused")
			},
		}
		m := middleware.NewAuthMiddleware(users)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
		req.Header.Set("Authorization", "token-123")
		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
