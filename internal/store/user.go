package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/rolodex-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password. Returns ErrUsernameExists if the username is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByToken retrieves the user whose stored token equals the given
	// value. Returns ErrUserNotFound if no user carries that token.
	GetByToken(ctx context.Context, token string) (*domain.User, error)

	// CountByUsername returns the number of users with the given username
	// (0 or 1, the column is unique).
	CountByUsername(ctx context.Context, username string) (int64, error)

	// Update writes the user's name, password hash and token back to the
	// row identified by Username. Returns ErrUserNotFound if the row is
	// missing.
	Update(ctx context.Context, user *domain.User) error

	// WithTx returns a UserStore bound to the provided transaction so that
	// multiple operations can share one transaction.
	WithTx(tx *sql.Tx) UserStore
}
