package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/rolodex-api/internal/domain"
)

// ContactFilter describes a contact search. Username is always required;
// the remaining filters are substring matches, AND-combined when present.
type ContactFilter struct {
	Username string
	Name     string // matches first_name OR last_name, case-insensitive
	Email    string
	Phone    string
	Offset   int
	Limit    int
}

// ContactStore defines the interface for contact data persistence.
// Every read and write is scoped to the owning username; a contact that
// exists but belongs to someone else behaves exactly like a missing one.
type ContactStore interface {
	// Create inserts the contact and sets its generated ID.
	Create(ctx context.Context, contact *domain.Contact) error

	// GetByID fetches the contact with the given id owned by username.
	// Returns ErrContactNotFound if no such row exists.
	GetByID(ctx context.Context, username string, id int64) (*domain.Contact, error)

	// CountByID returns 1 if a contact with the given id is owned by
	// username, 0 otherwise. Used for ownership checks.
	CountByID(ctx context.Context, username string, id int64) (int64, error)

	// Update replaces all mutable fields of the contact identified by
	// contact.ID and contact.Username. Returns ErrContactNotFound if no
	// row matched.
	Update(ctx context.Context, contact *domain.Contact) error

	// Delete removes the contact; its addresses are removed by the
	// database cascade. Returns ErrContactNotFound if no row matched.
	Delete(ctx context.Context, username string, id int64) error

	// List returns one page of contacts matching the filter together with
	// the total number of matches, ordered by id ascending.
	List(ctx context.Context, filter ContactFilter) ([]domain.Contact, int64, error)

	// WithTx returns a ContactStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ContactStore
}
