package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/rolodex-api/internal/domain"
)

// AddressStore defines the interface for address data persistence.
// Addresses are only ever addressed through their owning contact; callers
// must verify contact ownership before using these methods.
type AddressStore interface {
	// Create inserts the address and sets its generated ID.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID fetches the address with the given id under contactID.
	// Returns ErrAddressNotFound if no such row exists.
	GetByID(ctx context.Context, contactID, id int64) (*domain.Address, error)

	// CountByID returns 1 if an address with the given id exists under
	// contactID, 0 otherwise.
	CountByID(ctx context.Context, contactID, id int64) (int64, error)

	// Update replaces all fields of the address identified by address.ID
	// and address.ContactID. Returns ErrAddressNotFound if no row matched.
	Update(ctx context.Context, address *domain.Address) error

	// WithTx returns an AddressStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AddressStore
}
