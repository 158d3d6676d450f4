package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// AddressInput carries the mutable fields of an address. The validate tags
// are checked by the service itself rather than the handler so that the
// contact ownership check always runs first: a request under a contact the
// caller does not own yields not-found before any field validation.
type AddressInput struct {
	Street     string `validate:"omitempty,max=255"`
	City       string `validate:"omitempty,max=255"`
	Province   string `validate:"omitempty,max=255"`
	Country    string `validate:"required,max=100"`
	PostalCode string `validate:"required,max=10"`
}

// AddressService provides address operations. Every operation first verifies
// that the contact belongs to the requesting user; a contact owned by someone
// else is indistinguishable from a missing one.
type AddressService interface {
	// Create inserts an address under the contact after the ownership check.
	Create(ctx context.Context, username string, contactID int64, input AddressInput) (*domain.Address, error)

	// Get fetches one address under the contact. The address id is only
	// validated after the ownership check succeeds.
	Get(ctx context.Context, username string, contactID, addressID int64) (*domain.Address, error)

	// Update replaces all fields of the address identified by addressID
	// after the ownership and existence checks.
	Update(ctx context.Context, username string, contactID, addressID int64, input AddressInput) (*domain.Address, error)
}

// AddressServiceImpl implements the AddressService interface.
type AddressServiceImpl struct {
	contactStore store.ContactStore
	addressStore store.AddressStore
	db           *sql.DB
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewAddressService creates a new AddressService.
func NewAddressService(
	contactStore store.ContactStore,
	addressStore store.AddressStore,
	db *sql.DB,
	logger *slog.Logger,
) *AddressServiceImpl {
	return &AddressServiceImpl{
		contactStore: contactStore,
		addressStore: addressStore,
		db:           db,
		validate:     validator.New(),
		logger:       logger.With("component", "address_service"),
	}
}

// Ensure AddressServiceImpl implements AddressService.
var _ AddressService = (*AddressServiceImpl)(nil)

// checkContactOwnership verifies that the contact exists and belongs to the
// user. Returns store.ErrContactNotFound otherwise.
func (s *AddressServiceImpl) checkContactOwnership(ctx context.Context, contacts store.ContactStore, username string, contactID int64) error {
	count, err := contacts.CountByID(ctx, username, contactID)
	if err != nil {
		return fmt.Errorf("failed to check contact ownership: %w", err)
	}
	if count != 1 {
		return store.ErrContactNotFound
	}
	return nil
}

// Create inserts an address under the contact.
func (s *AddressServiceImpl) Create(ctx context.Context, username string, contactID int64, input AddressInput) (*domain.Address, error) {
	address := &domain.Address{
		ContactID:  contactID,
		Street:     input.Street,
		City:       input.City,
		Province:   input.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkContactOwnership(ctx, s.contactStore.WithTx(tx), username, contactID); err != nil {
			return err
		}
		if err := s.validate.Struct(input); err != nil {
			return err
		}
		return s.addressStore.WithTx(tx).Create(ctx, address)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("contact not found for address create",
				"contact_id", contactID,
				"username", username)
		} else {
			s.logger.Error("failed to create address",
				"error", err,
				"contact_id", contactID)
		}
		return nil, err
	}

	return address, nil
}

// Get fetches one address under the contact.
func (s *AddressServiceImpl) Get(ctx context.Context, username string, contactID, addressID int64) (*domain.Address, error) {
	if err := s.checkContactOwnership(ctx, s.contactStore, username, contactID); err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("contact not found for address get",
				"contact_id", contactID,
				"username", username)
		}
		return nil, err
	}

	if addressID <= 0 {
		return nil, domain.NewValidationError("addressId", "must be a positive integer", domain.ErrInvalidID)
	}

	address, err := s.addressStore.GetByID(ctx, contactID, addressID)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("address not found",
				"address_id", addressID,
				"contact_id", contactID)
		} else {
			s.logger.Error("failed to retrieve address",
				"error", err,
				"address_id", addressID)
		}
		return nil, err
	}

	return address, nil
}

// Update replaces all fields of the address.
func (s *AddressServiceImpl) Update(ctx context.Context, username string, contactID, addressID int64, input AddressInput) (*domain.Address, error) {
	address := &domain.Address{
		ID:         addressID,
		ContactID:  contactID,
		Street:     input.Street,
		City:       input.City,
		Province:   input.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkContactOwnership(ctx, s.contactStore.WithTx(tx), username, contactID); err != nil {
			return err
		}
		if addressID <= 0 {
			return domain.NewValidationError("id", "must be a positive integer", domain.ErrInvalidID)
		}
		if err := s.validate.Struct(input); err != nil {
			return err
		}

		txAddresses := s.addressStore.WithTx(tx)
		count, err := txAddresses.CountByID(ctx, contactID, addressID)
		if err != nil {
			return fmt.Errorf("failed to check address existence: %w", err)
		}
		if count != 1 {
			return store.ErrAddressNotFound
		}

		return txAddresses.Update(ctx, address)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("address update target not found",
				"address_id", addressID,
				"contact_id", contactID,
				"username", username)
		} else {
			s.logger.Error("failed to update address",
				"error", err,
				"address_id", addressID)
		}
		return nil, err
	}

	s.logger.Info("address updated successfully",
		"address_id", addressID,
		"contact_id", contactID)
	return address, nil
}
