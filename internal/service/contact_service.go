package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// DefaultPageSize is the page size used when a search does not specify one.
const DefaultPageSize = 10

// ContactInput carries the mutable fields of a contact.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// SearchQuery describes a contact search. Empty filter fields are ignored.
type SearchQuery struct {
	Name  string
	Email string
	Phone string
	Page  int
	Size  int
}

// Paging describes the position of a result page within the full result set.
type Paging struct {
	Page      int
	TotalPage int64
	TotalItem int64
}

// ContactService provides contact CRUD and search, always scoped to the
// authenticated user's username.
type ContactService interface {
	// Create inserts a contact owned by username.
	Create(ctx context.Context, username string, input ContactInput) (*domain.Contact, error)

	// Get fetches one contact. Returns store.ErrContactNotFound if the
	// contact does not exist or belongs to someone else.
	Get(ctx context.Context, username string, id int64) (*domain.Contact, error)

	// Update re-checks ownership and then replaces all mutable fields.
	Update(ctx context.Context, username string, id int64, input ContactInput) (*domain.Contact, error)

	// Delete re-checks ownership and then removes the contact; its
	// addresses are removed by the database cascade.
	Delete(ctx context.Context, username string, id int64) error

	// Search returns one page of the user's contacts matching the query.
	Search(ctx context.Context, username string, query SearchQuery) ([]domain.Contact, Paging, error)
}

// ContactServiceImpl implements the ContactService interface.
type ContactServiceImpl struct {
	contactStore store.ContactStore
	db           *sql.DB
	logger       *slog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(contactStore store.ContactStore, db *sql.DB, logger *slog.Logger) *ContactServiceImpl {
	return &ContactServiceImpl{
		contactStore: contactStore,
		db:           db,
		logger:       logger.With("component", "contact_service"),
	}
}

// Ensure ContactServiceImpl implements ContactService.
var _ ContactService = (*ContactServiceImpl)(nil)

// Create inserts a contact owned by username.
func (s *ContactServiceImpl) Create(ctx context.Context, username string, input ContactInput) (*domain.Contact, error) {
	contact := &domain.Contact{
		Username:  username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	if err := s.contactStore.Create(ctx, contact); err != nil {
		s.logger.Error("failed to create contact",
			"error", err,
			"username", username)
		return nil, err
	}

	return contact, nil
}

// Get fetches one contact scoped to the owner.
func (s *ContactServiceImpl) Get(ctx context.Context, username string, id int64) (*domain.Contact, error) {
	contact, err := s.contactStore.GetByID(ctx, username, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("contact not found",
				"contact_id", id,
				"username", username)
		} else {
			s.logger.Error("failed to retrieve contact",
				"error", err,
				"contact_id", id)
		}
		return nil, err
	}
	return contact, nil
}

// Update re-checks ownership inside a transaction, then replaces all mutable
// fields unconditionally.
func (s *ContactServiceImpl) Update(ctx context.Context, username string, id int64, input ContactInput) (*domain.Contact, error) {
	contact := &domain.Contact{
		ID:        id,
		Username:  username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.contactStore.WithTx(tx)

		count, err := txStore.CountByID(ctx, username, id)
		if err != nil {
			return fmt.Errorf("failed to check contact ownership: %w", err)
		}
		if count != 1 {
			return store.ErrContactNotFound
		}

		return txStore.Update(ctx, contact)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("contact not found for update",
				"contact_id", id,
				"username", username)
		} else {
			s.logger.Error("failed to update contact",
				"error", err,
				"contact_id", id)
		}
		return nil, err
	}

	s.logger.Info("contact updated successfully",
		"contact_id", id,
		"username", username)
	return contact, nil
}

// Delete re-checks ownership inside a transaction, then removes the contact.
func (s *ContactServiceImpl) Delete(ctx context.Context, username string, id int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.contactStore.WithTx(tx)

		count, err := txStore.CountByID(ctx, username, id)
		if err != nil {
			return fmt.Errorf("failed to check contact ownership: %w", err)
		}
		if count != 1 {
			return store.ErrContactNotFound
		}

		return txStore.Delete(ctx, username, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("contact not found for delete",
				"contact_id", id,
				"username", username)
		} else {
			s.logger.Error("failed to delete contact",
				"error", err,
				"contact_id", id)
		}
		return err
	}

	return nil
}

// Search returns one page of the user's contacts matching the query.
func (s *ContactServiceImpl) Search(ctx context.Context, username string, query SearchQuery) ([]domain.Contact, Paging, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.Size
	if size < 1 {
		size = DefaultPageSize
	}

	filter := store.ContactFilter{
		Username: username,
		Name:     query.Name,
		Email:    query.Email,
		Phone:    query.Phone,
		Offset:   (page - 1) * size,
		Limit:    size,
	}

	contacts, total, err := s.contactStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to search contacts",
			"error", err,
			"username", username)
		return nil, Paging{}, err
	}

	paging := Paging{
		Page:      page,
		TotalPage: (total + int64(size) - 1) / int64(size),
		TotalItem: total,
	}

	return contacts, paging, nil
}
