package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// PostgresAddressStore implements the store.AddressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAddressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAddressStore creates a new PostgreSQL implementation of the
// AddressStore interface.
func NewPostgresAddressStore(db store.DBTX, log *slog.Logger) *PostgresAddressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresAddressStore{
		db:     db,
		logger: log.With(slog.String("component", "address_store")),
	}
}

// Ensure PostgresAddressStore implements store.AddressStore.
var _ store.AddressStore = (*PostgresAddressStore)(nil)

// Create implements store.AddressStore.Create.
func (s *PostgresAddressStore) Create(ctx context.Context, address *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := address.Validate(); err != nil {
		log.Warn("address validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", address.ContactID))
		return err
	}

	query := `
		INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		address.ContactID,
		address.Street,
		address.City,
		address.Province,
		address.Country,
		address.PostalCode,
	).Scan(&address.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during address creation",
				slog.Int64("contact_id", address.ContactID))
			return store.ErrContactNotFound
		}
		log.Error("failed to create address",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", address.ContactID))
		return err
	}

	log.Info("address created successfully",
		slog.Int64("address_id", address.ID),
		slog.Int64("contact_id", address.ContactID))
	return nil
}

// GetByID implements store.AddressStore.GetByID.
func (s *PostgresAddressStore) GetByID(ctx context.Context, contactID, id int64) (*domain.Address, error) {
	query := `
		SELECT id, contact_id,
		       COALESCE(street, ''), COALESCE(city, ''), COALESCE(province, ''),
		       country, postal_code
		FROM addresses
		WHERE id = $1 AND contact_id = $2
	`
	var address domain.Address
	err := s.db.QueryRowContext(ctx, query, id, contactID).Scan(
		&address.ID,
		&address.ContactID,
		&address.Street,
		&address.City,
		&address.Province,
		&address.Country,
		&address.PostalCode,
	)
	if err != nil {
		return nil, mapNoRows(err, store.ErrAddressNotFound)
	}
	return &address, nil
}

// CountByID implements store.AddressStore.CountByID.
func (s *PostgresAddressStore) CountByID(ctx context.Context, contactID, id int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM addresses WHERE id = $1 AND contact_id = $2`,
		id, contactID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}
	return count, nil
}

// Update implements store.AddressStore.Update. All columns are replaced
// unconditionally.
func (s *PostgresAddressStore) Update(ctx context.Context, address *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := address.Validate(); err != nil {
		log.Warn("address validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("address_id", address.ID))
		return err
	}

	query := `
		UPDATE addresses
		SET street      = NULLIF($3, ''),
		    city        = NULLIF($4, ''),
		    province    = NULLIF($5, ''),
		    country     = $6,
		    postal_code = $7
		WHERE id = $1 AND contact_id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		address.ID,
		address.ContactID,
		address.Street,
		address.City,
		address.Province,
		address.Country,
		address.PostalCode,
	)
	if err != nil {
		log.Error("failed to update address",
			slog.String("error", err.Error()),
			slog.Int64("address_id", address.ID))
		return err
	}

	return checkRowsAffected(result, store.ErrAddressNotFound)
}

// WithTx implements store.AddressStore.WithTx.
func (s *PostgresAddressStore) WithTx(tx *sql.Tx) store.AddressStore {
	return &PostgresAddressStore{
		db:     tx,
		logger: s.logger,
	}
}
