package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// PostgresContactStore implements the store.ContactStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContactStore creates a new PostgreSQL implementation of the
// ContactStore interface.
func NewPostgresContactStore(db store.DBTX, log *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresContactStore{
		db:     db,
		logger: log.With(slog.String("component", "contact_store")),
	}
}

// Ensure PostgresContactStore implements store.ContactStore.
var _ store.ContactStore = (*PostgresContactStore)(nil)

// Create implements store.ContactStore.Create.
// Optional fields are stored as NULL when empty.
func (s *PostgresContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := contact.Validate(); err != nil {
		log.Warn("contact validation failed during create",
			slog.String("error", err.Error()),
			slog.String("username", contact.Username))
		return err
	}

	query := `
		INSERT INTO contacts (username, first_name, last_name, email, phone)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		contact.Username,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
	).Scan(&contact.ID)
	if err != nil {
		log.Error("failed to create contact",
			slog.String("error", err.Error()),
			slog.String("username", contact.Username))
		return err
	}

	log.Info("contact created successfully",
		slog.Int64("contact_id", contact.ID),
		slog.String("username", contact.Username))
	return nil
}

// GetByID implements store.ContactStore.GetByID.
func (s *PostgresContactStore) GetByID(ctx context.Context, username string, id int64) (*domain.Contact, error) {
	query := `
		SELECT id, username, first_name,
		       COALESCE(last_name, ''), COALESCE(email, ''), COALESCE(phone, '')
		FROM contacts
		WHERE id = $1 AND username = $2
	`
	var contact domain.Contact
	err := s.db.QueryRowContext(ctx, query, id, username).Scan(
		&contact.ID,
		&contact.Username,
		&contact.FirstName,
		&contact.LastName,
		&contact.Email,
		&contact.Phone,
	)
	if err != nil {
		return nil, mapNoRows(err, store.ErrContactNotFound)
	}
	return &contact, nil
}

// CountByID implements store.ContactStore.CountByID.
func (s *PostgresContactStore) CountByID(ctx context.Context, username string, id int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts WHERE id = $1 AND username = $2`,
		id, username,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

// Update implements store.ContactStore.Update. All mutable columns are
// replaced unconditionally (full replace, not a partial patch).
func (s *PostgresContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := contact.Validate(); err != nil {
		log.Warn("contact validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", contact.ID))
		return err
	}

	query := `
		UPDATE contacts
		SET first_name = $3,
		    last_name  = NULLIF($4, ''),
		    email      = NULLIF($5, ''),
		    phone      = NULLIF($6, '')
		WHERE id = $1 AND username = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		contact.ID,
		contact.Username,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
	)
	if err != nil {
		log.Error("failed to update contact",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", contact.ID))
		return err
	}

	return checkRowsAffected(result, store.ErrContactNotFound)
}

// Delete implements store.ContactStore.Delete. Address rows are removed by
// the ON DELETE CASCADE constraint.
func (s *PostgresContactStore) Delete(ctx context.Context, username string, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND username = $2`,
		id, username,
	)
	if err != nil {
		log.Error("failed to delete contact",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", id))
		return err
	}

	if err := checkRowsAffected(result, store.ErrContactNotFound); err != nil {
		return err
	}

	log.Info("contact deleted successfully",
		slog.Int64("contact_id", id),
		slog.String("username", username))
	return nil
}

// List implements store.ContactStore.List. It runs the count and the page
// query against the same WHERE clause and orders by id for deterministic
// pagination.
func (s *PostgresContactStore) List(ctx context.Context, filter store.ContactFilter) ([]domain.Contact, int64, error) {
	where, args := buildContactWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM contacts ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, username, first_name,
		       COALESCE(last_name, ''), COALESCE(email, ''), COALESCE(phone, '')
		FROM contacts
		%s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contacts := make([]domain.Contact, 0, filter.Limit)
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.Username,
			&contact.FirstName,
			&contact.LastName,
			&contact.Email,
			&contact.Phone,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate contact rows: %w", err)
	}

	return contacts, total, nil
}

// WithTx implements store.ContactStore.WithTx.
func (s *PostgresContactStore) WithTx(tx *sql.Tx) store.ContactStore {
	return &PostgresContactStore{
		db:     tx,
		logger: s.logger,
	}
}

// buildContactWhere assembles the WHERE clause for List. The username scope
// is always present; name matches either name column case-insensitively and
// the remaining filters are AND-combined substring matches.
func buildContactWhere(filter store.ContactFilter) (string, []any) {
	clauses := []string{"username = $1"}
	args := []any{filter.Username}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		n := len(args)
		clauses = append(clauses,
			fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		clauses = append(clauses, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if filter.Phone != "" {
		args = append(args, "%"+filter.Phone+"%")
		clauses = append(clauses, fmt.Sprintf("phone ILIKE $%d", len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}
