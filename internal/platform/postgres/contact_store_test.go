package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/platform/postgres"
	"github.com/phrazzld/rolodex-api/internal/store"
)

func contactRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "phone"})
}

func TestContactStoreCreate(t *testing.T) {
	db, mock := newStoreDB(t)
	s := postgres.NewPostgresContactStore(db, nil)

	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs("alice", "Bob", "Jones", "bob@example.com", "08123").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	contact := &domain.Contact{
		Username:  "alice",
		FirstName: "Bob",
		LastName:  "Jones",
		Email:     "bob@example.com",
		Phone:     "08123",
	}
	require.NoError(t, s.Create(context.Background(), contact))
	assert.Equal(t, int64(42), contact.ID, "generated id must be written back")
}

func TestContactStoreGetByID(t *testing.T) {
	t.Run("scans optional columns through COALESCE", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectQuery(`SELECT id, username, first_name`).
			WithArgs(int64(42), "alice").
			WillReturnRows(contactRows().AddRow(42, "alice", "Bob", "", "", ""))

		contact, err := s.GetByID(context.Background(), "alice", 42)
		require.NoError(t, err)

		assert.Equal(t, int64(42), contact.ID)
		assert.Empty(t, contact.LastName)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectQuery(`SELECT id, username, first_name`).
			WithArgs(int64(42), "alice").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), "alice", 42)
		assert.ErrorIs(t, err, store.ErrContactNotFound)
	})
}

func TestContactStoreCountByID(t *testing.T) {
	db, mock := newStoreDB(t)
	s := postgres.NewPostgresContactStore(db, nil)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts`).
		WithArgs(int64(42), "alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := s.CountByID(context.Background(), "alice", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestContactStoreUpdate(t *testing.T) {
	t.Run("scoped by id and owner", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectExec(`UPDATE contacts`).
			WithArgs(int64(42), "alice", "Robert", "", "", "").
			WillReturnResult(sqlmock.NewResult(0, 1))

		contact := &domain.Contact{ID: 42, Username: "alice", FirstName: "Robert"}
		require.NoError(t, s.Update(context.Background(), contact))
	})

	t.Run("zero affected rows maps to not found", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectExec(`UPDATE contacts`).
			WithArgs(int64(42), "alice", "Robert", "", "", "").
			WillReturnResult(sqlmock.NewResult(0, 0))

		contact := &domain.Contact{ID: 42, Username: "alice", FirstName: "Robert"}
		assert.ErrorIs(t, s.Update(context.Background(), contact), store.ErrContactNotFound)
	})
}

func TestContactStoreDelete(t *testing.T) {
	t.Run("removes the row", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectExec(`DELETE FROM contacts`).
			WithArgs(int64(42), "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(context.Background(), "alice", 42))
	})

	t.Run("someone else's contact reads as missing", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectExec(`DELETE FROM contacts`).
			WithArgs(int64(42), "alice").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), "alice", 42), store.ErrContactNotFound)
	})
}

func TestContactStoreList(t *testing.T) {
	t.Run("owner scope only", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`ORDER BY id`).
			WithArgs("alice", 10, 0).
			WillReturnRows(contactRows().
				AddRow(1, "alice", "Bob", "", "", "").
				AddRow(2, "alice", "Carol", "Smith", "carol@example.com", ""))

		contacts, total, err := s.List(context.Background(), store.ContactFilter{
			Username: "alice",
			Limit:    10,
			Offset:   0,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2), total)
		require.Len(t, contacts, 2)
		assert.Equal(t, "Bob", contacts[0].FirstName)
		assert.Equal(t, "carol@example.com", contacts[1].Email)
	})

	t.Run("name filter matches either name column", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectQuery(`first_name ILIKE \$2 OR last_name ILIKE \$2`).
			WithArgs("alice", "%bob%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`ORDER BY id`).
			WithArgs("alice", "%bob%", 10, 0).
			WillReturnRows(contactRows().AddRow(1, "alice", "Bob", "", "", ""))

		contacts, total, err := s.List(context.Background(), store.ContactFilter{
			Username: "alice",
			Name:     "bob",
			Limit:    10,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), total)
		assert.Len(t, contacts, 1)
	})

	t.Run("all filters combine", func(t *testing.T) {
		db, mock := newStoreDB(t)
		s := postgres.NewPostgresContactStore(db, nil)

		mock.ExpectQuery(`email ILIKE \$3 AND phone ILIKE \$4`).
			WithArgs("alice", "%bob%", "%@example.com%", "%0812%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`ORDER BY id`).
			WithArgs("alice", "%bob%", "%@example.com%", "%0812%", 5, 5).
			WillReturnRows(contactRows())

		contacts, total, err := s.List(context.Background(), store.ContactFilter{
			Username: "alice",
			Name:     "bob",
			Email:    "@example.com",
			Phone:    "0812",
			Limit:    5,
			Offset:   5,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(0), total)
		assert.Empty(t, contacts)
	})
}
