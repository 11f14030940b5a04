package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestCreateAndFindUser(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	now := time.Now()
	ctx := context.Background()

	cols := []string{"id", "name", "email", "password_hash", "role", "phone", "created_at"}

	// Create
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Alice", "a@example.com", "hash", "customer", "+15550001").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Alice", "a@example.com", "hash", "customer", "+15550001", now))

	u, err := repo.Create(ctx, "Alice", "a@example.com", "hash", "customer", "+15550001")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)

	// FindByEmail
	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, phone, created_at`).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Alice", "a@example.com", "hash", "customer", "+15550001", now))

	fu, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", fu.Name)

	// EmailExists true
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.EmailExists(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, phone, created_at`).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, phone, created_at`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)
}
