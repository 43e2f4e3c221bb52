package repository_test

import (
	"booktable/infras/otel/mocks"
	"booktable/infras/postgres"
	"booktable/internal/domains/user/model"
	"booktable/internal/domains/user/repository"
	gModel "booktable/shared/model"
	"booktable/shared/role"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (repository.User, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return repository.New(postgres.NewFromDB(sqlx.NewDb(db, "postgres")), mocks.NewOtel()), mock
}

func TestUserRepository_Insert(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (id, name, email, password, role, created_at, modified_at, created_by, modified_by) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
	)).
		WithArgs("u1", "Alice Johnson", "alice@example.com", "hash", role.Customer, now, now, "guest", "guest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), model.User{
		ID:       "u1",
		Name:     "Alice Johnson",
		Email:    "alice@example.com",
		Password: "hash",
		Role:     role.Customer,
		Metadata: gModel.NewMetadata("guest", now),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(`SELECT .+ FROM users\s+WHERE \(users\.email = \$1\)`).
		ExpectQuery().
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role"}).
			AddRow("u1", "Alice Johnson", "alice@example.com", "hash", "Customer"))

	user, err := repo.Get(context.Background(), repository.ByEmail("alice@example.com"))

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, role.Customer, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Exist(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users  WHERE (users.email = $1) )")).
		ExpectQuery().
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exist(context.Background(), repository.ByEmail("alice@example.com"))

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
