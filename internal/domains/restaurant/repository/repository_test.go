package repository_test

import (
	"booktable/infras/otel/mocks"
	"booktable/infras/postgres"
	"booktable/internal/domains/restaurant/model"
	"booktable/internal/domains/restaurant/repository"
	"booktable/shared"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectColumns = `"id", "name", "address", "cuisine", "cost", "contact", "city", "state", "zip_code", ` +
	`"available_tables", "booking_times", "photos", "approved", "manager_id", "reviews", ` +
	`"created_at", "modified_at", "created_by", "modified_by"`

func newRepo(t *testing.T) (repository.Restaurant, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return repository.New(postgres.NewFromDB(sqlx.NewDb(db, "postgres")), mocks.NewOtel()), mock
}

func TestRestaurantRepository_Search(t *testing.T) {
	tests := []struct {
		name      string
		criteria  repository.SearchCriteria
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "no filters",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + selectColumns + ` FROM "restaurants" ORDER BY "created_at" ASC, "id" ASC`)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "reviews"}).
						AddRow("r1", "The Italian Corner", []byte(`[]`)).
						AddRow("r2", "Bombay Spice", []byte(`[{"rating":5}]`)))
			},
			wantLen: 2,
		},
		{
			name:     "city and cuisine",
			criteria: repository.SearchCriteria{City: "New York", Cuisine: "Italian"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM "restaurants" WHERE (("city" = $1) AND ("cuisine" = $2)) ORDER BY`)).
					WithArgs("New York", "Italian").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "reviews"}).
						AddRow("r1", "The Italian Corner", []byte(`[]`)))
			},
			wantLen: 1,
		},
		{
			name:     "zip only",
			criteria: repository.SearchCriteria{ZipCode: "10001"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("zip_code" = $1)`)).
					WithArgs("10001").
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantLen: 0,
		},
		{
			name:     "query error",
			criteria: repository.SearchCriteria{State: "NY"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "restaurants"`).WillReturnError(errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setupMock(mock)

			got, err := repo.Search(context.Background(), tt.criteria)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, got, tt.wantLen)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRestaurantRepository_AppendReview(t *testing.T) {
	repo, mock := newRepo(t)
	at := time.Date(2025, 4, 11, 19, 0, 0, 0, time.UTC)
	review := model.Review{ID: "rv1", UserID: "u1", UserName: "Alice Johnson", Rating: 4, CreatedAt: at}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "restaurants" SET "modified_at"=$1,"modified_by"=$2,"reviews"="reviews" || $3::jsonb WHERE ("id" = $4)`)).
		WithArgs(at, "u1", sqlmock.AnyArg(), "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.AppendReview(context.Background(), "r1", review, "u1", at)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantRepository_Get(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(`FROM restaurants\s+WHERE \(restaurants\.id = \$1\)`).
		ExpectQuery().
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "booking_times", "reviews"}).
			AddRow("r1", "The Italian Corner", "{18:00,19:00}", []byte(`[{"rating":4},{"rating":5}]`)))

	got, err := repo.Get(context.Background(), shared.FilterByID("r1", model.FieldID, model.TableName))

	require.NoError(t, err)
	assert.Equal(t, []string{"18:00", "19:00"}, []string(got.BookingTimes))
	assert.Len(t, got.Reviews, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
