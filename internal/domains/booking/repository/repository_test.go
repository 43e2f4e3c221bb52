package repository_test

import (
	"booktable/infras/otel/mocks"
	"booktable/infras/postgres"
	"booktable/internal/domains/booking/model"
	"booktable/internal/domains/booking/repository"
	gModel "booktable/shared/model"
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

func newRepo(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return repository.New(postgres.NewFromDB(sqlx.NewDb(db, "postgres")), mocks.NewOtel()), mock
}

func TestBookingRepository_Insert(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO bookings (id, user_id, restaurant_id, booking_date, booking_time, num_people, status, created_at, modified_at, created_by, modified_by)",
	)).
		WithArgs("b1", "u1", "r1", day, "19:00", 2, "Booked", now, now, "u1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), model.Booking{
		ID:           "b1",
		UserID:       "u1",
		RestaurantID: "r1",
		BookingDate:  day,
		BookingTime:  "19:00",
		NumPeople:    2,
		Status:       model.StatusBooked,
		Metadata:     gModel.NewMetadata("u1", now),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_DeleteOwned(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM bookings\s+WHERE \(bookings\.id = \$1 AND bookings\.user_id = \$2\)`).
		WithArgs("b1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), repository.OwnedBy("b1", "u2"))

	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByUser(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`LEFT JOIN "restaurants" ON ("restaurants"."id" = "bookings"."restaurant_id") WHERE ("bookings"."user_id" = $1) ORDER BY "bookings"."created_at" DESC`,
	)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "restaurant_id", "booking_time", "restaurant_name", "restaurant_photos"}).
			AddRow("b1", "u1", "r1", "19:00", "The Italian Corner", "{https://cdn/a.jpg}").
			AddRow("b2", "u1", "gone", "20:00", nil, nil))

	got, err := repo.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].RestaurantName)
	assert.Equal(t, "The Italian Corner", *got[0].RestaurantName)
	assert.Equal(t, []string{"https://cdn/a.jpg"}, []string(got[0].RestaurantPhotos))
	assert.Nil(t, got[1].RestaurantName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByRestaurant(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`"users"."name" AS "customer_name", "users"."email" AS "customer_email" FROM "bookings" LEFT JOIN "users" ON ("users"."id" = "bookings"."user_id") WHERE ("bookings"."restaurant_id" = $1)`,
	)).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_name", "customer_email"}).
			AddRow("b1", "Alice Johnson", "alice@example.com"))

	got, err := repo.ListByRestaurant(context.Background(), "r1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice@example.com", *got[0].CustomerEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CountByRestaurant(t *testing.T) {
	from := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      []model.RestaurantCount
		wantErr   bool
	}{
		{
			name: "grouped counts",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					`SELECT "restaurant_id", COUNT(*) AS "count" FROM "bookings" WHERE (("booking_date" >= $1) AND ("booking_date" < $2)) GROUP BY "restaurant_id"`,
				)).
					WithArgs(from, to).
					WillReturnRows(sqlmock.NewRows([]string{"restaurant_id", "count"}).AddRow("r1", 3).AddRow("r2", 1))
			},
			want: []model.RestaurantCount{{RestaurantID: "r1", Count: 3}, {RestaurantID: "r2", Count: 1}},
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "bookings"`).WillReturnError(errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setupMock(mock)

			got, err := repo.CountByRestaurant(context.Background(), from, to)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Analytics(t *testing.T) {
	repo, mock := newRepo(t)
	since := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`LEFT JOIN "restaurants" ON ("restaurants"."id" = "bookings"."restaurant_id") LEFT JOIN "users" ON ("users"."id" = "bookings"."user_id") WHERE ("bookings"."created_at" >= $1)`,
	)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_name", "customer_name", "customer_email"}).
			AddRow("b1", "Bombay Spice", "Bob Smith", "bob@example.com"))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT "bookings"."restaurant_id", "restaurants"."name", COUNT(*) AS "total" FROM "bookings" LEFT JOIN "restaurants"`,
	)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_id", "name", "total"}).AddRow("r2", "Bombay Spice", 1))

	details, err := repo.ListCreatedSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Bob Smith", *details[0].CustomerName)

	totals, err := repo.CountByRestaurantSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 1, totals[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
