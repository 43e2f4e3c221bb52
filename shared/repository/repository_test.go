package repository_test

import (
	"booktable/infras/otel/mocks"
	"booktable/infras/postgres"
	"booktable/shared"
	"booktable/shared/dto"
	"booktable/shared/model"
	"booktable/shared/repository"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

type widgetWithScratch struct {
	ID      string `db:"id"`
	Scratch string `db:"-"`
	Note    string
}

func newRepo(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := postgres.NewFromDB(sqlx.NewDb(db, "postgres"))

	return repository.NewRepository[widget]("widget", "widgets", "id", conn, mocks.NewOtel()), mock
}

func TestRepository_InsertColumns(t *testing.T) {
	repo, _ := newRepo(t)

	assert.Equal(t, []string{"id", "name", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)

	skipped := repository.NewRepository[widgetWithScratch]("widget", "widgets", "id", &postgres.Connection{}, mocks.NewOtel())
	assert.Equal(t, []string{"id"}, skipped.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO widgets (id, name, created_at, modified_at, created_by, modified_by) VALUES ($1, $2, $3, $4, $5, $6)",
	)).
		WithArgs("w1", "first", now, now, "u1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), widget{ID: "w1", Name: "first", Metadata: model.NewMetadata("u1", now)})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      widget
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(`SELECT widgets\.id, widgets\.name FROM widgets\s+WHERE \(widgets\.id = \$1\)`).
					ExpectQuery().
					WithArgs("w1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("w1", "first"))
			},
			want: widget{ID: "w1", Name: "first"},
		},
		{
			name: "no rows yields zero value",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(`FROM widgets`).
					ExpectQuery().
					WithArgs("w1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
			},
			want: widget{},
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(`FROM widgets`).
					ExpectQuery().
					WithArgs("w1").
					WillReturnError(errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setupMock(mock)

			got, err := repo.Get(context.Background(), shared.FilterByID("w1", "id", "widgets"), "id", "name")

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

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(`FROM widgets\s+ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		ExpectQuery().
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("w1", "a").AddRow("w2", "b"))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "DESC"}, dto.FilterGroup{}, "id", "name")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM widgets\s+WHERE \(widgets\.id = \$1\)`).
		WithArgs("w1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), shared.FilterByID("w1", "id", "widgets"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.Delete(context.Background(), dto.FilterGroup{})
	assert.ErrorIs(t, err, repository.ErrRequiredFilter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE widgets SET name = \$1\s+WHERE \(widgets\.id = \$2\)`).
		WithArgs("renamed", "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"name": "renamed"}, shared.FilterByID("w1", "id", "widgets"))
	require.NoError(t, err)

	err = repo.Update(context.Background(), map[string]any{"name": "x"}, dto.FilterGroup{})
	assert.ErrorIs(t, err, repository.ErrRequiredFilter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistAndCount(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	filter := shared.FilterByID("w1", "id", "widgets")

	mock.ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM widgets WHERE \(widgets\.id = \$1\)\)`).
		ExpectQuery().
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(ctx, filter)
	require.NoError(t, err)
	assert.True(t, exist)

	_, err = repo.Exist(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, repository.ErrRequiredFilter)

	mock.ExpectPrepare(`SELECT COUNT\(widgets\.id\) FROM widgets\s*$`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SelectAndExec(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "name" FROM "widgets" WHERE ("name" = $1)`)).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("w1", "a"))

	var rows []widget
	err := repo.Select(ctx, &rows, postgres.Dialect.From("widgets").Select("id", "name").Where(goqu.C("name").Eq("a")).Prepared(true))
	require.NoError(t, err)
	assert.Equal(t, []widget{{ID: "w1", Name: "a"}}, rows)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "widgets" SET "name"=$1 WHERE ("id" = $2)`)).
		WithArgs("b", "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Exec(ctx, postgres.Dialect.Update("widgets").Set(goqu.Record{"name": "b"}).Where(goqu.C("id").Eq("w1")).Prepared(true))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
