package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"booktable/infras/otel"
	"booktable/infras/postgres"
	"booktable/internal/domains/restaurant/model"
	"booktable/shared/constant"
	gDto "booktable/shared/dto"
	gRepo "booktable/shared/repository"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
)

// SearchCriteria holds exact-match filters. Empty fields are unconstrained.
type SearchCriteria struct {
	City    string
	State   string
	ZipCode string
	Cuisine string
}

type Restaurant interface {
	Insert(ctx context.Context, model model.Restaurant) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Restaurant, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Restaurant, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]model.Restaurant, error)
	AppendReview(ctx context.Context, id string, review model.Review, actor string, at time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Restaurant]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Restaurant {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Restaurant](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) columns() []any {
	cols := make([]any, 0, len(r.InsertColumns))
	for _, col := range r.InsertColumns {
		cols = append(cols, col)
	}

	return cols
}

func (r *repositoryImpl) Search(ctx context.Context, criteria SearchCriteria) (res []model.Restaurant, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where := goqu.Ex{}

	for field, value := range map[string]string{
		model.FieldCity:    criteria.City,
		model.FieldState:   criteria.State,
		model.FieldZipCode: criteria.ZipCode,
		model.FieldCuisine: criteria.Cuisine,
	} {
		if value != constant.Empty {
			where[field] = value
		}
	}

	ds := postgres.Dialect.
		From(model.TableName).
		Select(r.columns()...).
		Order(goqu.C(constant.FieldCreatedAt).Asc(), goqu.C(model.FieldID).Asc()).
		Prepared(true)

	if len(where) > 0 {
		ds = ds.Where(where)
	}

	res = []model.Restaurant{}
	if err = r.Select(ctx, &res, ds); err != nil {
		return nil, fmt.Errorf("failed to search restaurants: %w", err)
	}

	return res, nil
}

// AppendReview concatenates one review onto the JSONB array in a single statement.
func (r *repositoryImpl) AppendReview(ctx context.Context, id string, review model.Review, actor string, at time.Time) (affected int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.AppendReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := json.Marshal([]model.Review{review})
	if err != nil {
		return 0, fmt.Errorf("failed to encode review: %w", err)
	}

	ds := postgres.Dialect.
		Update(model.TableName).
		Set(goqu.Record{
			model.FieldReviews:       goqu.L("? || ?::jsonb", goqu.C(model.FieldReviews), string(raw)),
			constant.FieldModifiedAt: at,
			constant.FieldModifiedBy: actor,
		}).
		Where(goqu.C(model.FieldID).Eq(id)).
		Prepared(true)

	affected, err = r.Exec(ctx, ds)
	if err != nil {
		return 0, fmt.Errorf("failed to append review: %w", err)
	}

	return affected, nil
}
