package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"booktable/infras/otel"
	"booktable/infras/postgres"
	"booktable/internal/domains/booking/model"
	restaurantModel "booktable/internal/domains/restaurant/model"
	userModel "booktable/internal/domains/user/model"
	"booktable/shared/constant"
	gDto "booktable/shared/dto"
	gRepo "booktable/shared/repository"
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]model.WithRestaurant, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.WithCustomer, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]model.WithDetails, error)
	CountByRestaurant(ctx context.Context, from, to time.Time) ([]model.RestaurantCount, error)
	CountByRestaurantSince(ctx context.Context, since time.Time) ([]model.RestaurantTotal, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func col(table, column string) exp.IdentifierExpression {
	return goqu.T(table).Col(column)
}

func (r *repositoryImpl) bookingColumns(extra ...any) []any {
	cols := make([]any, 0, len(r.InsertColumns)+len(extra))
	for _, c := range r.InsertColumns {
		cols = append(cols, col(model.TableName, c))
	}

	return append(cols, extra...)
}

func joinRestaurant() (exp.IdentifierExpression, exp.JoinCondition) {
	return goqu.T(restaurantModel.TableName), goqu.On(
		col(restaurantModel.TableName, restaurantModel.FieldID).Eq(col(model.TableName, model.FieldRestaurantID)),
	)
}

func joinUser() (exp.IdentifierExpression, exp.JoinCondition) {
	return goqu.T(userModel.TableName), goqu.On(
		col(userModel.TableName, userModel.FieldID).Eq(col(model.TableName, model.FieldUserID)),
	)
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID string) (res []model.WithRestaurant, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ds := postgres.Dialect.
		From(model.TableName).
		LeftJoin(joinRestaurant()).
		Select(r.bookingColumns(
			col(restaurantModel.TableName, restaurantModel.FieldName).As("restaurant_name"),
			col(restaurantModel.TableName, restaurantModel.FieldAddress).As("restaurant_address"),
			col(restaurantModel.TableName, restaurantModel.FieldCity).As("restaurant_city"),
			col(restaurantModel.TableName, restaurantModel.FieldCuisine).As("restaurant_cuisine"),
			col(restaurantModel.TableName, restaurantModel.FieldPhotos).As("restaurant_photos"),
		)...).
		Where(col(model.TableName, model.FieldUserID).Eq(userID)).
		Order(col(model.TableName, constant.FieldCreatedAt).Desc()).
		Prepared(true)

	res = []model.WithRestaurant{}
	if err = r.Select(ctx, &res, ds); err != nil {
		return nil, fmt.Errorf("failed to list bookings by user: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) ListByRestaurant(ctx context.Context, restaurantID string) (res []model.WithCustomer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListByRestaurant")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ds := postgres.Dialect.
		From(model.TableName).
		LeftJoin(joinUser()).
		Select(r.bookingColumns(
			col(userModel.TableName, userModel.FieldName).As("customer_name"),
			col(userModel.TableName, userModel.FieldEmail).As("customer_email"),
		)...).
		Where(col(model.TableName, model.FieldRestaurantID).Eq(restaurantID)).
		Order(col(model.TableName, model.FieldBookingDate).Asc(), col(model.TableName, model.FieldBookingTime).Asc()).
		Prepared(true)

	res = []model.WithCustomer{}
	if err = r.Select(ctx, &res, ds); err != nil {
		return nil, fmt.Errorf("failed to list bookings by restaurant: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) ListCreatedSince(ctx context.Context, since time.Time) (res []model.WithDetails, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListCreatedSince")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ds := postgres.Dialect.
		From(model.TableName).
		LeftJoin(joinRestaurant()).
		LeftJoin(joinUser()).
		Select(r.bookingColumns(
			col(restaurantModel.TableName, restaurantModel.FieldName).As("restaurant_name"),
			col(userModel.TableName, userModel.FieldName).As("customer_name"),
			col(userModel.TableName, userModel.FieldEmail).As("customer_email"),
		)...).
		Where(col(model.TableName, constant.FieldCreatedAt).Gte(since)).
		Order(col(model.TableName, constant.FieldCreatedAt).Desc()).
		Prepared(true)

	res = []model.WithDetails{}
	if err = r.Select(ctx, &res, ds); err != nil {
		return nil, fmt.Errorf("failed to list recent bookings: %w", err)
	}

	return res, nil
}

// CountByRestaurant groups bookings whose date falls in [from, to).
func (r *repositoryImpl) CountByRestaurant(ctx context.Context, from, to time.Time) (res []model.RestaurantCount, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountByRestaurant")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ds := postgres.Dialect.
		From(model.TableName).
		Select(goqu.C(model.FieldRestaurantID), goqu.COUNT(goqu.Star()).As("count")).
		Where(
			goqu.C(model.FieldBookingDate).Gte(from),
			goqu.C(model.FieldBookingDate).Lt(to),
		).
		GroupBy(goqu.C(model.FieldRestaurantID)).
		Prepared(true)

	res = []model.RestaurantCount{}
	if err = r.Select(ctx, &res, ds); err != nil {
		return nil, fmt.Errorf("failed to count bookings by restaurant: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) CountByRestaurantSince(ctx context.Context, since time.Time) (res []model.RestaurantTotal, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountByRestaurantSince")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	restaurantID := col(model.TableName, model.FieldRestaurantID)
	restaurantName := col(restaurantModel.TableName, restaurantModel.FieldName)

	ds := postgres.Dialect.
		From(model.TableName).
		LeftJoin(joinRestaurant()).
		Select(restaurantID, restaurantName, goqu.COUNT(goqu.Star()).As("total")).
		Where(col(model.TableName, constant.FieldCreatedAt).Gte(since)).
		GroupBy(restaurantID, restaurantName).
		Order(goqu.C("total").Desc(), restaurantID.Asc()).
		Prepared(true)

	res = []model.RestaurantTotal{}
	if err = r.Select(ctx, &res, ds); err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings by restaurant: %w", err)
	}

	return res, nil
}

// OwnedBy matches a single booking only when it belongs to userID.
func OwnedBy(id, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
