package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"booktable/infras/otel"
	restaurantModel "booktable/internal/domains/restaurant/model"
	restaurantDto "booktable/internal/domains/restaurant/model/dto"
	restaurantRepo "booktable/internal/domains/restaurant/repository"
	"booktable/internal/domains/review/model/dto"
	userModel "booktable/internal/domains/user/model"
	userRepo "booktable/internal/domains/user/repository"
	"booktable/shared"
	"booktable/shared/constant"
	"booktable/shared/failure"
	"booktable/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Review interface {
	AddReview(ctx context.Context, restaurantID string, req dto.AddReviewRequest) (restaurantDto.RestaurantResponse, error)
}

type serviceImpl struct {
	restaurantRepo restaurantRepo.Restaurant
	userRepo       userRepo.User
	otel           otel.Otel
}

func New(restaurantRepo restaurantRepo.Restaurant, userRepo userRepo.User, otel otel.Otel) Review {
	return &serviceImpl{
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		otel:           otel,
	}
}

// AddReview appends without checking for earlier reviews or bookings by the same customer.
func (s *serviceImpl) AddReview(ctx context.Context, restaurantID string, req dto.AddReviewRequest) (res restaurantDto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Rating < dto.MinRating || req.Rating > dto.MaxRating {
		return res, failure.BadRequestFromString(fmt.Sprintf("rating must be between %d and %d", dto.MinRating, dto.MaxRating))
	}

	identity, ok := shared.IdentityFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("missing identity")
	}

	author, err := s.userRepo.Get(ctx,
		shared.FilterByID(identity.UserID, userModel.FieldID, userModel.TableName),
		userModel.FieldID, userModel.FieldName)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("failed to get review author")

		return res, fmt.Errorf("failed to get review author: %w", err)
	}

	now := timezone.Now()
	review := req.ToModel(identity.UserID, author.Name, now)

	affected, err := s.restaurantRepo.AppendReview(ctx, restaurantID, review, identity.UserID, now)
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to add review")

		return res, fmt.Errorf("failed to add review: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound("Restaurant not found")
	}

	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to reload restaurant")

		return res, fmt.Errorf("failed to reload restaurant: %w", err)
	}

	res.FromModel(restaurant)

	return res, nil
}
