package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"booktable/config"
	"booktable/infras/otel"
	"booktable/internal/domains/booking/model"
	"booktable/internal/domains/booking/model/dto"
	"booktable/internal/domains/booking/repository"
	notificationModel "booktable/internal/domains/notification/model"
	"booktable/internal/domains/notification/publisher"
	restaurantModel "booktable/internal/domains/restaurant/model"
	restaurantRepo "booktable/internal/domains/restaurant/repository"
	"booktable/shared"
	"booktable/shared/cache"
	"booktable/shared/constant"
	"booktable/shared/failure"
	"booktable/shared/timezone"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const (
	msgBooked             = "Table booked successfully"
	msgBookingNotFound    = "Booking not found"
	msgRestaurantNotFound = "Restaurant not found"
	qrContentPrefix       = "booktable:booking:"
	cacheBookingQR        = "booking:qr"
)

type Booking interface {
	BookTable(ctx context.Context, req dto.BookTableRequest) (dto.BookTableResponse, error)
	Cancel(ctx context.Context, id string) error
	ListMine(ctx context.Context) ([]dto.MyBookingResponse, error)
	ListForRestaurant(ctx context.Context, restaurantID string) ([]dto.RestaurantBookingResponse, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
	MonthlyAnalytics(ctx context.Context) (dto.AnalyticsResponse, error)
}

type serviceImpl struct {
	repo           repository.Booking
	restaurantRepo restaurantRepo.Restaurant
	publisher      publisher.Publisher
	cache          cache.RedisCache
	cfg            *config.Config
	otel           otel.Otel
}

func New(repo repository.Booking, restaurantRepo restaurantRepo.Restaurant, publisher publisher.Publisher, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:           repo,
		restaurantRepo: restaurantRepo,
		publisher:      publisher,
		cache:          cache,
		cfg:            cfg,
		otel:           otel,
	}
}

// BookTable stores the booking without checking slot membership or capacity.
func (s *serviceImpl) BookTable(ctx context.Context, req dto.BookTableRequest) (res dto.BookTableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookTable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, ok := shared.IdentityFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("missing identity")
	}

	restaurant, err := s.restaurantRepo.Get(ctx,
		shared.FilterByID(req.RestaurantID, restaurantModel.FieldID, restaurantModel.TableName),
		restaurantModel.FieldID, restaurantModel.FieldName)
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", req.RestaurantID).Msg("failed to get restaurant")

		return res, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return res, failure.NotFound(msgRestaurantNotFound)
	}

	booking, err := req.ToModel(identity.UserID, timezone.Now())
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	event := notificationModel.BookingConfirmed{
		BookingID:      booking.ID,
		Email:          identity.Email,
		RestaurantName: restaurant.Name,
		Date:           req.Date,
		Time:           req.Time,
		NumPeople:      req.NumPeople,
	}

	go s.notify(context.WithoutCancel(ctx), event)

	res.Message = msgBooked
	res.Booking.FromModel(booking)

	return res, nil
}

// notify never reports back to the caller; the booking already exists.
func (s *serviceImpl) notify(ctx context.Context, event notificationModel.BookingConfirmed) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to publish booking confirmation")
	}
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, _ := shared.IdentityFromContext(ctx)

	affected, err := s.repo.Delete(ctx, repository.OwnedBy(id, identity.UserID))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(msgBookingNotFound)
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheBookingQR, id)); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to drop cached qr code")
	}

	return nil
}

func (s *serviceImpl) ListMine(ctx context.Context) (res []dto.MyBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, _ := shared.IdentityFromContext(ctx)

	bookings, err := s.repo.ListByUser(ctx, identity.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	res = make([]dto.MyBookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res, nil
}

// ListForRestaurant does not check who manages the restaurant.
func (s *serviceImpl) ListForRestaurant(ctx context.Context, restaurantID string) (res []dto.RestaurantBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForRestaurant")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to list restaurant bookings")

		return nil, fmt.Errorf("failed to list restaurant bookings: %w", err)
	}

	res = make([]dto.RestaurantBookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res, nil
}

func (s *serviceImpl) QRCode(ctx context.Context, id string) (png []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QRCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, _ := shared.IdentityFromContext(ctx)

	booking, err := s.repo.Get(ctx, repository.OwnedBy(id, identity.UserID), model.FieldID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return nil, failure.NotFound(msgBookingNotFound)
	}

	// ownership is checked above on every call, the cache only skips encoding
	key := shared.BuildCacheKey(cacheBookingQR, booking.ID)

	var cached string

	cacheErr := s.cache.Get(ctx, key, &cached)
	if cacheErr == nil {
		return []byte(cached), nil
	}

	if !errors.Is(cacheErr, cache.Nil) {
		log.Warn().Err(cacheErr).Str("booking_id", id).Msg("failed to read cached qr code")
	}

	png, err = qrcode.Encode(qrContentPrefix+booking.ID, qrcode.Medium, s.cfg.App.QRCodeSize)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to encode qr code")

		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	if err := s.cache.Save(ctx, key, string(png), s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to cache qr code")
	}

	return png, nil
}

func (s *serviceImpl) MonthlyAnalytics(ctx context.Context) (res dto.AnalyticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MonthlyAnalytics")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	since := timezone.Now().AddDate(0, 0, -constant.AnalyticsDays)

	bookings, err := s.repo.ListCreatedSince(ctx, since)
	if err != nil {
		log.Error().Err(err).Msg("failed to list recent bookings")

		return res, fmt.Errorf("failed to list recent bookings: %w", err)
	}

	totals, err := s.repo.CountByRestaurantSince(ctx, since)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate recent bookings")

		return res, fmt.Errorf("failed to aggregate recent bookings: %w", err)
	}

	res.FromModels(bookings, totals)
	scope.SetAttribute("total_bookings", res.TotalBookings)

	return res, nil
}

