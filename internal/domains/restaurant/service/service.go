package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Restaurant=MockRestaurantService

import (
	"booktable/config"
	"booktable/infras/otel"
	"booktable/infras/s3"
	bookingRepo "booktable/internal/domains/booking/repository"
	"booktable/internal/domains/restaurant/model"
	"booktable/internal/domains/restaurant/model/dto"
	"booktable/internal/domains/restaurant/repository"
	"booktable/shared"
	"booktable/shared/constant"
	gDto "booktable/shared/dto"
	"booktable/shared/failure"
	"booktable/shared/timezone"
	"context"
	"fmt"
	"path"
	"slices"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	msgRestaurantNotFound = "Restaurant not found"
	msgNotOwner           = "Unauthorized"
	msgTooManyPhotos      = "too many photos"
	msgPhotoTooLarge      = "photo exceeds the size limit"
	msgPhotoType          = "photos must be png, jpeg or webp images"
)

var photoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type Restaurant interface {
	Search(ctx context.Context, req dto.SearchRequest) ([]dto.SummaryResponse, error)
	Get(ctx context.Context, id string) (dto.RestaurantResponse, error)
	Create(ctx context.Context, req dto.CreateRestaurantRequest, uploads []s3.Object) (dto.RestaurantResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRestaurantRequest, uploads []s3.Object) (dto.RestaurantResponse, error)
	Delete(ctx context.Context, id string) error
	ListByManager(ctx context.Context) ([]dto.RestaurantResponse, error)
	ListAll(ctx context.Context) ([]dto.RestaurantResponse, error)
	ListPending(ctx context.Context) ([]dto.RestaurantResponse, error)
	Approve(ctx context.Context, id string) (dto.RestaurantResponse, error)
	Remove(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Restaurant
	bookingRepo bookingRepo.Booking
	storage     s3.S3
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Restaurant, bookingRepo bookingRepo.Booking, storage s3.S3, cfg *config.Config, otel otel.Otel) Restaurant {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		storage:     storage,
		cfg:         cfg,
		otel:        otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func listParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}
}

func (s *serviceImpl) Search(ctx context.Context, req dto.SearchRequest) (res []dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to, err := timezone.DayWindow(req.Date)
	if err != nil {
		return nil, failure.BadRequestFromString("date must be in YYYY-MM-DD format")
	}

	restaurants, err := s.repo.Search(ctx, repository.SearchCriteria{
		City:    req.City,
		State:   req.State,
		ZipCode: req.Zip,
		Cuisine: req.Cuisine,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to search restaurants")

		return nil, fmt.Errorf("failed to search restaurants: %w", err)
	}

	counts, err := s.bookingRepo.CountByRestaurant(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	timesBooked := make(map[string]int, len(counts))
	for _, c := range counts {
		timesBooked[c.RestaurantID] = c.Count
	}

	res = make([]dto.SummaryResponse, 0, len(restaurants))

	for _, restaurant := range restaurants {
		avg := model.AverageRating(restaurant.Reviews)

		if req.MinRating != nil && (avg == nil || *avg < *req.MinRating) {
			continue
		}

		var summary dto.SummaryResponse
		summary.FromModel(restaurant, avg, timesBooked[restaurant.ID])
		res = append(res, summary)
	}

	scope.SetAttribute("results", len(res))

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Restaurant, error) {
	restaurant, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", id).Msg("failed to get restaurant")

		return restaurant, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return restaurant, failure.NotFound(msgRestaurantNotFound)
	}

	return restaurant, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	restaurant, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(restaurant)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRestaurantRequest, uploads []s3.Object) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, ok := shared.IdentityFromContext(ctx)
	if !ok {
		return res, failure.Unauthorized("missing identity")
	}

	urls, err := s.upload(ctx, uploads)
	if err != nil {
		return res, err
	}

	restaurant := req.ToModel(identity.UserID, timezone.Now())
	restaurant.Photos = append(restaurant.Photos, urls...)

	if err = s.repo.Insert(ctx, restaurant); err != nil {
		log.Error().Err(err).Msg("failed to create restaurant")

		s.removePhotos(ctx, urls)

		return res, fmt.Errorf("failed to create restaurant: %w", err)
	}

	res.FromModel(restaurant)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRestaurantRequest, uploads []s3.Object) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, _ := shared.IdentityFromContext(ctx)

	restaurant, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if s.cfg.App.Policy.EnforceUpdateOwnership && restaurant.ManagerID != identity.UserID {
		return res, failure.Forbidden(msgNotOwner)
	}

	urls, err := s.upload(ctx, uploads)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, identity.UserID)

	if req.BookingTimes != nil {
		fields[model.FieldBookingTimes] = pq.StringArray(*req.BookingTimes)
	}

	if req.Photos != nil || len(urls) > 0 {
		photos := []string(restaurant.Photos)
		if req.Photos != nil {
			photos = *req.Photos
		}

		fields[model.FieldPhotos] = pq.StringArray(append(slices.Clone(photos), urls...))
	}

	if err = s.repo.Update(ctx, fields, byID(id)); err != nil {
		log.Error().Err(err).Str("restaurant_id", id).Msg("failed to update restaurant")

		s.removePhotos(ctx, urls)

		return res, fmt.Errorf("failed to update restaurant: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, _ := shared.IdentityFromContext(ctx)

	restaurant, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if restaurant.ManagerID != identity.UserID {
		log.Warn().Str("restaurant_id", id).Str("user_id", identity.UserID).Msg("delete attempt by non-owner")

		return failure.Forbidden(msgNotOwner)
	}

	return s.delete(ctx, restaurant)
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	restaurant, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	return s.delete(ctx, restaurant)
}

// delete leaves the restaurant's bookings in place.
func (s *serviceImpl) delete(ctx context.Context, restaurant model.Restaurant) error {
	affected, err := s.repo.Delete(ctx, byID(restaurant.ID))
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", restaurant.ID).Msg("failed to delete restaurant")

		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(msgRestaurantNotFound)
	}

	go s.removePhotos(context.WithoutCancel(ctx), restaurant.Photos)

	return nil
}

func (s *serviceImpl) ListByManager(ctx context.Context) (res []dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByManager")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, _ := shared.IdentityFromContext(ctx)

	return s.list(ctx, shared.FilterByID(identity.UserID, model.FieldManagerID, model.TableName))
}

func (s *serviceImpl) ListAll(ctx context.Context) (res []dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, gDto.FilterGroup{})
}

func (s *serviceImpl) ListPending(ctx context.Context) (res []dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldApproved, Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
}

func (s *serviceImpl) list(ctx context.Context, filter gDto.FilterGroup) ([]dto.RestaurantResponse, error) {
	restaurants, err := s.repo.GetAll(ctx, listParams(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list restaurants")

		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return dto.FromModels(restaurants), nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identity, _ := shared.IdentityFromContext(ctx)

	restaurant, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !restaurant.Approved {
		fields := map[string]any{
			model.FieldApproved:      true,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: identity.UserID,
		}

		if err = s.repo.Update(ctx, fields, byID(id)); err != nil {
			log.Error().Err(err).Str("restaurant_id", id).Msg("failed to approve restaurant")

			return res, fmt.Errorf("failed to approve restaurant: %w", err)
		}

		restaurant.Approved = true
	}

	res.FromModel(restaurant)

	return res, nil
}

func (s *serviceImpl) upload(ctx context.Context, uploads []s3.Object) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	limits := s.cfg.App.Upload

	if len(uploads) > limits.MaxPhotos {
		return nil, failure.BadRequestFromString(fmt.Sprintf("%s: at most %d allowed", msgTooManyPhotos, limits.MaxPhotos))
	}

	maxBytes := int64(limits.MaxPhotoSizeMB) * constant.BytesPerMegabyte

	for _, upload := range uploads {
		if upload.Size > maxBytes {
			return nil, failure.BadRequestFromString(fmt.Sprintf("%s of %d MB", msgPhotoTooLarge, limits.MaxPhotoSizeMB))
		}

		if _, ok := photoExtensions[upload.ContentType]; !ok {
			return nil, failure.BadRequestFromString(msgPhotoType)
		}
	}

	urls := make([]string, 0, len(uploads))

	for _, upload := range uploads {
		upload.Name = uuid.NewString() + photoExtensions[upload.ContentType]

		url, err := s.storage.Upload(ctx, limits.Directory, upload)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload photo")

			s.removePhotos(ctx, urls)

			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}

		urls = append(urls, url)
	}

	return urls, nil
}

// removePhotos deletes objects this bucket owns and ignores foreign URLs.
func (s *serviceImpl) removePhotos(ctx context.Context, urls []string) {
	for _, url := range urls {
		key, ok := s.storage.ObjectKeyFromURL(url)
		if !ok || path.Dir(key) != s.cfg.App.Upload.Directory {
			continue
		}

		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("object_key", key).Msg("failed to delete photo")
		}
	}
}
