package restaurant

import (
	"booktable/infras/otel"
	bookingService "booktable/internal/domains/booking/service"
	"booktable/internal/domains/restaurant/model/dto"
	"booktable/internal/domains/restaurant/service"
	"booktable/shared/constant"
	"booktable/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Restaurant
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(service service.Restaurant, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/restaurant", func(r chi.Router) {
		r.Post("/add", handler.AddRestaurant)
		r.Put("/update/{id}", handler.UpdateRestaurant)
		r.Get("/bookings/{restaurantId}", handler.Bookings)
		r.Delete("/delete/{id}", handler.DeleteRestaurant)
		r.Get("/my-listings", handler.MyListings)
	})
}

// AddRestaurant creates an unapproved listing owned by the caller.
// @Summary Add a restaurant
// @Description Accepts JSON, or multipart/form-data with up to five image files under "photos".
// @Tags Restaurant
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} dto.EnvelopeResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/restaurant/add [post]
// @Security BearerAuth
func (handler *Handler) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddRestaurant")
	defer scope.End()

	req := dto.CreateRestaurantRequest{}

	uploads, release, err := decodeRequest(r, &req)
	defer release()

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode restaurant request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req, uploads)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create restaurant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Restaurant created " + res.ID)

	response.WithJSON(w, http.StatusCreated, dto.EnvelopeResponse{Restaurant: res})
}

// UpdateRestaurant overwrites the supplied fields.
// @Summary Update a restaurant
// @Tags Restaurant
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body dto.UpdateRestaurantRequest true "Fields to change"
// @Success 200 {object} dto.EnvelopeResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/restaurant/update/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRestaurant")
	defer scope.End()

	req := dto.UpdateRestaurantRequest{}

	uploads, release, err := decodeRequest(r, &req)
	defer release()

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode restaurant request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req, uploads)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update restaurant")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.EnvelopeResponse{Restaurant: res})
}

// Bookings lists a restaurant's bookings with customer contact details.
// @Summary Restaurant bookings
// @Tags Restaurant
// @Produce json
// @Param restaurantId path string true "Restaurant ID"
// @Success 200 {array} bookingDto.RestaurantBookingResponse
// @Failure 500 {object} response.Error
// @Router /api/restaurant/bookings/{restaurantId} [get]
// @Security BearerAuth
func (handler *Handler) Bookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Bookings")
	defer scope.End()

	res, err := handler.bookings.ListForRestaurant(ctx, chi.URLParam(r, constant.RequestParamRestaurantID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list restaurant bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteRestaurant removes a listing owned by the caller.
// @Summary Delete a restaurant
// @Tags Restaurant
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/restaurant/delete/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRestaurant")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete restaurant")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Restaurant deleted")
}

// MyListings lists the caller's restaurants.
// @Summary My listings
// @Tags Restaurant
// @Produce json
// @Success 200 {array} dto.RestaurantResponse
// @Router /api/restaurant/my-listings [get]
// @Security BearerAuth
func (handler *Handler) MyListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MyListings")
	defer scope.End()

	res, err := handler.service.ListByManager(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list restaurants")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
