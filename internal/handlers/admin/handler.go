package admin

import (
	"booktable/infras/otel"
	bookingService "booktable/internal/domains/booking/service"
	"booktable/internal/domains/restaurant/model/dto"
	restaurantService "booktable/internal/domains/restaurant/service"
	"booktable/shared/constant"
	"booktable/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	restaurants restaurantService.Restaurant
	bookings    bookingService.Booking
	otel        otel.Otel
}

func New(restaurants restaurantService.Restaurant, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		restaurants: restaurants,
		bookings:    bookings,
		otel:        otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/restaurants", handler.Restaurants)
		r.Get("/pending", handler.Pending)
		r.Put("/approve/{id}", handler.Approve)
		r.Delete("/remove/{id}", handler.Remove)
		r.Get("/analytics", handler.Analytics)
	})
}

// Restaurants lists every restaurant, approved or not.
// @Summary All restaurants
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.RestaurantResponse
// @Router /api/admin/restaurants [get]
// @Security BearerAuth
func (handler *Handler) Restaurants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Restaurants")
	defer scope.End()

	res, err := handler.restaurants.ListAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list restaurants")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Pending lists restaurants awaiting approval.
// @Summary Pending restaurants
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.RestaurantResponse
// @Router /api/admin/pending [get]
// @Security BearerAuth
func (handler *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Pending")
	defer scope.End()

	res, err := handler.restaurants.ListPending(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list pending restaurants")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Approve marks a restaurant approved. Approving twice is harmless.
// @Summary Approve a restaurant
// @Tags Admin
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} dto.ApproveResponse
// @Failure 404 {object} response.Error
// @Router /api/admin/approve/{id} [put]
// @Security BearerAuth
func (handler *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Approve")
	defer scope.End()

	res, err := handler.restaurants.Approve(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve restaurant")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.ApproveResponse{Message: "Restaurant approved", Restaurant: res})
}

// Remove deletes any restaurant.
// @Summary Remove a restaurant
// @Tags Admin
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/admin/remove/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Remove")
	defer scope.End()

	if err := handler.restaurants.Remove(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove restaurant")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Restaurant deleted")
}

// Analytics summarizes bookings created in the last 30 days.
// @Summary Monthly analytics
// @Tags Admin
// @Produce json
// @Success 200 {object} bookingDto.AnalyticsResponse
// @Router /api/admin/analytics [get]
// @Security BearerAuth
func (handler *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Analytics")
	defer scope.End()

	res, err := handler.bookings.MonthlyAnalytics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build analytics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
