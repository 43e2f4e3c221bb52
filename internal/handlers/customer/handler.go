package customer

import (
	"booktable/infras/otel"
	bookingDto "booktable/internal/domains/booking/model/dto"
	bookingService "booktable/internal/domains/booking/service"
	restaurantDto "booktable/internal/domains/restaurant/model/dto"
	restaurantService "booktable/internal/domains/restaurant/service"
	reviewDto "booktable/internal/domains/review/model/dto"
	reviewService "booktable/internal/domains/review/service"
	"booktable/shared/constant"
	"booktable/shared/validator"
	"booktable/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	restaurants restaurantService.Restaurant
	bookings    bookingService.Booking
	reviews     reviewService.Review
	otel        otel.Otel
}

func New(restaurants restaurantService.Restaurant, bookings bookingService.Booking, reviews reviewService.Review, otel otel.Otel) Handler {
	return Handler{
		restaurants: restaurants,
		bookings:    bookings,
		reviews:     reviews,
		otel:        otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/customer", func(r chi.Router) {
		r.Get("/search", handler.Search)
		r.Post("/book", handler.BookTable)
		r.Delete("/cancel/{id}", handler.CancelBooking)
		r.Get("/my-bookings", handler.MyBookings)
		r.Get("/booking/{id}/qr", handler.BookingQRCode)
		r.Get("/get-restaurant/{id}", handler.GetRestaurant)
		r.Post("/review/{restaurantId}", handler.AddReview)
	})
}

// Search finds restaurants by exact location and cuisine.
// @Summary Search restaurants
// @Tags Customer
// @Produce json
// @Param city query string false "City"
// @Param state query string false "State"
// @Param zip query string false "Zip code"
// @Param cuisine query string false "Cuisine"
// @Param minRating query number false "Minimum average rating"
// @Param date query string false "Day used for timesBookedToday (YYYY-MM-DD)"
// @Success 200 {array} restaurantDto.SummaryResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/customer/search [get]
// @Security BearerAuth
func (handler *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Search")
	defer scope.End()

	req := restaurantDto.SearchRequest{}
	if err := req.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.restaurants.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search restaurants")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// BookTable reserves a table.
// @Summary Book a table
// @Tags Customer
// @Accept json
// @Produce json
// @Param request body bookingDto.BookTableRequest true "Booking"
// @Success 201 {object} bookingDto.BookTableResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/customer/book [post]
// @Security BearerAuth
func (handler *Handler) BookTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookTable")
	defer scope.End()

	req := bookingDto.BookTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.bookings.BookTable(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table booked " + res.Booking.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// CancelBooking deletes one of the caller's bookings.
// @Summary Cancel a booking
// @Tags Customer
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/customer/cancel/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	if err := handler.bookings.Cancel(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking cancelled")
}

// MyBookings lists the caller's bookings with restaurant details.
// @Summary List my bookings
// @Tags Customer
// @Produce json
// @Success 200 {array} bookingDto.MyBookingResponse
// @Failure 500 {object} response.Error
// @Router /api/customer/my-bookings [get]
// @Security BearerAuth
func (handler *Handler) MyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MyBookings")
	defer scope.End()

	res, err := handler.bookings.ListMine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// BookingQRCode renders a check-in QR code for one of the caller's bookings.
// @Summary Booking QR code
// @Tags Customer
// @Produce png
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Error
// @Router /api/customer/booking/{id}/qr [get]
// @Security BearerAuth
func (handler *Handler) BookingQRCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookingQRCode")
	defer scope.End()

	png, err := handler.bookings.QRCode(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render booking qr code")

		response.WithError(w, err)

		return
	}

	response.WithPNG(w, png)
}

// GetRestaurant returns one restaurant with its average rating.
// @Summary Get restaurant
// @Tags Customer
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} restaurantDto.RestaurantResponse
// @Failure 404 {object} response.Error
// @Router /api/customer/get-restaurant/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRestaurant")
	defer scope.End()

	res, err := handler.restaurants.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get restaurant")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddReview rates a restaurant from 1 to 5.
// @Summary Review a restaurant
// @Tags Customer
// @Accept json
// @Produce json
// @Param restaurantId path string true "Restaurant ID"
// @Param request body reviewDto.AddReviewRequest true "Review"
// @Success 201 {object} restaurantDto.RestaurantResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/customer/review/{restaurantId} [post]
// @Security BearerAuth
func (handler *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddReview")
	defer scope.End()

	req := reviewDto.AddReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.reviews.AddReview(ctx, chi.URLParam(r, constant.RequestParamRestaurantID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add review")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
