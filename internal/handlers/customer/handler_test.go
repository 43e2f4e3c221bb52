package customer_test

import (
	"booktable/infras/otel/mocks"
	bookingMocks "booktable/internal/domains/booking/mocks"
	bookingDto "booktable/internal/domains/booking/model/dto"
	restaurantMocks "booktable/internal/domains/restaurant/mocks"
	restaurantDto "booktable/internal/domains/restaurant/model/dto"
	reviewMocks "booktable/internal/domains/review/mocks"
	reviewDto "booktable/internal/domains/review/model/dto"
	"booktable/internal/handlers/customer"
	"booktable/shared/failure"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	restaurants *restaurantMocks.MockRestaurantService
	bookings    *bookingMocks.MockBookingService
	reviews     *reviewMocks.MockReview
	router      http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		restaurants: restaurantMocks.NewMockRestaurantService(ctrl),
		bookings:    bookingMocks.NewMockBookingService(ctrl),
		reviews:     reviewMocks.NewMockReview(ctrl),
	}

	handler := customer.New(f.restaurants, f.bookings, f.reviews, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)
	f.router = router

	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Search(t *testing.T) {
	f := newFixture(t)

	f.restaurants.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req restaurantDto.SearchRequest) ([]restaurantDto.SummaryResponse, error) {
			assert.Equal(t, "Austin", req.City)
			assert.Equal(t, "78701", req.Zip)
			require.NotNil(t, req.MinRating)
			assert.InDelta(t, 4.0, *req.MinRating, 1e-9)

			return []restaurantDto.SummaryResponse{{ID: "r1", TimesBookedToday: 2}}, nil
		})

	rec := f.do(http.MethodGet, "/customer/search?city=Austin&zip=78701&minRating=4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "r1", body[0]["id"])
	assert.EqualValues(t, 2, body[0]["timesBookedToday"])
	assert.Nil(t, body[0]["avgRating"])
}

func TestHandler_Search_BadQuery(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/customer/search?minRating=high", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/customer/search?date=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_BookTable(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "created",
			body: `{"restaurantId":"r1","date":"2025-03-01","time":"19:00","numPeople":2}`,
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().BookTable(gomock.Any(), bookingDto.BookTableRequest{
					RestaurantID: "r1", Date: "2025-03-01", Time: "19:00", NumPeople: 2,
				}).Return(bookingDto.BookTableResponse{Message: "Table booked successfully"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "zero people rejected before the service",
			body:     `{"restaurantId":"r1","date":"2025-03-01","time":"19:00","numPeople":0}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed time",
			body:     `{"restaurantId":"r1","date":"2025-03-01","time":"7pm","numPeople":2}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown restaurant",
			body: `{"restaurantId":"nope","date":"2025-03-01","time":"19:00","numPeople":2}`,
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().BookTable(gomock.Any(), gomock.Any()).Return(bookingDto.BookTableResponse{}, failure.NotFound("Restaurant not found"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			rec := f.do(http.MethodPost, "/customer/book", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_CancelBooking(t *testing.T) {
	f := newFixture(t)
	f.bookings.EXPECT().Cancel(gomock.Any(), "b1").Return(nil)
	f.bookings.EXPECT().Cancel(gomock.Any(), "b2").Return(failure.NotFound("Booking not found"))

	rec := f.do(http.MethodDelete, "/customer/cancel/b1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Booking cancelled"}`, rec.Body.String())

	rec = f.do(http.MethodDelete, "/customer/cancel/b2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Booking not found"}`, rec.Body.String())
}

func TestHandler_BookingQRCode(t *testing.T) {
	f := newFixture(t)
	f.bookings.EXPECT().QRCode(gomock.Any(), "b1").Return([]byte("\x89PNG fake"), nil)

	rec := f.do(http.MethodGet, "/customer/booking/b1/qr", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG fake", rec.Body.String())
}

func TestHandler_GetRestaurant(t *testing.T) {
	f := newFixture(t)
	f.restaurants.EXPECT().Get(gomock.Any(), "r1").Return(restaurantDto.RestaurantResponse{ID: "r1"}, nil)

	rec := f.do(http.MethodGet, "/customer/get-restaurant/r1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r1", body["id"])
	assert.Contains(t, body, "avgRating")
}

func TestHandler_AddReview(t *testing.T) {
	f := newFixture(t)
	f.reviews.EXPECT().
		AddReview(gomock.Any(), "r1", reviewDto.AddReviewRequest{Rating: 5, Comment: "lovely"}).
		Return(restaurantDto.RestaurantResponse{ID: "r1"}, nil)
	f.reviews.EXPECT().
		AddReview(gomock.Any(), "r1", reviewDto.AddReviewRequest{Rating: 6}).
		Return(restaurantDto.RestaurantResponse{}, failure.BadRequestFromString("rating must be between 1 and 5"))

	rec := f.do(http.MethodPost, "/customer/review/r1", `{"rating":5,"comment":"lovely"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodPost, "/customer/review/r1", `{"rating":6}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_InternalErrorsAreOpaque(t *testing.T) {
	f := newFixture(t)
	f.bookings.EXPECT().ListMine(gomock.Any()).Return(nil, assert.AnError)

	rec := f.do(http.MethodGet, "/customer/my-bookings", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
