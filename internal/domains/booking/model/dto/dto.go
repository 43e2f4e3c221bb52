package dto

import (
	"booktable/internal/domains/booking/model"
	"booktable/shared/constant"
	gDto "booktable/shared/dto"
	gModel "booktable/shared/model"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookTableRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	Date         string `json:"date"         validate:"required,day"`
	Time         string `json:"time"         validate:"required,slot"`
	NumPeople    int    `json:"numPeople"    validate:"required,min=1"`
}

func (b *BookTableRequest) ToModel(userID string, now time.Time) (model.Booking, error) {
	date, err := time.ParseInLocation(constant.DayFormat, b.Date, time.UTC)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to parse booking date: %w", err)
	}

	return model.Booking{
		ID:           uuid.NewString(),
		UserID:       userID,
		RestaurantID: b.RestaurantID,
		BookingDate:  date,
		BookingTime:  b.Time,
		NumPeople:    b.NumPeople,
		Status:       model.StatusBooked,
		Metadata:     gModel.NewMetadata(userID, now),
	}, nil
}

type BookingResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	RestaurantID string `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	NumPeople    int    `json:"numPeople"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.RestaurantID = m.RestaurantID
	r.Date = m.BookingDate.Format(constant.DayFormat)
	r.Time = m.BookingTime
	r.NumPeople = m.NumPeople
	r.Status = string(m.Status)
	r.Metadata.FromModel(m.Metadata)
}

type BookTableResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// BookedRestaurant is nil in responses when the restaurant no longer exists.
type BookedRestaurant struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	City    string   `json:"city"`
	Cuisine string   `json:"cuisine"`
	Photos  []string `json:"photos"`
}

type MyBookingResponse struct {
	BookingResponse
	Restaurant *BookedRestaurant `json:"restaurant"`
}

func (r *MyBookingResponse) FromModel(m model.WithRestaurant) {
	r.BookingResponse.FromModel(m.Booking)

	if m.RestaurantName == nil {
		return
	}

	photos := []string(m.RestaurantPhotos)
	if photos == nil {
		photos = []string{}
	}

	r.Restaurant = &BookedRestaurant{
		ID:      m.RestaurantID,
		Name:    *m.RestaurantName,
		Address: deref(m.RestaurantAddress),
		City:    deref(m.RestaurantCity),
		Cuisine: deref(m.RestaurantCuisine),
		Photos:  photos,
	}
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RestaurantBookingResponse struct {
	BookingResponse
	User *Customer `json:"user"`
}

func (r *RestaurantBookingResponse) FromModel(m model.WithCustomer) {
	r.BookingResponse.FromModel(m.Booking)
	r.User = customer(m.CustomerName, m.CustomerEmail)
}

type AnalyticsBooking struct {
	BookingResponse
	RestaurantName *string   `json:"restaurantName"`
	User           *Customer `json:"user"`
}

type RestaurantTotalResponse struct {
	RestaurantID string `json:"restaurantId"`
	Name         string `json:"name"`
	Total        int    `json:"total"`
}

type AnalyticsResponse struct {
	TotalBookings int                       `json:"totalBookings"`
	Bookings      []AnalyticsBooking        `json:"bookings"`
	ByRestaurant  []RestaurantTotalResponse `json:"byRestaurant"`
}

func (r *AnalyticsResponse) FromModels(bookings []model.WithDetails, totals []model.RestaurantTotal) {
	r.TotalBookings = len(bookings)

	r.Bookings = make([]AnalyticsBooking, len(bookings))
	for i, b := range bookings {
		r.Bookings[i].BookingResponse.FromModel(b.Booking)
		r.Bookings[i].RestaurantName = b.RestaurantName
		r.Bookings[i].User = customer(b.CustomerName, b.CustomerEmail)
	}

	r.ByRestaurant = make([]RestaurantTotalResponse, len(totals))
	for i, t := range totals {
		r.ByRestaurant[i] = RestaurantTotalResponse{
			RestaurantID: t.RestaurantID,
			Name:         deref(t.Name),
			Total:        t.Total,
		}
	}
}

func customer(name, email *string) *Customer {
	if name == nil && email == nil {
		return nil
	}

	return &Customer{Name: deref(name), Email: deref(email)}
}

func deref(s *string) string {
	if s == nil {
		return constant.Empty
	}

	return *s
}
