package model

import (
	"booktable/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldRestaurantID = "restaurant_id"
	FieldBookingDate  = "booking_date"
	FieldBookingTime  = "booking_time"
	FieldNumPeople    = "num_people"
	FieldStatus       = "status"
)

type Status string

const (
	StatusBooked    Status = "Booked"
	StatusCancelled Status = "Cancelled"
)

type Booking struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	RestaurantID string    `db:"restaurant_id"`
	BookingDate  time.Time `db:"booking_date"`
	BookingTime  string    `db:"booking_time"`
	NumPeople    int       `db:"num_people"`
	Status       Status    `db:"status"`
	model.Metadata
}

// WithRestaurant is a booking left-joined with its restaurant's public fields.
// The restaurant side is empty when the restaurant has since been deleted.
type WithRestaurant struct {
	Booking
	RestaurantName    *string        `db:"restaurant_name"`
	RestaurantAddress *string        `db:"restaurant_address"`
	RestaurantCity    *string        `db:"restaurant_city"`
	RestaurantCuisine *string        `db:"restaurant_cuisine"`
	RestaurantPhotos  pq.StringArray `db:"restaurant_photos"`
}

type WithCustomer struct {
	Booking
	CustomerName  *string `db:"customer_name"`
	CustomerEmail *string `db:"customer_email"`
}

type WithDetails struct {
	Booking
	RestaurantName *string `db:"restaurant_name"`
	CustomerName   *string `db:"customer_name"`
	CustomerEmail  *string `db:"customer_email"`
}

type RestaurantCount struct {
	RestaurantID string `db:"restaurant_id"`
	Count        int    `db:"count"`
}

type RestaurantTotal struct {
	RestaurantID string  `db:"restaurant_id"`
	Name         *string `db:"name"`
	Total        int     `db:"total"`
}
