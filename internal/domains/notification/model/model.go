package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidEvent = errors.New("invalid booking confirmed event")

// BookingConfirmed is published once a booking row is stored.
type BookingConfirmed struct {
	BookingID      string `json:"bookingId"`
	Email          string `json:"email"`
	RestaurantName string `json:"restaurantName"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	NumPeople      int    `json:"numPeople"`
}

func (e BookingConfirmed) Validate() error {
	if e.BookingID == "" || e.Email == "" {
		return ErrInvalidEvent
	}

	return nil
}

func Decode(raw []byte) (BookingConfirmed, error) {
	var event BookingConfirmed

	if err := json.Unmarshal(raw, &event); err != nil {
		return event, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	if err := event.Validate(); err != nil {
		return event, err
	}

	return event, nil
}
