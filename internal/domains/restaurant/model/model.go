package model

import (
	"booktable/shared/model"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "restaurants"
	EntityName = "restaurant"

	FieldID              = "id"
	FieldName            = "name"
	FieldAddress         = "address"
	FieldCuisine         = "cuisine"
	FieldCost            = "cost"
	FieldContact         = "contact"
	FieldCity            = "city"
	FieldState           = "state"
	FieldZipCode         = "zip_code"
	FieldAvailableTables = "available_tables"
	FieldBookingTimes    = "booking_times"
	FieldPhotos          = "photos"
	FieldApproved        = "approved"
	FieldManagerID       = "manager_id"
	FieldReviews         = "reviews"
)

var DefaultBookingTimes = []string{"18:00", "19:00", "20:00", "21:00"}

type Restaurant struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Address         string         `db:"address"`
	Cuisine         string         `db:"cuisine"`
	Cost            int            `db:"cost"`
	Contact         string         `db:"contact"`
	City            string         `db:"city"`
	State           string         `db:"state"`
	ZipCode         string         `db:"zip_code"`
	AvailableTables int            `db:"available_tables"`
	BookingTimes    pq.StringArray `db:"booking_times"`
	Photos          pq.StringArray `db:"photos"`
	Approved        bool           `db:"approved"`
	ManagerID       string         `db:"manager_id"`
	Reviews         Reviews        `db:"reviews"`
	model.Metadata
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reviews is stored as a JSONB array.
type Reviews []Review

var errUnsupportedReviewsSource = errors.New("unsupported source for reviews")

func (r *Reviews) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*r = Reviews{}

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedReviewsSource, src)
	}

	out := Reviews{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode reviews: %w", err)
	}

	*r = out

	return nil
}

func (r Reviews) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}

	raw, err := json.Marshal([]Review(r))
	if err != nil {
		return nil, fmt.Errorf("failed to encode reviews: %w", err)
	}

	return raw, nil
}

// AverageRating is the arithmetic mean of the ratings, or nil when there are none.
func AverageRating(reviews []Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}

	sum := 0

	for _, review := range reviews {
		sum += review.Rating
	}

	avg := float64(sum) / float64(len(reviews))

	return &avg
}
