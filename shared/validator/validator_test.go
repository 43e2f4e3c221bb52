package validator_test

import (
	"booktable/shared/failure"
	"booktable/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	Date         string `json:"date"         validate:"required,day"`
	Time         string `json:"time"         validate:"required,slot"`
	NumPeople    int    `json:"numPeople"    validate:"required,gte=1"`
}

type registerRequest struct {
	Email string   `json:"email" validate:"required,email"`
	Role  string   `json:"role"  validate:"required,role"`
	Slots []string `json:"slots" validate:"omitempty,dive,slot"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    bookingRequest
		wantMsg string
	}{
		{
			name: "valid booking",
			data: bookingRequest{RestaurantID: "r-1", Date: "2025-04-11", Time: "19:00", NumPeople: 2},
		},
		{
			name:    "missing restaurant uses json name",
			data:    bookingRequest{Date: "2025-04-11", Time: "19:00", NumPeople: 2},
			wantMsg: "restaurantId is required",
		},
		{
			name:    "bad date",
			data:    bookingRequest{RestaurantID: "r-1", Date: "11/04/2025", Time: "19:00", NumPeople: 2},
			wantMsg: "date must be a date in YYYY-MM-DD format",
		},
		{
			name:    "bad slot",
			data:    bookingRequest{RestaurantID: "r-1", Date: "2025-04-11", Time: "7pm", NumPeople: 2},
			wantMsg: "time must be a time in HH:MM format",
		},
		{
			name:    "slot out of range",
			data:    bookingRequest{RestaurantID: "r-1", Date: "2025-04-11", Time: "25:00", NumPeople: 2},
			wantMsg: "time must be a time in HH:MM format",
		},
		{
			name:    "negative party",
			data:    bookingRequest{RestaurantID: "r-1", Date: "2025-04-11", Time: "19:00", NumPeople: -1},
			wantMsg: "numPeople must be greater than or equal to 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "customer", body: `{"email":"alice@example.com","role":"Customer"}`},
		{name: "manager with slots", body: `{"email":"mario@example.com","role":"RestaurantManager","slots":["18:00","19:30"]}`},
		{name: "unknown role", body: `{"email":"eve@example.com","role":"Owner"}`, wantErr: true},
		{name: "bad slot in list", body: `{"email":"mario@example.com","role":"RestaurantManager","slots":["18:00","late"]}`, wantErr: true},
		{name: "bad email", body: `{"email":"nope","role":"Admin"}`, wantErr: true},
		{name: "malformed json", body: `{"email":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data registerRequest
			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar(3, "gte=1,lte=5"))
	assert.Error(t, validator.ValidateVar(0, "gte=1,lte=5"))
	assert.Error(t, validator.ValidateVar(6, "gte=1,lte=5"))
	assert.NoError(t, validator.ValidateVar("2025-04-11", "day"))
	assert.Error(t, validator.ValidateVar("2025-13-01", "day"))
}

func TestFieldError(t *testing.T) {
	err := validator.FieldError("minRating", "must be a number")

	assert.EqualError(t, err, "minRating must be a number")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
