package dto_test

import (
	"booktable/internal/domains/booking/model"
	"booktable/internal/domains/booking/model/dto"
	"booktable/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookTableRequest_Validation(t *testing.T) {
	valid := dto.BookTableRequest{RestaurantID: "r1", Date: "2025-03-01", Time: "19:30", NumPeople: 2}

	tests := []struct {
		name    string
		mutate  func(r *dto.BookTableRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*dto.BookTableRequest) {}},
		{name: "missing restaurant", mutate: func(r *dto.BookTableRequest) { r.RestaurantID = "" }, wantErr: true},
		{name: "bad date", mutate: func(r *dto.BookTableRequest) { r.Date = "01-03-2025" }, wantErr: true},
		{name: "bad time", mutate: func(r *dto.BookTableRequest) { r.Time = "7pm" }, wantErr: true},
		{name: "zero people", mutate: func(r *dto.BookTableRequest) { r.NumPeople = 0 }, wantErr: true},
		{name: "negative people", mutate: func(r *dto.BookTableRequest) { r.NumPeople = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookTableRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)
	req := dto.BookTableRequest{RestaurantID: "r1", Date: "2025-03-01", Time: "19:30", NumPeople: 2}

	booking, err := req.ToModel("u1", now)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, model.StatusBooked, booking.Status)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), booking.BookingDate)
	assert.Equal(t, "u1", booking.CreatedBy)
	assert.Equal(t, now, booking.CreatedAt)

	var res dto.BookingResponse
	res.FromModel(booking)
	assert.Equal(t, "2025-03-01", res.Date)
	assert.Equal(t, "19:30", res.Time)
}

func TestAnalyticsResponse_Empty(t *testing.T) {
	var res dto.AnalyticsResponse
	res.FromModels(nil, nil)

	assert.Zero(t, res.TotalBookings)
	assert.NotNil(t, res.Bookings)
	assert.NotNil(t, res.ByRestaurant)
}
