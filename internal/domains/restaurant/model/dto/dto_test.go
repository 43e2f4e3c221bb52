package dto_test

import (
	"booktable/internal/domains/restaurant/model"
	"booktable/internal/domains/restaurant/model/dto"
	"booktable/shared/failure"
	gModel "booktable/shared/model"
	"booktable/shared/validator"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRestaurantRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	req := dto.CreateRestaurantRequest{Name: "The Italian Corner", Cuisine: "Italian", Cost: 2}

	m := req.ToModel("manager-1", now)

	assert.NotEmpty(t, m.ID)
	assert.False(t, m.Approved)
	assert.Equal(t, "manager-1", m.ManagerID)
	assert.Equal(t, []string{"18:00", "19:00", "20:00", "21:00"}, []string(m.BookingTimes))
	assert.Empty(t, m.Photos)
	assert.NotNil(t, m.Photos)
	assert.NotNil(t, m.Reviews)
	assert.Equal(t, now, m.CreatedAt)

	m.BookingTimes[0] = "17:00"
	assert.Equal(t, "18:00", model.DefaultBookingTimes[0])
}

func TestCreateRestaurantRequest_PhotosAsStringOrArray(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "array", body: `{"name":"x","photos":["https://a/1.jpg","https://a/2.jpg"]}`, want: []string{"https://a/1.jpg", "https://a/2.jpg"}},
		{name: "comma string", body: `{"name":"x","photos":"https://a/1.jpg, https://a/2.jpg,"}`, want: []string{"https://a/1.jpg", "https://a/2.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.CreateRestaurantRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, []string(req.Photos))
		})
	}
}

func TestCreateRestaurantRequest_FromForm(t *testing.T) {
	form := url.Values{
		"name":            {"Bombay Spice"},
		"cost":            {"3"},
		"availableTables": {"12"},
		"bookingTimes":    {"18:00,19:30"},
		"photos":          {"https://a/1.jpg", "https://a/2.jpg"},
	}

	var req dto.CreateRestaurantRequest
	require.NoError(t, req.FromForm(form))

	assert.Equal(t, "Bombay Spice", req.Name)
	assert.Equal(t, 3, req.Cost)
	assert.Equal(t, 12, req.AvailableTables)
	assert.Equal(t, []string{"18:00", "19:30"}, []string(req.BookingTimes))
	assert.Len(t, req.Photos, 2)
	assert.NoError(t, validator.ValidateStruct(&req))

	bad := url.Values{"name": {"x"}, "cost": {"cheap"}}
	err := req.FromForm(bad)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestCreateRestaurantRequest_Validation(t *testing.T) {
	req := dto.CreateRestaurantRequest{Name: "x", BookingTimes: []string{"7pm"}}
	assert.Error(t, validator.ValidateStruct(&req))

	req = dto.CreateRestaurantRequest{Name: "x", Photos: []string{"not a url"}}
	assert.Error(t, validator.ValidateStruct(&req))

	req = dto.CreateRestaurantRequest{}
	assert.Error(t, validator.ValidateStruct(&req))
}

func TestUpdateRestaurantRequest_Validation(t *testing.T) {
	empty := ""
	long := strings.Repeat("a", 151)
	name := "Bombay Spice"

	tests := []struct {
		name    string
		req     dto.UpdateRestaurantRequest
		wantErr bool
	}{
		{name: "name absent", req: dto.UpdateRestaurantRequest{}},
		{name: "name present", req: dto.UpdateRestaurantRequest{Name: &name}},
		{name: "name blanked", req: dto.UpdateRestaurantRequest{Name: &empty}, wantErr: true},
		{name: "name too long", req: dto.UpdateRestaurantRequest{Name: &long}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("empty form name is rejected", func(t *testing.T) {
		var req dto.UpdateRestaurantRequest
		require.NoError(t, req.FromForm(url.Values{"name": {""}}))
		require.NotNil(t, req.Name)
		assert.Error(t, validator.ValidateStruct(&req))
	})
}

func TestUpdateRestaurantRequest_FromForm(t *testing.T) {
	var req dto.UpdateRestaurantRequest
	require.NoError(t, req.FromForm(url.Values{"city": {"Mumbai"}, "availableTables": {"8"}}))

	require.NotNil(t, req.City)
	assert.Equal(t, "Mumbai", *req.City)
	require.NotNil(t, req.AvailableTables)
	assert.Equal(t, 8, *req.AvailableTables)
	assert.Nil(t, req.Name)
	assert.Nil(t, req.Photos)
}

func TestRestaurantResponse_FromModel(t *testing.T) {
	m := model.Restaurant{
		ID:      "r1",
		Name:    "Tandoori Palace",
		Reviews: model.Reviews{{Rating: 4}, {Rating: 5}, {Rating: 3}},
		Metadata: gModel.Metadata{
			CreatedAt: time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	var res dto.RestaurantResponse
	res.FromModel(m)

	require.NotNil(t, res.AvgRating)
	assert.InDelta(t, 4.0, *res.AvgRating, 0.001)
	assert.Len(t, res.Reviews, 3)
	assert.Equal(t, []string{}, res.Photos)

	raw, err := json.Marshal(dto.RestaurantResponse{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"avgRating":null`)
	assert.Contains(t, string(raw), `"createdAt"`)
}

func TestSearchRequest_FromRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, req dto.SearchRequest)
	}{
		{
			name:  "all filters",
			query: "city=Mumbai&state=MH&zip=400001&cuisine=Indian&minRating=4.5&date=2025-04-11",
			check: func(t *testing.T, req dto.SearchRequest) {
				assert.Equal(t, "Mumbai", req.City)
				assert.Equal(t, "400001", req.Zip)
				require.NotNil(t, req.MinRating)
				assert.InDelta(t, 4.5, *req.MinRating, 0.001)
				assert.Equal(t, "2025-04-11", req.Date)
			},
		},
		{
			name:  "no filters",
			query: "",
			check: func(t *testing.T, req dto.SearchRequest) {
				assert.Nil(t, req.MinRating)
				assert.Empty(t, req.Date)
			},
		},
		{name: "bad rating", query: "minRating=high", wantErr: true},
		{name: "bad date", query: "date=11-04-2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/customer/search?"+tt.query, nil)

			var req dto.SearchRequest
			err := req.FromRequest(r)

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, req)
		})
	}
}
