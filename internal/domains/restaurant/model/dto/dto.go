package dto

import (
	"booktable/internal/domains/restaurant/model"
	"booktable/shared/constant"
	gDto "booktable/shared/dto"
	gModel "booktable/shared/model"
	"booktable/shared/timezone"
	"booktable/shared/validator"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	formName            = "name"
	formAddress         = "address"
	formCuisine         = "cuisine"
	formCost            = "cost"
	formContact         = "contact"
	formCity            = "city"
	formState           = "state"
	formZipCode         = "zipCode"
	formAvailableTables = "availableTables"
	formBookingTimes    = "bookingTimes"
	formPhotos          = "photos"

	queryZip       = "zip"
	queryMinRating = "minRating"
	queryDate      = "date"
)

type CreateRestaurantRequest struct {
	Name            string          `json:"name"            validate:"required,max=150"`
	Address         string          `json:"address"         validate:"omitempty,max=255"`
	Cuisine         string          `json:"cuisine"         validate:"omitempty,max=100"`
	Cost            int             `json:"cost"            validate:"min=0"`
	Contact         string          `json:"contact"         validate:"omitempty,max=100"`
	City            string          `json:"city"            validate:"omitempty,max=100"`
	State           string          `json:"state"           validate:"omitempty,max=100"`
	ZipCode         string          `json:"zipCode"         validate:"omitempty,max=20"`
	AvailableTables int             `json:"availableTables" validate:"min=0"`
	BookingTimes    gDto.StringList `json:"bookingTimes"    validate:"omitempty,dive,slot"`
	Photos          gDto.StringList `json:"photos"          validate:"omitempty,dive,url"`
}

// FromForm reads multipart or urlencoded fields. Numeric fields that fail to
// parse are reported as validation errors.
func (c *CreateRestaurantRequest) FromForm(form url.Values) error {
	c.Name = form.Get(formName)
	c.Address = form.Get(formAddress)
	c.Cuisine = form.Get(formCuisine)
	c.Contact = form.Get(formContact)
	c.City = form.Get(formCity)
	c.State = form.Get(formState)
	c.ZipCode = form.Get(formZipCode)

	var err error

	if c.Cost, err = formInt(form, formCost); err != nil {
		return err
	}

	if c.AvailableTables, err = formInt(form, formAvailableTables); err != nil {
		return err
	}

	c.BookingTimes = formList(form, formBookingTimes)
	c.Photos = formList(form, formPhotos)

	return nil
}

func (c *CreateRestaurantRequest) ToModel(managerID string, now time.Time) model.Restaurant {
	bookingTimes := []string(c.BookingTimes)
	if len(bookingTimes) == 0 {
		bookingTimes = slices.Clone(model.DefaultBookingTimes)
	}

	photos := []string(c.Photos)
	if photos == nil {
		photos = []string{}
	}

	return model.Restaurant{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Address:         c.Address,
		Cuisine:         c.Cuisine,
		Cost:            c.Cost,
		Contact:         c.Contact,
		City:            c.City,
		State:           c.State,
		ZipCode:         c.ZipCode,
		AvailableTables: c.AvailableTables,
		BookingTimes:    pq.StringArray(bookingTimes),
		Photos:          pq.StringArray(photos),
		Approved:        false,
		ManagerID:       managerID,
		Reviews:         model.Reviews{},
		Metadata:        gModel.NewMetadata(managerID, now),
	}
}

// UpdateRestaurantRequest overwrites only the fields that are present.
type UpdateRestaurantRequest struct {
	Name            *string          `db:"name"             json:"name"            validate:"omitnil,min=1,max=150"`
	Address         *string          `db:"address"          json:"address"         validate:"omitempty,max=255"`
	Cuisine         *string          `db:"cuisine"          json:"cuisine"         validate:"omitempty,max=100"`
	Cost            *int             `db:"cost"             json:"cost"            validate:"omitempty,min=0"`
	Contact         *string          `db:"contact"          json:"contact"         validate:"omitempty,max=100"`
	City            *string          `db:"city"             json:"city"            validate:"omitempty,max=100"`
	State           *string          `db:"state"            json:"state"           validate:"omitempty,max=100"`
	ZipCode         *string          `db:"zip_code"         json:"zipCode"         validate:"omitempty,max=20"`
	AvailableTables *int             `db:"available_tables" json:"availableTables" validate:"omitempty,min=0"`
	BookingTimes    *gDto.StringList `json:"bookingTimes"   validate:"omitempty,dive,slot"`
	Photos          *gDto.StringList `json:"photos"         validate:"omitempty,dive,url"`
}

func (u *UpdateRestaurantRequest) FromForm(form url.Values) error {
	for key, dst := range map[string]**string{
		formName:    &u.Name,
		formAddress: &u.Address,
		formCuisine: &u.Cuisine,
		formContact: &u.Contact,
		formCity:    &u.City,
		formState:   &u.State,
		formZipCode: &u.ZipCode,
	} {
		if form.Has(key) {
			value := form.Get(key)
			*dst = &value
		}
	}

	for key, dst := range map[string]**int{
		formCost:            &u.Cost,
		formAvailableTables: &u.AvailableTables,
	} {
		if !form.Has(key) {
			continue
		}

		value, err := formInt(form, key)
		if err != nil {
			return err
		}

		*dst = &value
	}

	if form.Has(formBookingTimes) {
		list := formList(form, formBookingTimes)
		u.BookingTimes = &list
	}

	if form.Has(formPhotos) {
		list := formList(form, formPhotos)
		u.Photos = &list
	}

	return nil
}

func formInt(form url.Values, key string) (int, error) {
	raw := form.Get(key)
	if raw == constant.Empty {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.FieldError(key, "must be a whole number")
	}

	return value, nil
}

// formList accepts repeated keys as well as one comma-separated value.
func formList(form url.Values, key string) gDto.StringList {
	out := gDto.StringList{}

	for _, value := range form[key] {
		out = append(out, gDto.ParseStringList(value)...)
	}

	return out
}

type ReviewResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type RestaurantResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Address         string           `json:"address"`
	Cuisine         string           `json:"cuisine"`
	Cost            int              `json:"cost"`
	Contact         string           `json:"contact"`
	City            string           `json:"city"`
	State           string           `json:"state"`
	ZipCode         string           `json:"zipCode"`
	AvailableTables int              `json:"availableTables"`
	BookingTimes    []string         `json:"bookingTimes"`
	Photos          []string         `json:"photos"`
	Approved        bool             `json:"approved"`
	ManagerID       string           `json:"managerId"`
	Reviews         []ReviewResponse `json:"reviews"`
	AvgRating       *float64         `json:"avgRating"`
	gDto.Metadata
}

func (r *RestaurantResponse) FromModel(m model.Restaurant) {
	r.ID = m.ID
	r.Name = m.Name
	r.Address = m.Address
	r.Cuisine = m.Cuisine
	r.Cost = m.Cost
	r.Contact = m.Contact
	r.City = m.City
	r.State = m.State
	r.ZipCode = m.ZipCode
	r.AvailableTables = m.AvailableTables
	r.BookingTimes = nonNil(m.BookingTimes)
	r.Photos = nonNil(m.Photos)
	r.Approved = m.Approved
	r.ManagerID = m.ManagerID
	r.AvgRating = model.AverageRating(m.Reviews)
	r.Metadata.FromModel(m.Metadata)

	r.Reviews = make([]ReviewResponse, 0, len(m.Reviews))
	for _, review := range m.Reviews {
		r.Reviews = append(r.Reviews, ReviewResponse{
			ID:        review.ID,
			UserID:    review.UserID,
			UserName:  review.UserName,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: timezone.Format(review.CreatedAt, constant.DateFormat),
		})
	}
}

func FromModels(models []model.Restaurant) []RestaurantResponse {
	res := make([]RestaurantResponse, 0, len(models))

	for _, m := range models {
		var item RestaurantResponse
		item.FromModel(m)
		res = append(res, item)
	}

	return res
}

type SearchRequest struct {
	City      string
	State     string
	Zip       string
	Cuisine   string
	MinRating *float64
	Date      string
}

func (s *SearchRequest) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	s.City = query.Get(formCity)
	s.State = query.Get(formState)
	s.Zip = query.Get(queryZip)
	s.Cuisine = query.Get(formCuisine)
	s.Date = query.Get(queryDate)

	if raw := query.Get(queryMinRating); raw != constant.Empty {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return validator.FieldError(queryMinRating, "must be a number")
		}

		s.MinRating = &minRating
	}

	if s.Date != constant.Empty {
		if err := validator.ValidateVar(s.Date, "day"); err != nil {
			return validator.FieldError(queryDate, "must be a date in YYYY-MM-DD format")
		}
	}

	return nil
}

// SummaryResponse is one search hit.
type SummaryResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Cuisine          string   `json:"cuisine"`
	Cost             int      `json:"cost"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ZipCode          string   `json:"zipCode"`
	Photos           []string `json:"photos"`
	BookingTimes     []string `json:"bookingTimes"`
	AvgRating        *float64 `json:"avgRating"`
	TimesBookedToday int      `json:"timesBookedToday"`
}

func (s *SummaryResponse) FromModel(m model.Restaurant, avgRating *float64, timesBookedToday int) {
	s.ID = m.ID
	s.Name = m.Name
	s.Address = m.Address
	s.Cuisine = m.Cuisine
	s.Cost = m.Cost
	s.City = m.City
	s.State = m.State
	s.ZipCode = m.ZipCode
	s.Photos = nonNil(m.Photos)
	s.BookingTimes = nonNil(m.BookingTimes)
	s.AvgRating = avgRating
	s.TimesBookedToday = timesBookedToday
}

type ApproveResponse struct {
	Message    string             `json:"message"`
	Restaurant RestaurantResponse `json:"restaurant"`
}

type EnvelopeResponse struct {
	Restaurant RestaurantResponse `json:"restaurant"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
