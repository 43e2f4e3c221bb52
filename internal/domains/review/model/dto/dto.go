package dto

import (
	"booktable/internal/domains/restaurant/model"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// AddReviewRequest leaves the rating range to the service so that an out of
// range value is rejected before anything is written.
type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

func (a *AddReviewRequest) ToModel(userID, userName string, now time.Time) model.Review {
	return model.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Rating:    a.Rating,
		Comment:   a.Comment,
		CreatedAt: now,
	}
}
