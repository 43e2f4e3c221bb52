package dto

import (
	userModel "booktable/internal/domains/user/model"
	gModel "booktable/shared/model"
	"booktable/shared/role"
	"time"

	"github.com/google/uuid"
)

const registrationActor = "guest"

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"required,role"`
}

// ToUserModel expects Role to have passed validation.
func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	userRole, _ := role.Parse(r.Role)

	return userModel.User{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     userRole,
		Metadata: gModel.NewMetadata(registrationActor, now),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	Role  role.Role `json:"role"`
}
