package payload

import (
	"time"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
)

type UpdateUserRequest struct {
	UserID      string  `json:"user_id"      validate:"required"`
	Name        *string `json:"name"         validate:"omitempty,min=1"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,e164|eq="`
}

type ProfileResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProfileResponse(profile *usecase.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		Name:        profile.Name,
		Email:       profile.Email,
		PhoneNumber: profile.PhoneNumber,
		CreatedAt:   profile.CreatedAt,
	}
}
