package user

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest for PATCH /users/me.
// Sent as multipart form when an avatar image is attached.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"omitempty,min=1,max=100"`
}

// ProfileResponse represents the current user in API responses
type ProfileResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
	Created  string    `json:"created_at"`
}

// NewProfileResponse converts entity to response
func NewProfileResponse(u *User) ProfileResponse {
	resp := ProfileResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Created: u.CreatedAt.Format(time.RFC3339),
	}
	if u.ImageURL.Valid {
		resp.ImageURL = u.ImageURL.String
	}
	return resp
}
