package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/pkg/storage"
	"github.com/spendio/spendio-api/internal/pkg/upload"
)

// Service handles profile business logic
type Service struct {
	repo     Repository
	uploader *upload.Service
}

// NewService creates user service
func NewService(repo Repository, uploader *upload.Service) *Service {
	return &Service{repo: repo, uploader: uploader}
}

// GetProfile returns the current user's profile
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := NewProfileResponse(u)
	return &resp, nil
}

// UpdateProfile updates name and, if an image payload is attached, uploads
// the avatar first. Upload failure aborts the whole operation.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest, image *ImagePayload) (*ProfileResponse, error) {
	var imageURL *string
	if image != nil {
		url, err := s.uploader.UploadImage(ctx, storage.FolderUsers, image.Reader)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	if err := s.repo.UpdateProfile(ctx, userID, req.Name, imageURL); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Msg("profile updated")
	return s.GetProfile(ctx, userID)
}
