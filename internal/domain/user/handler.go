package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/middleware"
	"github.com/spendio/spendio-api/internal/pkg/response"
	"github.com/spendio/spendio-api/internal/pkg/storage"
	"github.com/spendio/spendio-api/internal/pkg/upload"
	"github.com/spendio/spendio-api/internal/pkg/validator"
)

const maxAvatarUpload = 6 * 1024 * 1024 // multipart: 6 MB

// Handler handles profile HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Me handles GET /users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load profile")
		response.InternalError(w)
		return
	}

	response.OK(w, profile)
}

// Update handles PATCH /users/me.
// Accepts JSON, or multipart/form-data when an avatar is attached.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	var image *ImagePayload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxAvatarUpload); err != nil {
			response.BadRequest(w, "Invalid multipart form")
			return
		}
		req.Name = r.FormValue("name")

		file, _, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			image = &ImagePayload{Reader: file}
		}
	} else {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return
		}
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req, image)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, upload.ErrUploadFailed),
			errors.Is(err, storage.ErrFileTooLarge),
			errors.Is(err, storage.ErrInvalidMimeType),
			errors.Is(err, storage.ErrEmptyFile):
			response.Error(w, http.StatusBadRequest, "IMAGE_UPLOAD_FAILED", "Failed to upload image")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update profile")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, profile)
}
