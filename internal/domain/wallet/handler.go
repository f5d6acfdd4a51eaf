package wallet

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/middleware"
	"github.com/spendio/spendio-api/internal/pkg/response"
	"github.com/spendio/spendio-api/internal/pkg/storage"
	"github.com/spendio/spendio-api/internal/pkg/upload"
	"github.com/spendio/spendio-api/internal/pkg/validator"
)

const maxIconUpload = 6 * 1024 * 1024 // multipart: 6 MB

// Handler handles wallet HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates wallet handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /wallets
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req CreateWalletRequest
	image, cleanup, ok := decodeWalletForm(w, r, &req.Name, &req.InitialAmount)
	if !ok {
		return
	}
	defer cleanup()

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.svc.Create(r.Context(), userID, &req, image)
	if err != nil {
		h.writeError(w, userID, err, "failed to create wallet")
		return
	}

	response.Created(w, result)
}

// List handles GET /wallets
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	result, err := h.svc.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list wallets")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}

// Get handles GET /wallets/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid wallet id")
		return
	}

	result, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		h.writeError(w, userID, err, "failed to load wallet")
		return
	}

	response.OK(w, result)
}

// Update handles PATCH /wallets/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid wallet id")
		return
	}

	var req UpdateWalletRequest
	var unused string
	image, cleanup, ok := decodeWalletForm(w, r, &req.Name, &unused)
	if !ok {
		return
	}
	defer cleanup()

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.svc.Update(r.Context(), id, userID, &req, image)
	if err != nil {
		h.writeError(w, userID, err, "failed to update wallet")
		return
	}

	response.OK(w, result)
}

// Delete handles DELETE /wallets/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid wallet id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		h.writeError(w, userID, err, "failed to delete wallet")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, userID uuid.UUID, err error, msg string) {
	switch {
	case errors.Is(err, ErrWalletNotFound):
		response.NotFound(w, "Wallet not found")
	case errors.Is(err, ErrInvalidAmount):
		response.BadRequest(w, "Amount must be a non-negative number")
	case errors.Is(err, upload.ErrUploadFailed),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrInvalidMimeType),
		errors.Is(err, storage.ErrEmptyFile):
		response.Error(w, http.StatusBadRequest, "IMAGE_UPLOAD_FAILED", "Failed to upload image")
	default:
		log.Error().Err(err).Str("user_id", userID.String()).Msg(msg)
		response.InternalError(w)
	}
}

// decodeWalletForm reads either a JSON body or a multipart form with an
// optional "image" file. Returns ok=false after writing the error response.
func decodeWalletForm(w http.ResponseWriter, r *http.Request, name, initialAmount *string) (io.Reader, func(), bool) {
	noop := func() {}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxIconUpload); err != nil {
			response.BadRequest(w, "Invalid multipart form")
			return nil, noop, false
		}
		*name = r.FormValue("name")
		*initialAmount = r.FormValue("initial_amount")

		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, noop, true
		}
		return file, func() { file.Close() }, true
	}

	var body struct {
		Name          string `json:"name"`
		InitialAmount string `json:"initial_amount"`
	}
	if err := response.DecodeJSON(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return nil, noop, false
	}
	*name = body.Name
	*initialAmount = body.InitialAmount
	return nil, noop, true
}
