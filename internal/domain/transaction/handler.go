package transaction

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/domain/wallet"
	"github.com/spendio/spendio-api/internal/middleware"
	"github.com/spendio/spendio-api/internal/pkg/response"
	"github.com/spendio/spendio-api/internal/pkg/storage"
	"github.com/spendio/spendio-api/internal/pkg/upload"
	"github.com/spendio/spendio-api/internal/pkg/validator"
)

const maxReceiptUpload = 11 * 1024 * 1024 // multipart: 11 MB

// Handler handles transaction HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates transaction handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /transactions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req CreateTransactionRequest
	image, cleanup, ok := decodeTransactionForm(w, r,
		&req.WalletID, &req.Type, &req.Amount, &req.Category, &req.Description, &req.Date)
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
		h.writeError(w, userID, err, "failed to create transaction")
		return
	}

	response.Created(w, result)
}

// List handles GET /transactions?wallet_id=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var walletID *uuid.UUID
	if raw := r.URL.Query().Get("wallet_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid wallet_id filter")
			return
		}
		walletID = &id
	}

	result, err := h.svc.List(r.Context(), userID, walletID, parseLimit(r.URL.Query().Get("limit")))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list transactions")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}

// Get handles GET /transactions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction id")
		return
	}

	result, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		h.writeError(w, userID, err, "failed to load transaction")
		return
	}

	response.OK(w, result)
}

// Update handles PATCH /transactions/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction id")
		return
	}

	var req UpdateTransactionRequest
	image, cleanup, ok := decodeTransactionForm(w, r,
		&req.WalletID, &req.Type, &req.Amount, &req.Category, &req.Description, &req.Date)
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
		h.writeError(w, userID, err, "failed to update transaction")
		return
	}

	response.OK(w, result)
}

// Delete handles DELETE /transactions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		h.writeError(w, userID, err, "failed to delete transaction")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, userID uuid.UUID, err error, msg string) {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		response.NotFound(w, "Transaction not found")
	case errors.Is(err, wallet.ErrWalletNotFound):
		response.NotFound(w, "Wallet not found")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.Error(w, http.StatusConflict, "INSUFFICIENT_FUNDS", wallet.ErrInsufficientFunds.Error())
	case errors.Is(err, ErrInvalidType):
		response.BadRequest(w, "Type must be income or expense")
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, wallet.ErrInvalidAmount):
		response.BadRequest(w, "Amount must be a positive number")
	case errors.Is(err, ErrCategoryRequired):
		response.BadRequest(w, "Category is required for expenses")
	case errors.Is(err, ErrInvalidDate):
		response.BadRequest(w, "Date must be RFC3339")
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

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit := 0
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0
		}
		limit = limit*10 + int(c-'0')
		if limit > maxListLimit {
			return maxListLimit
		}
	}
	return limit
}

// decodeTransactionForm reads either a JSON body or a multipart form with
// an optional "image" receipt file. Returns ok=false after writing the
// error response.
func decodeTransactionForm(w http.ResponseWriter, r *http.Request, walletID, txType, amount, category, description, date *string) (io.Reader, func(), bool) {
	noop := func() {}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxReceiptUpload); err != nil {
			response.BadRequest(w, "Invalid multipart form")
			return nil, noop, false
		}
		*walletID = r.FormValue("wallet_id")
		*txType = r.FormValue("type")
		*amount = r.FormValue("amount")
		*category = r.FormValue("category")
		*description = r.FormValue("description")
		*date = r.FormValue("date")

		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, noop, true
		}
		return file, func() { file.Close() }, true
	}

	var body struct {
		WalletID    string `json:"wallet_id"`
		Type        string `json:"type"`
		Amount      string `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Date        string `json:"date"`
	}
	if err := response.DecodeJSON(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return nil, noop, false
	}
	*walletID = body.WalletID
	*txType = body.Type
	*amount = body.Amount
	*category = body.Category
	*description = body.Description
	*date = body.Date
	return nil, noop, true
}
