package stats

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/middleware"
	"github.com/spendio/spendio-api/internal/pkg/response"
)

// Handler handles stats HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates stats handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Weekly handles GET /stats/weekly
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	h.fetch(w, r, PeriodWeekly)
}

// Monthly handles GET /stats/monthly
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	h.fetch(w, r, PeriodMonthly)
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request, period Period) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	result, err := h.svc.Fetch(r.Context(), userID, period)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("period", string(period)).Msg("failed to fetch stats")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}
