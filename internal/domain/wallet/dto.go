package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest for POST /wallets.
// Sent as multipart form when an icon image is attached.
type CreateWalletRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	InitialAmount string `json:"initial_amount" validate:"omitempty"`
}

// UpdateWalletRequest for PATCH /wallets/{id}
type UpdateWalletRequest struct {
	Name string `json:"name" validate:"omitempty,min=1,max=100"`
}

// WalletResponse represents a wallet in API responses
type WalletResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// NewWalletResponse converts entity to response
func NewWalletResponse(w *Wallet) WalletResponse {
	resp := WalletResponse{
		ID:            w.ID,
		Name:          w.Name,
		Amount:        w.Amount,
		TotalIncome:   w.TotalIncome,
		TotalExpenses: w.TotalExpenses,
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
	}
	if w.ImageURL.Valid {
		resp.ImageURL = w.ImageURL.String
	}
	return resp
}
