package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest for POST /transactions.
// Sent as multipart form when a receipt image is attached.
type CreateTransactionRequest struct {
	WalletID    string `json:"wallet_id" validate:"required,uuid"`
	Type        string `json:"type" validate:"required,txtype"`
	Amount      string `json:"amount" validate:"required"`
	Category    string `json:"category" validate:"omitempty,expense_category"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Date        string `json:"date" validate:"omitempty"` // RFC3339, defaults to now
}

// UpdateTransactionRequest for PATCH /transactions/{id}.
// A full replacement: the old effect is reversed and the new one applied.
type UpdateTransactionRequest struct {
	WalletID    string `json:"wallet_id" validate:"required,uuid"`
	Type        string `json:"type" validate:"required,txtype"`
	Amount      string `json:"amount" validate:"required"`
	Category    string `json:"category" validate:"omitempty,expense_category"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Date        string `json:"date" validate:"omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

// NewTransactionResponse converts entity to response
func NewTransactionResponse(t *Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:        t.ID,
		WalletID:  t.WalletID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		Date:      t.Date.Format(time.RFC3339),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.Category.Valid {
		resp.Category = t.Category.String
	}
	if t.Description.Valid {
		resp.Description = t.Description.String
	}
	if t.ImageURL.Valid {
		resp.ImageURL = t.ImageURL.String
	}
	return resp
}

// parseDate parses an optional RFC3339 date, defaulting to now
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
