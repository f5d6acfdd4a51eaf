package transaction

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrCategoryRequired    = errors.New("category is required for expenses")
	ErrInvalidDate         = errors.New("date must be RFC3339")
)
