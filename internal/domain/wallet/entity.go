package wallet

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of transaction kinds
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Wallet is a named balance bucket owned by a user. Amount always equals
// the initial amount plus applied income minus applied expenses over the
// transactions currently recorded against it.
type Wallet struct {
	ID            uuid.UUID       `db:"id"`
	UID           uuid.UUID       `db:"uid"`
	Name          string          `db:"name"`
	Amount        decimal.Decimal `db:"amount"`
	TotalIncome   decimal.Decimal `db:"total_income"`
	TotalExpenses decimal.Decimal `db:"total_expenses"`
	ImageURL      sql.NullString  `db:"image_url"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
