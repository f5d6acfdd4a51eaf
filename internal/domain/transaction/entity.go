package transaction

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendio/spendio-api/internal/domain/wallet"
)

// Transaction is a single income or expense event affecting exactly one wallet
type Transaction struct {
	ID          uuid.UUID              `db:"id"`
	UID         uuid.UUID              `db:"uid"`
	WalletID    uuid.UUID              `db:"wallet_id"`
	Type        wallet.TransactionType `db:"type"`
	Amount      decimal.Decimal        `db:"amount"`
	Category    sql.NullString         `db:"category"`
	Description sql.NullString         `db:"description"`
	Date        time.Time              `db:"date"`
	ImageURL    sql.NullString         `db:"image_url"`
	CreatedAt   time.Time              `db:"created_at"`
}
