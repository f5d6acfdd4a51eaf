package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns wallets and transactions
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Name         string         `db:"name"`
	ImageURL     sql.NullString `db:"image_url"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
