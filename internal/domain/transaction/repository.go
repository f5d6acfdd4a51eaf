package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Repository owns transaction rows. All mutating methods take the caller's
// tx so record writes commit atomically with the wallet balance mutation.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates transaction repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// InsertTx inserts a transaction row inside tx
func (r *Repository) InsertTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, uid, wallet_id, type, amount, category, description, date, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, t.ID, t.UID, t.WalletID, t.Type, t.Amount, t.Category, t.Description, t.Date, t.ImageURL, t.CreatedAt)
	return err
}

// UpdateTx updates a transaction row inside tx
func (r *Repository) UpdateTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET wallet_id = $2, type = $3, amount = $4, category = $5, description = $6, date = $7, image_url = $8
		WHERE id = $1
	`, t.ID, t.WalletID, t.Type, t.Amount, t.Category, t.Description, t.Date, t.ImageURL)
	return err
}

// DeleteTx removes a transaction row inside tx
func (r *Repository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

// GetForUpdateTx reads a transaction owned by uid under FOR UPDATE inside tx
func (r *Repository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id, uid uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := tx.GetContext(ctx, &t, `SELECT * FROM transactions WHERE id = $1 AND uid = $2 FOR UPDATE`, id, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID returns a transaction owned by uid
func (r *Repository) GetByID(ctx context.Context, id, uid uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := r.db.GetContext(ctx, &t, `SELECT * FROM transactions WHERE id = $1 AND uid = $2`, id, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns the owner's transactions, newest date first, optionally
// scoped to one wallet
func (r *Repository) List(ctx context.Context, uid uuid.UUID, walletID *uuid.UUID, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	transactions := []Transaction{}
	if walletID != nil {
		err := r.db.SelectContext(ctx, &transactions, `
			SELECT * FROM transactions
			WHERE uid = $1 AND wallet_id = $2
			ORDER BY date DESC, created_at DESC
			LIMIT $3
		`, uid, *walletID, limit)
		return transactions, err
	}

	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM transactions
		WHERE uid = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2
	`, uid, limit)
	return transactions, err
}

// ListBetween returns the owner's transactions with date in [from, to],
// newest first. Used by period stats.
func (r *Repository) ListBetween(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]Transaction, error) {
	transactions := []Transaction{}
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM transactions
		WHERE uid = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
	`, uid, from, to)
	return transactions, err
}
