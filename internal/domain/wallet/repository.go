package wallet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Repository owns wallet rows and the ledger mutations that keep a
// wallet's balance fields in lockstep with its transactions.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates wallet repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// BeginTx starts the atomic unit shared by a balance mutation and the
// corresponding transaction-record write.
func (r *Repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// Create inserts a new wallet
func (r *Repository) Create(ctx context.Context, w *Wallet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (id, uid, name, amount, total_income, total_expenses, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, w.ID, w.UID, w.Name, w.Amount, w.TotalIncome, w.TotalExpenses, w.ImageURL, w.CreatedAt, w.UpdatedAt)
	return err
}

// GetByID returns a wallet owned by uid
func (r *Repository) GetByID(ctx context.Context, id, uid uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w, `SELECT * FROM wallets WHERE id = $1 AND uid = $2`, id, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns the owner's wallets, newest first
func (r *Repository) List(ctx context.Context, uid uuid.UUID) ([]Wallet, error) {
	wallets := []Wallet{}
	err := r.db.SelectContext(ctx, &wallets, `
		SELECT * FROM wallets WHERE uid = $1 ORDER BY created_at DESC
	`, uid)
	return wallets, err
}

// UpdateMeta updates name and icon. Balance fields are never editable here;
// they move only through the ledger mutations below.
func (r *Repository) UpdateMeta(ctx context.Context, id, uid uuid.UUID, name string, imageURL *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wallets
		SET name = COALESCE(NULLIF($3, ''), name),
		    image_url = COALESCE($4, image_url),
		    updated_at = $5
		WHERE id = $1 AND uid = $2
	`, id, uid, name, imageURL, time.Now())
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWalletNotFound
	}
	return nil
}

// Delete removes the wallet and its transactions in one atomic unit
func (r *Repository) Delete(ctx context.Context, id, uid uuid.UUID) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := r.lockWallet(ctx, tx, id, uid); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE wallet_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1 AND uid = $2`, id, uid); err != nil {
		return err
	}

	return tx.Commit()
}

// lockWallet reads the wallet row under FOR UPDATE inside tx
func (r *Repository) lockWallet(ctx context.Context, tx *sqlx.Tx, id, uid uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := tx.GetContext(ctx, &w, `SELECT * FROM wallets WHERE id = $1 AND uid = $2 FOR UPDATE`, id, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) updateBalance(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount, totalIncome, totalExpenses decimal.Decimal) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET amount = $2, total_income = $3, total_expenses = $4, updated_at = $5
		WHERE id = $1
	`, id, amount, totalIncome, totalExpenses, time.Now())
	return err
}

// ApplyNewTransaction applies a new transaction's effect to its wallet
// inside the caller's atomic unit. An expense that would drive the balance
// negative fails with ErrInsufficientFunds and writes nothing.
func (r *Repository) ApplyNewTransaction(ctx context.Context, tx *sqlx.Tx, walletID, uid uuid.UUID, amount decimal.Decimal, txType TransactionType) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	w, err := r.lockWallet(ctx, tx, walletID, uid)
	if err != nil {
		return err
	}

	if txType == TypeExpense && w.Amount.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}

	newAmount := w.Amount
	totalIncome := w.TotalIncome
	totalExpenses := w.TotalExpenses
	if txType == TypeIncome {
		newAmount = newAmount.Add(amount)
		totalIncome = totalIncome.Add(amount)
	} else {
		newAmount = newAmount.Sub(amount)
		totalExpenses = totalExpenses.Add(amount)
	}

	return r.updateBalance(ctx, tx, walletID, newAmount, totalIncome, totalExpenses)
}

// ReverseTransaction undoes a recorded transaction's effect inside the
// caller's atomic unit, used on delete and on the reverse half of update.
// A negative resulting balance aborts the whole unit; reachable only from
// drifted state, kept as a defensive guard.
func (r *Repository) ReverseTransaction(ctx context.Context, tx *sqlx.Tx, walletID, uid uuid.UUID, amount decimal.Decimal, txType TransactionType) error {
	w, err := r.lockWallet(ctx, tx, walletID, uid)
	if err != nil {
		return err
	}

	newAmount := w.Amount
	totalIncome := w.TotalIncome
	totalExpenses := w.TotalExpenses
	if txType == TypeIncome {
		newAmount = newAmount.Sub(amount)
		totalIncome = totalIncome.Sub(amount)
	} else {
		newAmount = newAmount.Add(amount)
		totalExpenses = totalExpenses.Sub(amount)
	}

	if newAmount.IsNegative() {
		return ErrInsufficientFunds
	}

	return r.updateBalance(ctx, tx, walletID, newAmount, totalIncome, totalExpenses)
}
