package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendio/spendio-api/internal/config"
	"github.com/spendio/spendio-api/internal/domain/transaction"
	"github.com/spendio/spendio-api/internal/domain/user"
	"github.com/spendio/spendio-api/internal/domain/wallet"
	"github.com/spendio/spendio-api/internal/pkg/database"
	"github.com/spendio/spendio-api/internal/pkg/password"
)

const (
	demoEmail    = "demo@spendio.dev"
	demoPassword = "demo12345"
)

// Seeds a demo account with two wallets and a month of transactions.
// Safe to re-run: skips when the demo user already exists.
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.ClosePostgres(db)

	ctx := context.Background()

	users := user.NewRepository(db)
	wallets := wallet.NewRepository(db)
	transactions := transaction.NewRepository(db)

	if _, err := users.GetByEmail(ctx, demoEmail); err == nil {
		log.Printf("demo user %s already exists, skipping", demoEmail)
		return
	}

	hash, err := password.Hash(demoPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        demoEmail,
		PasswordHash: hash,
		Name:         "Demo User",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to create demo user: %v", err)
	}

	checking := seedWallet(ctx, wallets, u.ID, "Checking", "2500")
	savings := seedWallet(ctx, wallets, u.ID, "Savings", "10000")

	type seedTx struct {
		walletID uuid.UUID
		txType   wallet.TransactionType
		amount   string
		category string
		desc     string
		daysAgo  int
	}
	entries := []seedTx{
		{checking, wallet.TypeIncome, "3200", "", "Salary", 28},
		{checking, wallet.TypeExpense, "850", "rent", "Monthly rent", 27},
		{checking, wallet.TypeExpense, "120.50", "groceries", "Weekly groceries", 21},
		{checking, wallet.TypeExpense, "64.99", "utilities", "Electricity bill", 18},
		{checking, wallet.TypeExpense, "35", "dining", "Dinner out", 12},
		{checking, wallet.TypeExpense, "89.90", "transportation", "Monthly transit pass", 10},
		{savings, wallet.TypeIncome, "500", "", "Monthly savings top-up", 9},
		{checking, wallet.TypeExpense, "142.30", "groceries", "Weekly groceries", 6},
		{checking, wallet.TypeExpense, "19.99", "entertainment", "Streaming subscription", 3},
		{checking, wallet.TypeExpense, "55", "health", "Pharmacy", 1},
	}

	for _, e := range entries {
		amount, err := decimal.NewFromString(e.amount)
		if err != nil {
			log.Fatalf("bad seed amount %q: %v", e.amount, err)
		}

		tx, err := wallets.BeginTx(ctx)
		if err != nil {
			log.Fatalf("failed to begin tx: %v", err)
		}
		if err := wallets.ApplyNewTransaction(ctx, tx, e.walletID, u.ID, amount, e.txType); err != nil {
			tx.Rollback()
			log.Fatalf("failed to apply transaction: %v", err)
		}

		t := &transaction.Transaction{
			ID:        uuid.New(),
			UID:       u.ID,
			WalletID:  e.walletID,
			Type:      e.txType,
			Amount:    amount,
			Date:      time.Now().AddDate(0, 0, -e.daysAgo),
			CreatedAt: time.Now(),
		}
		if e.category != "" {
			t.Category = nullString(e.category)
		}
		if e.desc != "" {
			t.Description = nullString(e.desc)
		}
		if err := transactions.InsertTx(ctx, tx, t); err != nil {
			tx.Rollback()
			log.Fatalf("failed to insert transaction: %v", err)
		}
		if err := tx.Commit(); err != nil {
			log.Fatalf("failed to commit transaction: %v", err)
		}
	}

	fmt.Printf("Seeded demo account:\n  email:    %s\n  password: %s\n", demoEmail, demoPassword)
}

func seedWallet(ctx context.Context, wallets *wallet.Repository, uid uuid.UUID, name, amount string) uuid.UUID {
	initial, err := decimal.NewFromString(amount)
	if err != nil {
		log.Fatalf("bad seed amount %q: %v", amount, err)
	}
	w := &wallet.Wallet{
		ID:            uuid.New(),
		UID:           uid,
		Name:          name,
		Amount:        initial,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := wallets.Create(ctx, w); err != nil {
		log.Fatalf("failed to create wallet %s: %v", name, err)
	}
	return w.ID
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
