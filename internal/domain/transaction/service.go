package transaction

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/spendio/spendio-api/internal/domain/wallet"
	"github.com/spendio/spendio-api/internal/pkg/storage"
	"github.com/spendio/spendio-api/internal/pkg/upload"
)

// EventPublisher pushes transaction events to the owner's live connections.
// Best-effort: publish failures never fail the mutation.
type EventPublisher interface {
	Publish(userID uuid.UUID, event string, payload interface{})
}

// StatsInvalidator drops cached period stats after a mutation
type StatsInvalidator interface {
	Invalidate(ctx context.Context, uid uuid.UUID)
}

// Service coordinates transaction records with wallet balance mutations.
// Every mutation commits the record write and the balance change as one
// atomic unit.
type Service struct {
	repo        *Repository
	wallets     *wallet.Repository
	uploader    *upload.Service
	publisher   EventPublisher   // nil if realtime disabled
	invalidator StatsInvalidator // nil if stats cache disabled
}

// NewService creates transaction service
func NewService(repo *Repository, wallets *wallet.Repository, uploader *upload.Service, publisher EventPublisher, invalidator StatsInvalidator) *Service {
	return &Service{
		repo:        repo,
		wallets:     wallets,
		uploader:    uploader,
		publisher:   publisher,
		invalidator: invalidator,
	}
}

// Create records a new transaction. The receipt image, when attached, is
// uploaded before the atomic unit so an upload failure writes nothing;
// then the wallet balance mutation and the record insert commit together.
func (s *Service) Create(ctx context.Context, uid uuid.UUID, req *CreateTransactionRequest, image io.Reader) (*TransactionResponse, error) {
	txType := wallet.TransactionType(req.Type)
	if !txType.Valid() {
		return nil, ErrInvalidType
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if txType == wallet.TypeExpense && req.Category == "" {
		return nil, ErrCategoryRequired
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		return nil, wallet.ErrWalletNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var imageURL sql.NullString
	if image != nil {
		url, err := s.uploader.UploadImage(ctx, storage.FolderTransactions, image)
		if err != nil {
			return nil, err
		}
		imageURL = sql.NullString{String: url, Valid: true}
	}

	t := &Transaction{
		ID:        uuid.New(),
		UID:       uid,
		WalletID:  walletID,
		Type:      txType,
		Amount:    amount,
		Date:      date,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}
	if req.Category != "" {
		t.Category = sql.NullString{String: req.Category, Valid: true}
	}
	if req.Description != "" {
		t.Description = sql.NullString{String: req.Description, Valid: true}
	}

	tx, err := s.wallets.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.wallets.ApplyNewTransaction(ctx, tx, walletID, uid, t.Amount, t.Type); err != nil {
		return nil, err
	}
	if err := s.repo.InsertTx(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", t.ID.String()).
		Str("wallet_id", walletID.String()).
		Str("type", string(t.Type)).
		Str("amount", t.Amount.String()).
		Msg("transaction recorded")

	s.afterMutation(ctx, uid, "transaction.created", NewTransactionResponse(t), walletID)

	resp := NewTransactionResponse(t)
	return &resp, nil
}

// Update replaces a transaction's values, reversing the old effect and
// applying the new one (possibly against a different wallet) in one
// atomic unit.
func (s *Service) Update(ctx context.Context, id, uid uuid.UUID, req *UpdateTransactionRequest, image io.Reader) (*TransactionResponse, error) {
	txType := wallet.TransactionType(req.Type)
	if !txType.Valid() {
		return nil, ErrInvalidType
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if txType == wallet.TypeExpense && req.Category == "" {
		return nil, ErrCategoryRequired
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		return nil, wallet.ErrWalletNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var imageURL sql.NullString
	if image != nil {
		url, err := s.uploader.UploadImage(ctx, storage.FolderTransactions, image)
		if err != nil {
			return nil, err
		}
		imageURL = sql.NullString{String: url, Valid: true}
	}

	tx, err := s.wallets.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old, err := s.repo.GetForUpdateTx(ctx, tx, id, uid)
	if err != nil {
		return nil, err
	}

	if err := s.wallets.ReverseTransaction(ctx, tx, old.WalletID, uid, old.Amount, old.Type); err != nil {
		return nil, err
	}
	if err := s.wallets.ApplyNewTransaction(ctx, tx, walletID, uid, amount, txType); err != nil {
		return nil, err
	}

	updated := &Transaction{
		ID:        id,
		UID:       uid,
		WalletID:  walletID,
		Type:      txType,
		Amount:    amount,
		Date:      date,
		ImageURL:  old.ImageURL,
		CreatedAt: old.CreatedAt,
	}
	if imageURL.Valid {
		updated.ImageURL = imageURL
	}
	if req.Category != "" {
		updated.Category = sql.NullString{String: req.Category, Valid: true}
	}
	if req.Description != "" {
		updated.Description = sql.NullString{String: req.Description, Valid: true}
	}

	if err := s.repo.UpdateTx(ctx, tx, updated); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", id.String()).
		Str("wallet_id", walletID.String()).
		Msg("transaction updated")

	s.afterMutation(ctx, uid, "transaction.updated", NewTransactionResponse(updated), walletID)
	if old.WalletID != walletID {
		s.publishWallet(uid, old.WalletID)
	}
	if imageURL.Valid && old.ImageURL.Valid && old.ImageURL.String != imageURL.String {
		s.cleanupImage(ctx, old.ImageURL.String)
	}

	resp := NewTransactionResponse(updated)
	return &resp, nil
}

// Delete removes a transaction, reversing its wallet effect in the same
// atomic unit. Both commit or neither does.
func (s *Service) Delete(ctx context.Context, id, uid uuid.UUID) error {
	tx, err := s.wallets.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	t, err := s.repo.GetForUpdateTx(ctx, tx, id, uid)
	if err != nil {
		return err
	}

	if err := s.wallets.ReverseTransaction(ctx, tx, t.WalletID, uid, t.Amount, t.Type); err != nil {
		return err
	}
	if err := s.repo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info().
		Str("transaction_id", id.String()).
		Str("wallet_id", t.WalletID.String()).
		Msg("transaction deleted")

	s.afterMutation(ctx, uid, "transaction.deleted", map[string]string{"id": id.String()}, t.WalletID)
	if t.ImageURL.Valid {
		s.cleanupImage(ctx, t.ImageURL.String)
	}
	return nil
}

// Get returns a transaction owned by uid
func (s *Service) Get(ctx context.Context, id, uid uuid.UUID) (*TransactionResponse, error) {
	t, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	resp := NewTransactionResponse(t)
	return &resp, nil
}

// List returns the owner's transactions, newest first
func (s *Service) List(ctx context.Context, uid uuid.UUID, walletID *uuid.UUID, limit int) ([]TransactionResponse, error) {
	transactions, err := s.repo.List(ctx, uid, walletID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		resp = append(resp, NewTransactionResponse(&transactions[i]))
	}
	return resp, nil
}

func (s *Service) afterMutation(ctx context.Context, uid uuid.UUID, event string, payload interface{}, walletID uuid.UUID) {
	if s.publisher != nil {
		s.publisher.Publish(uid, event, payload)
	}
	s.publishWallet(uid, walletID)
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, uid)
	}
}

// cleanupImage removes a stored receipt that no record references anymore.
// Best-effort: the ledger write has already committed.
func (s *Service) cleanupImage(ctx context.Context, imageURL string) {
	if s.uploader == nil {
		return
	}
	if err := s.uploader.DeleteByURL(ctx, imageURL); err != nil {
		log.Warn().Err(err).Str("image_url", imageURL).Msg("failed to remove stored receipt")
	}
}

func (s *Service) publishWallet(uid, walletID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(uid, "wallet.updated", map[string]string{"id": walletID.String()})
}
