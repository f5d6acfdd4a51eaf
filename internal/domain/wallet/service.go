package wallet

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/spendio/spendio-api/internal/pkg/storage"
	"github.com/spendio/spendio-api/internal/pkg/upload"
)

// EventPublisher pushes wallet events to the owner's live connections.
// Best-effort: publish failures never fail the mutation.
type EventPublisher interface {
	Publish(userID uuid.UUID, event string, payload interface{})
}

// Service handles wallet business logic
type Service struct {
	repo      *Repository
	uploader  *upload.Service
	publisher EventPublisher // nil if realtime disabled
}

// NewService creates wallet service
func NewService(repo *Repository, uploader *upload.Service, publisher EventPublisher) *Service {
	return &Service{repo: repo, uploader: uploader, publisher: publisher}
}

// Create creates a wallet, uploading the icon first when one is attached.
// Upload failure aborts the whole operation before any row is written.
func (s *Service) Create(ctx context.Context, uid uuid.UUID, req *CreateWalletRequest, image io.Reader) (*WalletResponse, error) {
	initial := decimal.Zero
	if req.InitialAmount != "" {
		parsed, err := decimal.NewFromString(req.InitialAmount)
		if err != nil || parsed.IsNegative() {
			return nil, ErrInvalidAmount
		}
		initial = parsed
	}

	var imageURL sql.NullString
	if image != nil {
		url, err := s.uploader.UploadImage(ctx, storage.FolderWallets, image)
		if err != nil {
			return nil, err
		}
		imageURL = sql.NullString{String: url, Valid: true}
	}

	now := time.Now()
	w := &Wallet{
		ID:            uuid.New(),
		UID:           uid,
		Name:          req.Name,
		Amount:        initial,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		ImageURL:      imageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	log.Info().Str("wallet_id", w.ID.String()).Str("user_id", uid.String()).Msg("wallet created")
	s.publish(uid, "wallet.created", NewWalletResponse(w))

	resp := NewWalletResponse(w)
	return &resp, nil
}

// Get returns a wallet owned by uid
func (s *Service) Get(ctx context.Context, id, uid uuid.UUID) (*WalletResponse, error) {
	w, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	resp := NewWalletResponse(w)
	return &resp, nil
}

// List returns the owner's wallets, newest first
func (s *Service) List(ctx context.Context, uid uuid.UUID) ([]WalletResponse, error) {
	wallets, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	resp := make([]WalletResponse, 0, len(wallets))
	for i := range wallets {
		resp = append(resp, NewWalletResponse(&wallets[i]))
	}
	return resp, nil
}

// Update updates name and icon. Balance fields never move through here.
func (s *Service) Update(ctx context.Context, id, uid uuid.UUID, req *UpdateWalletRequest, image io.Reader) (*WalletResponse, error) {
	var imageURL *string
	if image != nil {
		url, err := s.uploader.UploadImage(ctx, storage.FolderWallets, image)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	if err := s.repo.UpdateMeta(ctx, id, uid, req.Name, imageURL); err != nil {
		return nil, err
	}

	w, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}

	s.publish(uid, "wallet.updated", NewWalletResponse(w))
	resp := NewWalletResponse(w)
	return &resp, nil
}

// Delete removes the wallet together with its transactions
func (s *Service) Delete(ctx context.Context, id, uid uuid.UUID) error {
	w, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, uid); err != nil {
		return err
	}

	log.Info().Str("wallet_id", id.String()).Str("user_id", uid.String()).Msg("wallet deleted")
	s.publish(uid, "wallet.deleted", map[string]string{"id": id.String()})

	// best-effort: the row is already gone
	if w.ImageURL.Valid && s.uploader != nil {
		if err := s.uploader.DeleteByURL(ctx, w.ImageURL.String); err != nil {
			log.Warn().Err(err).Str("wallet_id", id.String()).Msg("failed to remove wallet icon")
		}
	}
	return nil
}

func (s *Service) publish(uid uuid.UUID, event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(uid, event, payload)
}
