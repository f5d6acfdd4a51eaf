package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/domain/transaction"
	"github.com/spendio/spendio-api/internal/domain/wallet"
)

// Period selects the aggregation window
type Period string

const (
	PeriodWeekly  Period = "weekly"  // trailing 7 calendar days
	PeriodMonthly Period = "monthly" // trailing 12 calendar months
)

// Result carries the chart buckets plus the transactions that fed them
type Result struct {
	Stats        []Bucket                          `json:"stats"`
	Transactions []transaction.TransactionResponse `json:"transactions"`
}

// Service aggregates a user's transactions into period buckets. Results
// are cached in Redis until the next mutation invalidates them.
type Service struct {
	transactions *transaction.Repository
	redis        *redis.Client // nil disables caching
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewService creates stats service
func NewService(transactions *transaction.Repository, redisClient *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		transactions: transactions,
		redis:        redisClient,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// Fetch returns period stats for uid: pre-generated zero-sum buckets
// (oldest first) with the user's transactions folded in.
func (s *Service) Fetch(ctx context.Context, uid uuid.UUID, period Period) (*Result, error) {
	if cached := s.fromCache(ctx, uid, period); cached != nil {
		return cached, nil
	}

	now := s.now()
	var buckets []Bucket
	var from time.Time
	switch period {
	case PeriodWeekly:
		buckets = weeklySkeleton(now)
		from = weeklyWindowStart(now)
	case PeriodMonthly:
		buckets = monthlySkeleton(now)
		from = monthlyWindowStart(now)
	default:
		return nil, fmt.Errorf("unknown stats period %q", period)
	}

	matched, err := s.transactions.ListBetween(ctx, uid, from, now)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Stats:        buckets,
		Transactions: make([]transaction.TransactionResponse, 0, len(matched)),
	}
	for i := range matched {
		t := &matched[i]
		result.Transactions = append(result.Transactions, transaction.NewTransactionResponse(t))

		key := t.Date.Format("2006-01-02")
		if period == PeriodMonthly {
			key = t.Date.Format("2006-01")
		}
		foldInto(result.Stats, key, t.Type == wallet.TypeIncome, t.Amount)
	}

	s.toCache(ctx, uid, period, result)
	return result, nil
}

// Invalidate drops both cached periods for uid. Called by the transaction
// service after every mutation.
func (s *Service) Invalidate(ctx context.Context, uid uuid.UUID) {
	if s.redis == nil {
		return
	}
	keys := []string{cacheKey(uid, PeriodWeekly), cacheKey(uid, PeriodMonthly)}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", uid.String()).Msg("failed to invalidate stats cache")
	}
}

func (s *Service) fromCache(ctx context.Context, uid uuid.UUID, period Period) *Result {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, cacheKey(uid, period)).Bytes()
	if err != nil {
		return nil
	}
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (s *Service) toCache(ctx context.Context, uid uuid.UUID, period Period, result *Result) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(uid, period), raw, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", uid.String()).Msg("failed to cache stats")
	}
}

func cacheKey(uid uuid.UUID, period Period) string {
	return fmt.Sprintf("stats:%s:%s", uid, period)
}
