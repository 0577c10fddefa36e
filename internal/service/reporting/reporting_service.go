// Package reporting aggregates financial transactions into period summaries
// and renders the downloadable report document.
package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
)

// ErrInvalidQuery is returned for a report request missing required fields.
var ErrInvalidQuery = errors.New("invalid report query")

// cacheTTL bounds how stale a cached report may be. Reports over a fixed
// past period rarely change within minutes.
const cacheTTL = 5 * time.Minute

// Query selects the records a report covers.
type Query struct {
	From  time.Time
	To    time.Time
	Types []models.TransactionType
}

// Validate enforces the required filter fields.
func (q Query) Validate() error {
	if q.From.IsZero() || q.To.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidQuery)
	}
	if q.To.Before(q.From) {
		return fmt.Errorf("%w: endDate precedes startDate", ErrInvalidQuery)
	}
	if len(q.Types) == 0 {
		return fmt.Errorf("%w: at least one report type is required", ErrInvalidQuery)
	}
	for _, t := range q.Types {
		if !models.ValidTransactionType(t) {
			return fmt.Errorf("%w: unknown report type %q", ErrInvalidQuery, t)
		}
	}
	return nil
}

func (q Query) cacheKey() string {
	types := make([]string, len(q.Types))
	for i, t := range q.Types {
		types[i] = string(t)
	}
	return fmt.Sprintf("report:%s:%s:%s",
		q.From.Format("2006-01-02"), q.To.Format("2006-01-02"), strings.Join(types, ","))
}

// Summary is the aggregate block of a financial report.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	Count        int     `json:"count"`
}

// TransactionSource is the slice of the storage layer the report reads.
type TransactionSource interface {
	FindTransactions(ctx context.Context, f mongodb.TransactionFilter) ([]models.Transaction, error)
}

// Service builds financial reports from stored transactions. With a cache
// client configured, identical queries within the TTL skip the database.
type Service struct {
	source TransactionSource
	cache  *redis.Client
	logger *zap.Logger
}

// NewService wires a new reporting service instance. cache may be nil.
func NewService(source TransactionSource, cache *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, cache: cache, logger: logger}
}

// cachedReport is the serialized form held in the cache.
type cachedReport struct {
	Summary      Summary              `json:"summary"`
	Transactions []models.Transaction `json:"transactions"`
}

// FinancialReport fetches the matching records and computes the summary.
// An empty result set yields a zero summary, not an error.
func (s *Service) FinancialReport(ctx context.Context, q Query) (Summary, []models.Transaction, error) {
	if err := q.Validate(); err != nil {
		return Summary{}, nil, err
	}

	if cached, ok := s.fromCache(ctx, q); ok {
		return cached.Summary, cached.Transactions, nil
	}

	from, to := q.From, q.To
	transactions, err := s.source.FindTransactions(ctx, mongodb.TransactionFilter{
		Types: q.Types,
		From:  &from,
		To:    &to,
	})
	if err != nil {
		return Summary{}, nil, fmt.Errorf("load transactions: %w", err)
	}

	summary := Summarize(transactions)
	s.toCache(ctx, q, cachedReport{Summary: summary, Transactions: transactions})

	s.logger.Debug("financial report computed",
		zap.Int("records", summary.Count),
		zap.Float64("balance", summary.Balance))
	return summary, transactions, nil
}

func (s *Service) fromCache(ctx context.Context, q Query) (cachedReport, bool) {
	var report cachedReport
	if s.cache == nil {
		return report, false
	}

	raw, err := s.cache.Get(ctx, q.cacheKey()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("report cache read failed", zap.Error(err))
		}
		return report, false
	}
	if err := json.Unmarshal(raw, &report); err != nil {
		return report, false
	}
	return report, true
}

func (s *Service) toCache(ctx context.Context, q Query, report cachedReport) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, q.cacheKey(), raw, cacheTTL).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
}

// Summarize totals a transaction set. Decimal accumulation keeps the sums
// exact regardless of how many records the period holds.
func Summarize(transactions []models.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case models.TransactionIncome:
			income = income.Add(amount)
		case models.TransactionExpense:
			expense = expense.Add(amount)
		}
	}

	return Summary{
		TotalIncome:  income.Round(2).InexactFloat64(),
		TotalExpense: expense.Round(2).InexactFloat64(),
		Balance:      income.Sub(expense).Round(2).InexactFloat64(),
		Count:        len(transactions),
	}
}
