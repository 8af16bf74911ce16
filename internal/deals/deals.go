// Package deals manages trader financing deals and the dashboard figures
// derived from them.
package deals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/dealer-finance/internal/domain"
	"github.com/iwvelando/dealer-finance/internal/storage"
	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/iwvelando/dealer-finance/pkg/datetime"
	"github.com/iwvelando/dealer-finance/pkg/finance"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no deal has the requested ID.
var ErrNotFound = errors.New("trader deal not found")

// Statistics are the dashboard totals over every stored deal.
type Statistics struct {
	TotalFinanced  float64 `json:"totalFinanced"`
	ActiveDeals    int     `json:"activeDeals"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	ProfitMargin   float64 `json:"profitMargin"`
}

// Service stores trader deals and quotes new ones.
type Service struct {
	repo   storage.Repository[domain.TraderDeal]
	policy finance.Policy
	logger *zap.Logger
	now    func() time.Time

	// createMu serializes numbering so concurrent creates get distinct numbers.
	createMu sync.Mutex
}

// NewService creates a deals service over repo. The policy's trader share
// is used for quotes.
func NewService(repo storage.Repository[domain.TraderDeal], policy finance.Policy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, policy: policy.Normalize(), logger: logger, now: time.Now}
}

// DefaultDeals returns the deals installed on first start.
func DefaultDeals() []domain.TraderDeal {
	return []domain.TraderDeal{
		{DealNumber: "TF-2024-001", TraderName: "Ahmed Mohammed Al-Otaibi", CarType: domain.CategoryLuxury, FinancingAmount: 250000, DownPayment: 50000, MonthlyPayment: 4500, Status: domain.DealActive, StartDate: "2024-01-15"},
		{DealNumber: "TF-2024-002", TraderName: "Sara Abdullah Al-Qahtani", CarType: domain.CategoryClassic, FinancingAmount: 180000, DownPayment: 36000, MonthlyPayment: 3200, Status: domain.DealActive, StartDate: "2024-02-01"},
		{DealNumber: "TF-2024-003", TraderName: "Mohammed Khalid Al-Shammari", CarType: domain.CategorySport, FinancingAmount: 220000, DownPayment: 44000, MonthlyPayment: 4200, Status: domain.DealCompleted, StartDate: "2023-12-10"},
	}
}

// EnsureDefaults stores DefaultDeals, keeping their numbers and dates, when
// no deals exist and reports how many were added.
func (s *Service) EnsureDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list trader deals: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	now := s.now().UTC()
	defaults := DefaultDeals()
	for _, deal := range defaults {
		deal.ID = uuid.New()
		deal.CreatedAt = now
		if err := s.repo.Save(ctx, deal); err != nil {
			return 0, fmt.Errorf("failed to save trader deal %s: %w", deal.DealNumber, err)
		}
	}
	return len(defaults), nil
}

// List returns every deal ordered by creation time, then deal number.
func (s *Service) List(ctx context.Context) ([]domain.TraderDeal, error) {
	deals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trader deals: %w", err)
	}
	sort.SliceStable(deals, func(i, j int) bool {
		if !deals[i].CreatedAt.Equal(deals[j].CreatedAt) {
			return deals[i].CreatedAt.Before(deals[j].CreatedAt)
		}
		return deals[i].DealNumber < deals[j].DealNumber
	})
	return deals, nil
}

// Get returns a single deal.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.TraderDeal, error) {
	deal, err := s.repo.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.TraderDeal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return domain.TraderDeal{}, fmt.Errorf("failed to get trader deal %s: %w", id, err)
	}
	return deal, nil
}

// Create numbers and stores a new deal. The start date is today and an
// empty status means active. The sequence follows the highest one in use, so
// numbers are not reused after a delete.
func (s *Service) Create(ctx context.Context, deal domain.TraderDeal) (domain.TraderDeal, error) {
	deal.TraderName = strings.TrimSpace(deal.TraderName)
	if deal.Status == "" {
		deal.Status = domain.DealActive
	}
	if err := deal.Validate(); err != nil {
		return domain.TraderDeal{}, err
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return domain.TraderDeal{}, fmt.Errorf("failed to list trader deals: %w", err)
	}

	now := s.now()
	deal.ID = uuid.New()
	deal.DealNumber = DealNumber(now.Year(), nextSequence(existing))
	deal.StartDate = datetime.FormatDate(now)
	deal.CreatedAt = now.UTC()
	deal.UpdatedAt = time.Time{}
	if err := s.repo.Save(ctx, deal); err != nil {
		return domain.TraderDeal{}, fmt.Errorf("failed to save trader deal: %w", err)
	}

	s.logger.Info("trader deal created",
		zap.String("op", "deals.Create"),
		zap.String("dealNumber", deal.DealNumber),
		zap.String("trader", deal.TraderName),
		zap.Float64("financingAmount", deal.FinancingAmount),
	)
	return deal, nil
}

// Update replaces the editable fields of an existing deal. The deal number
// and creation time are preserved; the start date too unless a valid one is
// given.
func (s *Service) Update(ctx context.Context, id uuid.UUID, deal domain.TraderDeal) (domain.TraderDeal, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.TraderDeal{}, err
	}

	deal.TraderName = strings.TrimSpace(deal.TraderName)
	if deal.Status == "" {
		deal.Status = existing.Status
	}
	if err := deal.Validate(); err != nil {
		return domain.TraderDeal{}, err
	}
	if !datetime.ValidDate(deal.StartDate) {
		deal.StartDate = existing.StartDate
	}

	deal.ID = existing.ID
	deal.DealNumber = existing.DealNumber
	deal.CreatedAt = existing.CreatedAt
	deal.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, deal); err != nil {
		return domain.TraderDeal{}, fmt.Errorf("failed to save trader deal %s: %w", id, err)
	}
	return deal, nil
}

// Delete removes a deal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete trader deal %s: %w", id, err)
	}

	s.logger.Info("trader deal deleted",
		zap.String("op", "deals.Delete"),
		zap.String("id", id.String()),
	)
	return nil
}

// Statistics totals the stored deals.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	deals, err := s.List(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Summarize(deals), nil
}

// Quote prices a prospective trader deal with the service's trader share.
func (s *Service) Quote(input finance.TraderInput) (finance.TraderResult, error) {
	return finance.CalculateTrader(input, s.policy)
}

// Summarize computes the dashboard totals. Financing is summed over every
// deal, defaulted and cancelled ones included, revenue over active deals only. The margin is a flat figure shown
// once any completed deal has revenue.
func Summarize(deals []domain.TraderDeal) Statistics {
	var stats Statistics
	completedRevenue := 0.0
	for _, deal := range deals {
		stats.TotalFinanced += deal.FinancingAmount
		switch deal.Status {
		case domain.DealActive:
			stats.ActiveDeals++
			stats.MonthlyRevenue += deal.MonthlyPayment
		case domain.DealCompleted:
			completedRevenue += deal.MonthlyPayment * constants.MonthsPerYear
		case domain.DealCancelled, domain.DealDefaulted:
			// Financing only.
		}
	}
	if completedRevenue > 0 {
		stats.ProfitMargin = constants.CompletedDealMarginPercent
	}
	return stats
}

// DealNumber formats the sequence-th deal number of a year (TF-2024-001).
func DealNumber(year, sequence int) string {
	return fmt.Sprintf("%s-%d-%03d", constants.DealNumberPrefix, year, sequence)
}

// nextSequence is one past the highest sequence among deal numbers of any
// year. Numbers that do not parse are skipped.
func nextSequence(deals []domain.TraderDeal) int {
	highest := 0
	for _, deal := range deals {
		idx := strings.LastIndex(deal.DealNumber, "-")
		if idx < 0 {
			continue
		}
		sequence, err := strconv.Atoi(deal.DealNumber[idx+1:])
		if err != nil {
			continue
		}
		if sequence > highest {
			highest = sequence
		}
	}
	return highest + 1
}
