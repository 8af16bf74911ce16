// Package rules manages the finance rules that price dealer financing per
// car category.
package rules

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/dealer-finance/internal/domain"
	"github.com/iwvelando/dealer-finance/internal/storage"
	"github.com/iwvelando/dealer-finance/pkg/finance"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no rule has the requested ID.
	ErrNotFound = errors.New("finance rule not found")
	// ErrRuleInactive is returned when an inactive rule is used for a quote.
	ErrRuleInactive = errors.New("finance rule is inactive")
)

// Service stores finance rules and prices sales with them.
type Service struct {
	repo   storage.Repository[domain.FinanceRule]
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a rules service over repo.
func NewService(repo storage.Repository[domain.FinanceRule], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// DefaultRules returns the rules installed on first start.
func DefaultRules() []domain.FinanceRule {
	return []domain.FinanceRule{
		{Name: "Luxury cars", CarType: domain.CategoryLuxury, InterestRate: 4.5, MaxPeriodYears: 5, MinDownPaymentPercent: 25, Status: domain.RuleActive},
		{Name: "Classic cars", CarType: domain.CategoryClassic, InterestRate: 5.0, MaxPeriodYears: 7, MinDownPaymentPercent: 30, Status: domain.RuleActive},
		{Name: "Sports cars", CarType: domain.CategorySport, InterestRate: 5.5, MaxPeriodYears: 4, MinDownPaymentPercent: 20, Status: domain.RuleActive},
		{Name: "Family cars", CarType: domain.CategoryFamily, InterestRate: 4.0, MaxPeriodYears: 6, MinDownPaymentPercent: 20, Status: domain.RuleActive},
	}
}

// EnsureDefaults stores DefaultRules when no rules exist and reports how
// many were added.
func (s *Service) EnsureDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list finance rules: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	defaults := DefaultRules()
	for _, rule := range defaults {
		if _, err := s.Create(ctx, rule); err != nil {
			return 0, err
		}
	}
	return len(defaults), nil
}

// List returns every rule ordered by creation time, then name.
func (s *Service) List(ctx context.Context) ([]domain.FinanceRule, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance rules: %w", err)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.Before(rules[j].CreatedAt)
		}
		return rules[i].Name < rules[j].Name
	})
	return rules, nil
}

// Active returns the active rules, optionally narrowed to one car type.
func (s *Service) Active(ctx context.Context, carType domain.Category) ([]domain.FinanceRule, error) {
	rules, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]domain.FinanceRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Status != domain.RuleActive {
			continue
		}
		if carType != "" && rule.CarType != carType {
			continue
		}
		active = append(active, rule)
	}
	return active, nil
}

// Get returns a single rule.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.FinanceRule, error) {
	rule, err := s.repo.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.FinanceRule{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return domain.FinanceRule{}, fmt.Errorf("failed to get finance rule %s: %w", id, err)
	}
	return rule, nil
}

// Create validates and stores a new rule. An empty status means active.
func (s *Service) Create(ctx context.Context, rule domain.FinanceRule) (domain.FinanceRule, error) {
	rule.Name = strings.TrimSpace(rule.Name)
	if rule.Status == "" {
		rule.Status = domain.RuleActive
	}
	if err := rule.Validate(); err != nil {
		return domain.FinanceRule{}, err
	}

	rule.ID = uuid.New()
	rule.CreatedAt = s.now().UTC()
	rule.UpdatedAt = time.Time{}
	if err := s.repo.Save(ctx, rule); err != nil {
		return domain.FinanceRule{}, fmt.Errorf("failed to save finance rule: %w", err)
	}

	s.logger.Info("finance rule created",
		zap.String("op", "rules.Create"),
		zap.String("id", rule.ID.String()),
		zap.String("carType", string(rule.CarType)),
	)
	return rule, nil
}

// Update replaces the editable fields of an existing rule.
func (s *Service) Update(ctx context.Context, id uuid.UUID, rule domain.FinanceRule) (domain.FinanceRule, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.FinanceRule{}, err
	}

	rule.Name = strings.TrimSpace(rule.Name)
	if rule.Status == "" {
		rule.Status = existing.Status
	}
	if err := rule.Validate(); err != nil {
		return domain.FinanceRule{}, err
	}

	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, rule); err != nil {
		return domain.FinanceRule{}, fmt.Errorf("failed to save finance rule %s: %w", id, err)
	}
	return rule, nil
}

// Delete removes a rule.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete finance rule %s: %w", id, err)
	}

	s.logger.Info("finance rule deleted",
		zap.String("op", "rules.Delete"),
		zap.String("id", id.String()),
	)
	return nil
}

// Profit prices a sale under the rule with the given ID. The rule must be
// active.
func (s *Service) Profit(ctx context.Context, ruleID uuid.UUID, input finance.ProfitInput) (finance.ProfitResult, error) {
	rule, err := s.Get(ctx, ruleID)
	if err != nil {
		return finance.ProfitResult{}, err
	}
	if rule.Status != domain.RuleActive {
		return finance.ProfitResult{}, fmt.Errorf("%w: %s", ErrRuleInactive, rule.Name)
	}

	result, err := finance.CalculateProfit(input, rule.Terms())
	if err != nil {
		return finance.ProfitResult{}, fmt.Errorf("rule %s: %w", rule.Name, err)
	}

	s.logger.Debug("profit calculated",
		zap.String("op", "rules.Profit"),
		zap.String("rule", rule.Name),
		zap.Float64("netProfit", result.NetProfit),
	)
	return result, nil
}
