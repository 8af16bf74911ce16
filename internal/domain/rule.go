package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/dealer-finance/pkg/finance"
)

// RuleStatus is the lifecycle state of a finance rule.
type RuleStatus string

const (
	RuleActive   RuleStatus = "active"
	RuleInactive RuleStatus = "inactive"
)

// FinanceRule prices financing for one category of car.
type FinanceRule struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name" yaml:"name"`
	CarType               Category   `json:"carType" yaml:"carType"`
	InterestRate          float64    `json:"interestRate" yaml:"interestRate"`
	MaxPeriodYears        int        `json:"maxPeriodYears" yaml:"maxPeriodYears"`
	MinDownPaymentPercent float64    `json:"minDownPaymentPercent" yaml:"minDownPaymentPercent"`
	Status                RuleStatus `json:"status" yaml:"status"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt,omitempty"`
}

// EntityID returns the rule's identifier.
func (r FinanceRule) EntityID() uuid.UUID {
	return r.ID
}

// Terms returns the fields the profit calculator needs.
func (r FinanceRule) Terms() finance.RuleTerms {
	return finance.RuleTerms{
		InterestRate:          r.InterestRate,
		MaxPeriodYears:        r.MaxPeriodYears,
		MinDownPaymentPercent: r.MinDownPaymentPercent,
	}
}

// Validate checks the rule's fields.
func (r FinanceRule) Validate() error {
	p := problems{entity: "finance rule"}
	p.required("name", r.Name)
	if !r.CarType.Valid() {
		p.addf("carType %q is not one of %v", r.CarType, Categories)
	}
	if r.InterestRate < 0 {
		p.addf("interestRate must not be negative")
	}
	if r.MaxPeriodYears < 1 {
		p.addf("maxPeriodYears must be at least 1")
	}
	if r.MinDownPaymentPercent < 0 || r.MinDownPaymentPercent > 100 {
		p.addf("minDownPaymentPercent must be between 0 and 100")
	}
	if r.Status != RuleActive && r.Status != RuleInactive {
		p.addf("status must be %s or %s", RuleActive, RuleInactive)
	}
	return p.err()
}
