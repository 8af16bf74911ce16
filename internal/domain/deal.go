package domain

import (
	"time"

	"github.com/google/uuid"
)

// DealStatus is the lifecycle state of a trader deal.
type DealStatus string

const (
	DealActive    DealStatus = "active"
	DealCompleted DealStatus = "completed"
	DealCancelled DealStatus = "cancelled"
	DealDefaulted DealStatus = "defaulted"
)

// TraderDeal is a financing agreement brokered by a trader.
type TraderDeal struct {
	ID              uuid.UUID  `json:"id"`
	DealNumber      string     `json:"dealNumber"`
	TraderName      string     `json:"traderName" yaml:"traderName"`
	CarType         Category   `json:"carType" yaml:"carType"`
	FinancingAmount float64    `json:"financingAmount" yaml:"financingAmount"`
	DownPayment     float64    `json:"downPayment" yaml:"downPayment"`
	MonthlyPayment  float64    `json:"monthlyPayment" yaml:"monthlyPayment"`
	Status          DealStatus `json:"status" yaml:"status"`
	StartDate       string     `json:"startDate" yaml:"startDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt,omitempty"`
}

// EntityID returns the deal's identifier.
func (d TraderDeal) EntityID() uuid.UUID {
	return d.ID
}

// Validate checks the deal's fields.
func (d TraderDeal) Validate() error {
	p := problems{entity: "trader deal"}
	p.required("traderName", d.TraderName)
	if !d.CarType.Valid() {
		p.addf("carType %q is not one of %v", d.CarType, Categories)
	}
	if d.FinancingAmount <= 0 {
		p.addf("financingAmount must be greater than zero")
	}
	if d.DownPayment < 0 {
		p.addf("downPayment must not be negative")
	}
	if d.MonthlyPayment < 0 {
		p.addf("monthlyPayment must not be negative")
	}
	switch d.Status {
	case DealActive, DealCompleted, DealCancelled, DealDefaulted:
	default:
		p.addf("status must be %s, %s, %s or %s", DealActive, DealCompleted, DealCancelled, DealDefaulted)
	}
	return p.err()
}
