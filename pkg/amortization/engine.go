// Package amortization computes fixed-rate loan payments.
//
// It is the single payment primitive shared by every finance calculator in the
// application. Results are returned at full precision; callers round for
// display.
package amortization

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/iwvelando/dealer-finance/pkg/mathutil"
)

// ErrInvalidInput is matched by every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid loan input")

// InvalidInputError reports a LoanInput that violates one of its invariants.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid loan input: %s %s (got %v)", e.Field, e.Reason, e.Value)
}

// Is makes errors.Is(err, ErrInvalidInput) succeed.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// LoanInput holds the parameters of a fixed-rate amortizing loan.
type LoanInput struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
}

// LoanResult holds the payment figures for a LoanInput.
type LoanResult struct {
	MonthlyRate      float64 `json:"monthlyRate"`
	NumberOfPayments int     `json:"numberOfPayments"`
	MonthlyPayment   float64 `json:"monthlyPayment"`
	TotalPayments    float64 `json:"totalPayments"`
	TotalInterest    float64 `json:"totalInterest"`
}

// MaxTermYears is the longest term whose payment count fits in an int.
const MaxTermYears = math.MaxInt / constants.MonthsPerYear

// Validate checks the LoanInput invariants.
func (in LoanInput) Validate() error {
	if !mathutil.IsFinite(in.Principal) || in.Principal <= 0 {
		return &InvalidInputError{Field: "principal", Value: in.Principal, Reason: "must be greater than zero"}
	}
	if !mathutil.IsFinite(in.AnnualRatePercent) || in.AnnualRatePercent < 0 {
		return &InvalidInputError{Field: "annualRatePercent", Value: in.AnnualRatePercent, Reason: "must not be negative"}
	}
	if in.TermYears < 1 {
		return &InvalidInputError{Field: "termYears", Value: float64(in.TermYears), Reason: "must be at least one year"}
	}
	if in.TermYears > MaxTermYears {
		return &InvalidInputError{Field: "termYears", Value: float64(in.TermYears), Reason: "is too long to count in months"}
	}
	return nil
}

// Compute calculates the monthly payment, total payments and total interest
// for a loan using the standard annuity payment formula.
func Compute(input LoanInput) (LoanResult, error) {
	if err := input.Validate(); err != nil {
		return LoanResult{}, err
	}

	monthlyRate := MonthlyRate(input.AnnualRatePercent)
	numberOfPayments := input.TermYears * constants.MonthsPerYear
	monthlyPayment := MonthlyPayment(input.Principal, monthlyRate, numberOfPayments)
	totalPayments := monthlyPayment * float64(numberOfPayments)

	return LoanResult{
		MonthlyRate:      monthlyRate,
		NumberOfPayments: numberOfPayments,
		MonthlyPayment:   monthlyPayment,
		TotalPayments:    totalPayments,
		TotalInterest:    totalPayments - input.Principal,
	}, nil
}

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// MonthlyPayment applies the annuity formula P*r*(1+r)^n / ((1+r)^n - 1),
// rewritten as P*r / (1 - (1+r)^-n) so that long terms and high rates do not
// overflow; the payment tends to P*r as n grows. A zero rate divides the
// principal evenly since the formula degenerates to 0/0.
func MonthlyPayment(principal, monthlyRate float64, numberOfPayments int) float64 {
	if monthlyRate == 0 {
		return principal / float64(numberOfPayments)
	}
	return principal * monthlyRate / -math.Expm1(-float64(numberOfPayments)*math.Log1p(monthlyRate))
}

// InterestPayment calculates the interest portion of a payment.
func InterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * MonthlyRate(annualRatePercent)
}
