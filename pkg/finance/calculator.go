package finance

import (
	"github.com/iwvelando/dealer-finance/pkg/amortization"
	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/iwvelando/dealer-finance/pkg/mathutil"
)

// CalculatorInput holds the buyer-facing finance calculator fields.
type CalculatorInput struct {
	CarPrice             float64 `json:"carPrice" yaml:"carPrice"`
	DownPayment          float64 `json:"downPayment" yaml:"downPayment"`
	TermYears            int     `json:"termYears" yaml:"termYears"`
	InterestRate         float64 `json:"interestRate" yaml:"interestRate"`
	InsuranceCostPerYear float64 `json:"insuranceCostPerYear,omitempty" yaml:"insuranceCostPerYear"`
	ProcessingFee        float64 `json:"processingFee,omitempty" yaml:"processingFee"`
}

// CalculatorResult is the full breakdown shown to a buyer.
type CalculatorResult struct {
	amortization.LoanResult
	FinancedAmount      float64 `json:"financedAmount"`
	TotalCost           float64 `json:"totalCost"`
	MonthlyInsurance    float64 `json:"monthlyInsurance"`
	TotalMonthlyPayment float64 `json:"totalMonthlyPayment"`
	DownPaymentPercent  float64 `json:"downPaymentPercent"`
	InterestPercent     float64 `json:"interestPercent"`
}

// Calculate runs the direct finance calculator. The down payment must be
// below the car price and at least the policy's minimum share of it.
func Calculate(input CalculatorInput, policy Policy) (CalculatorResult, error) {
	policy = policy.Normalize()

	if input.DownPayment >= input.CarPrice {
		return CalculatorResult{}, violation(ErrDownPaymentTooHigh,
			"down payment %.2f, car price %.2f", input.DownPayment, input.CarPrice)
	}
	minimum := mathutil.ApplyPercentage(input.CarPrice, policy.MinDownPaymentPercent)
	if input.DownPayment < minimum {
		return CalculatorResult{}, violation(ErrDownPaymentBelowMinimum,
			"minimum is %.0f%% (%.2f), got %.2f", policy.MinDownPaymentPercent, minimum, input.DownPayment)
	}

	financedAmount := input.CarPrice - input.DownPayment
	loan, err := amortization.Compute(amortization.LoanInput{
		Principal:         financedAmount,
		AnnualRatePercent: input.InterestRate,
		TermYears:         input.TermYears,
	})
	if err != nil {
		return CalculatorResult{}, err
	}

	monthlyInsurance := input.InsuranceCostPerYear / constants.MonthsPerYear
	return CalculatorResult{
		LoanResult:          loan,
		FinancedAmount:      financedAmount,
		TotalCost:           TotalCost(input.CarPrice, loan.TotalInterest, input.InsuranceCostPerYear, input.TermYears, input.ProcessingFee),
		MonthlyInsurance:    monthlyInsurance,
		TotalMonthlyPayment: loan.MonthlyPayment + monthlyInsurance,
		DownPaymentPercent:  mathutil.CalculatePercentage(input.DownPayment, input.CarPrice),
		InterestPercent:     mathutil.CalculatePercentage(loan.TotalInterest, financedAmount),
	}, nil
}

// TotalCost is what the buyer pays over the life of the loan: the car price
// (down payment plus financed amount), the interest, yearly insurance for
// every year of the term and the one-off processing fee. It starts from the
// car price rather than the financed principal.
func TotalCost(carPrice, totalInterest, insuranceCostPerYear float64, termYears int, processingFee float64) float64 {
	return carPrice + totalInterest + insuranceCostPerYear*float64(termYears) + processingFee
}
