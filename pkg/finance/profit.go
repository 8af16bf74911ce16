package finance

import (
	"github.com/iwvelando/dealer-finance/pkg/amortization"
	"github.com/iwvelando/dealer-finance/pkg/mathutil"
)

// RuleTerms are the parts of a finance rule the profit calculator needs.
type RuleTerms struct {
	InterestRate          float64 `json:"interestRate" yaml:"interestRate"`
	MaxPeriodYears        int     `json:"maxPeriodYears" yaml:"maxPeriodYears"`
	MinDownPaymentPercent float64 `json:"minDownPaymentPercent" yaml:"minDownPaymentPercent"`
}

// ProfitInput holds the dealer-facing profit calculator fields.
type ProfitInput struct {
	CarCost      float64 `json:"carCost" yaml:"carCost"`
	SellingPrice float64 `json:"sellingPrice" yaml:"sellingPrice"`
	DownPayment  float64 `json:"downPayment" yaml:"downPayment"`
}

// Profit holds the derived profit figures.
type Profit struct {
	GrossProfit  float64 `json:"grossProfit"`
	NetProfit    float64 `json:"netProfit"`
	ProfitMargin float64 `json:"profitMargin"`
}

// ProfitResult is the full breakdown of a financed sale.
type ProfitResult struct {
	amortization.LoanResult
	Profit
	FinancedAmount     float64 `json:"financedAmount"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
}

// CalculateProfit finances the selling price less the down payment under
// the given rule terms and reports the dealer's profit on the sale.
func CalculateProfit(input ProfitInput, terms RuleTerms) (ProfitResult, error) {
	if input.CarCost >= input.SellingPrice {
		return ProfitResult{}, violation(ErrSellingPriceNotAboveCost,
			"cost %.2f, selling price %.2f", input.CarCost, input.SellingPrice)
	}

	downPaymentPercent := mathutil.CalculatePercentage(input.DownPayment, input.SellingPrice)
	if downPaymentPercent < terms.MinDownPaymentPercent {
		return ProfitResult{}, violation(ErrDownPaymentBelowMinimum,
			"minimum is %.0f%%, got %.2f%%", terms.MinDownPaymentPercent, downPaymentPercent)
	}

	financedAmount := input.SellingPrice - input.DownPayment
	loan, err := amortization.Compute(amortization.LoanInput{
		Principal:         financedAmount,
		AnnualRatePercent: terms.InterestRate,
		TermYears:         terms.MaxPeriodYears,
	})
	if err != nil {
		return ProfitResult{}, err
	}

	return ProfitResult{
		LoanResult:         loan,
		Profit:             ProfitFigures(input.CarCost, input.SellingPrice, loan.TotalInterest),
		FinancedAmount:     financedAmount,
		DownPaymentPercent: downPaymentPercent,
	}, nil
}

// ProfitFigures derives the profit on a financed sale. The margin is taken
// on cost, not on price, so it can exceed 100; a zero cost yields a zero
// margin.
func ProfitFigures(carCost, sellingPrice, totalInterest float64) Profit {
	grossProfit := sellingPrice - carCost
	netProfit := grossProfit + totalInterest
	return Profit{
		GrossProfit:  grossProfit,
		NetProfit:    netProfit,
		ProfitMargin: mathutil.CalculatePercentage(netProfit, carCost),
	}
}
