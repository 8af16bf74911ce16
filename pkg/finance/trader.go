package finance

import (
	"github.com/iwvelando/dealer-finance/pkg/amortization"
	"github.com/iwvelando/dealer-finance/pkg/mathutil"
)

// TraderInput holds the trader-deal calculator fields.
type TraderInput struct {
	TraderName      string  `json:"traderName,omitempty" yaml:"traderName"`
	CarType         string  `json:"carType,omitempty" yaml:"carType"`
	CarValue        float64 `json:"carValue" yaml:"carValue"`
	FinancingAmount float64 `json:"financingAmount" yaml:"financingAmount"`
	TraderRate      float64 `json:"traderRate" yaml:"traderRate"`
	TermYears       int     `json:"termYears" yaml:"termYears"`
}

// Split is the allocation of interest revenue between trader and company.
type Split struct {
	TraderProfit  float64 `json:"traderProfit"`
	CompanyProfit float64 `json:"companyProfit"`
}

// TraderResult is the full breakdown of a trader deal.
type TraderResult struct {
	amortization.LoanResult
	Split
	TraderName         string  `json:"traderName,omitempty"`
	CarType            string  `json:"carType,omitempty"`
	FinancingAmount    float64 `json:"financingAmount"`
	DownPayment        float64 `json:"downPayment"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	TraderSharePercent float64 `json:"traderSharePercent"`
}

// CalculateTrader finances a trader deal and splits the interest revenue
// according to the policy's trader share. There is no minimum down payment.
func CalculateTrader(input TraderInput, policy Policy) (TraderResult, error) {
	policy = policy.Normalize()

	if input.FinancingAmount >= input.CarValue {
		return TraderResult{}, violation(ErrFinancingNotBelowValue,
			"financing %.2f, car value %.2f", input.FinancingAmount, input.CarValue)
	}

	loan, err := amortization.Compute(amortization.LoanInput{
		Principal:         input.FinancingAmount,
		AnnualRatePercent: input.TraderRate,
		TermYears:         input.TermYears,
	})
	if err != nil {
		return TraderResult{}, err
	}

	downPayment := input.CarValue - input.FinancingAmount
	return TraderResult{
		LoanResult:         loan,
		Split:              SplitInterest(loan.TotalInterest, policy.TraderSharePercent),
		TraderName:         input.TraderName,
		CarType:            input.CarType,
		FinancingAmount:    input.FinancingAmount,
		DownPayment:        downPayment,
		DownPaymentPercent: mathutil.CalculatePercentage(downPayment, input.CarValue),
		TraderSharePercent: policy.TraderSharePercent,
	}, nil
}

// SplitInterest allocates traderSharePercent of the interest to the trader
// and the rest to the company.
func SplitInterest(totalInterest, traderSharePercent float64) Split {
	return Split{
		TraderProfit:  mathutil.ApplyPercentage(totalInterest, traderSharePercent),
		CompanyProfit: mathutil.ApplyPercentage(totalInterest, 100-traderSharePercent),
	}
}
