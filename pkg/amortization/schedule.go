package amortization

import "github.com/iwvelando/dealer-finance/pkg/mathutil"

// Payment holds the values for a given payment period.
type Payment struct {
	Period             int     `json:"period"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// MaxScheduleYears bounds the term of a materialized schedule, one row per
// month.
const MaxScheduleYears = 100

// Schedule produces the month-by-month amortization table for a loan. The
// periodic payment comes from Compute so the table always agrees with it.
func Schedule(input LoanInput) ([]Payment, error) {
	result, err := Compute(input)
	if err != nil {
		return nil, err
	}
	if input.TermYears > MaxScheduleYears {
		return nil, &InvalidInputError{Field: "termYears", Value: float64(input.TermYears), Reason: "is too long for a payment schedule"}
	}

	schedule := make([]Payment, 0, result.NumberOfPayments)
	remaining := input.Principal
	for period := 1; period <= result.NumberOfPayments; period++ {
		var current Payment
		current.Period = period
		current.Payment = result.MonthlyPayment
		current.Interest = InterestPayment(remaining, input.AnnualRatePercent)
		current.Principal = result.MonthlyPayment - current.Interest

		if period == result.NumberOfPayments || mathutil.IsZero(remaining-current.Principal) {
			// We will get machine error otherwise so just set to 0.
			current.RemainingPrincipal = 0
		} else {
			current.RemainingPrincipal = remaining - current.Principal
		}
		schedule = append(schedule, current)
		if current.RemainingPrincipal == 0 {
			break
		}
		remaining = current.RemainingPrincipal
	}

	return schedule, nil
}
