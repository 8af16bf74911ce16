// Package quote evaluates the quotes declared in a configuration.
package quote

import (
	"fmt"

	"github.com/iwvelando/dealer-finance/internal/config"
	"github.com/iwvelando/dealer-finance/internal/domain"
	"github.com/iwvelando/dealer-finance/internal/rules"
	"github.com/iwvelando/dealer-finance/pkg/amortization"
	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/iwvelando/dealer-finance/pkg/datetime"
	"github.com/iwvelando/dealer-finance/pkg/finance"
	"github.com/iwvelando/dealer-finance/pkg/validation"
	"go.uber.org/zap"
)

// Result holds the outcome of one quote. Exactly one of Calculator, Profit
// and Trader is set unless Error is.
type Result struct {
	Name       string                    `json:"name"`
	Kind       string                    `json:"kind"`
	Calculator *finance.CalculatorResult `json:"calculator,omitempty"`
	Profit     *finance.ProfitResult     `json:"profit,omitempty"`
	Trader     *finance.TraderResult     `json:"trader,omitempty"`
	Schedule   []ScheduledPayment        `json:"schedule,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// ScheduledPayment is a schedule row with its payment date, when the quote
// declares a start date.
type ScheduledPayment struct {
	amortization.Payment
	Date string `json:"date,omitempty"`
}

// Loan returns the engine figures of whichever calculator ran.
func (r Result) Loan() (amortization.LoanResult, bool) {
	switch {
	case r.Calculator != nil:
		return r.Calculator.LoanResult, true
	case r.Profit != nil:
		return r.Profit.LoanResult, true
	case r.Trader != nil:
		return r.Trader.LoanResult, true
	}
	return amortization.LoanResult{}, false
}

// Evaluate runs every quote in conf. A quote that breaks a business rule or
// has invalid input is reported in its Result; an unknown kind fails the
// whole evaluation.
func Evaluate(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, 0, len(conf.Quotes))
	for _, q := range conf.Quotes {
		if err := validation.ValidateQuoteKind(q.Kind); err != nil {
			return nil, fmt.Errorf("quote %s: %w", q.Name, err)
		}

		result, err := evaluateOne(q, conf.Finance)
		if err != nil {
			logger.Warn("quote rejected",
				zap.String("op", "quote.Evaluate"),
				zap.String("quote", q.Name),
				zap.Error(err),
			)
			result = Result{Name: q.Name, Kind: q.Kind, Error: err.Error()}
		}
		results = append(results, result)
	}

	logger.Debug("quotes evaluated",
		zap.String("op", "quote.Evaluate"),
		zap.Int("quotes", len(results)),
	)
	return results, nil
}

func evaluateOne(q config.Quote, policy finance.Policy) (Result, error) {
	result := Result{Name: q.Name, Kind: q.Kind}
	var loan amortization.LoanInput

	switch q.Kind {
	case constants.QuoteKindCalculator:
		calc, err := finance.Calculate(q.Calculator, policy)
		if err != nil {
			return result, err
		}
		result.Calculator = &calc
		loan = amortization.LoanInput{
			Principal:         calc.FinancedAmount,
			AnnualRatePercent: q.Calculator.InterestRate,
			TermYears:         q.Calculator.TermYears,
		}
	case constants.QuoteKindProfit:
		terms, err := ruleTerms(q)
		if err != nil {
			return result, err
		}
		profit, err := finance.CalculateProfit(q.Profit, terms)
		if err != nil {
			return result, err
		}
		result.Profit = &profit
		loan = amortization.LoanInput{
			Principal:         profit.FinancedAmount,
			AnnualRatePercent: terms.InterestRate,
			TermYears:         terms.MaxPeriodYears,
		}
	case constants.QuoteKindTrader:
		trader, err := finance.CalculateTrader(q.Trader, policy)
		if err != nil {
			return result, err
		}
		result.Trader = &trader
		loan = amortization.LoanInput{
			Principal:         q.Trader.FinancingAmount,
			AnnualRatePercent: q.Trader.TraderRate,
			TermYears:         q.Trader.TermYears,
		}
	}

	if q.Schedule {
		schedule, err := Schedule(loan, q.StartDate)
		if err != nil {
			return result, err
		}
		result.Schedule = schedule
	}
	return result, nil
}

// ruleTerms returns the quote's explicit rule, or the default rule of its
// rule type.
func ruleTerms(q config.Quote) (finance.RuleTerms, error) {
	if q.Rule != (finance.RuleTerms{}) {
		return q.Rule, nil
	}
	if q.RuleType == "" {
		return finance.RuleTerms{}, fmt.Errorf("profit quote needs rule terms or a ruleType")
	}
	for _, rule := range rules.DefaultRules() {
		if rule.CarType == domain.Category(q.RuleType) {
			return rule.Terms(), nil
		}
	}
	return finance.RuleTerms{}, fmt.Errorf("no default finance rule for car type %q", q.RuleType)
}

// Schedule builds the amortization table of loan. When startDate is a valid
// date each row carries its payment date, one month apart.
func Schedule(loan amortization.LoanInput, startDate string) ([]ScheduledPayment, error) {
	payments, err := amortization.Schedule(loan)
	if err != nil {
		return nil, err
	}

	dated := datetime.ValidDate(startDate)
	rows := make([]ScheduledPayment, len(payments))
	for i, payment := range payments {
		rows[i].Payment = payment
		if dated {
			date, err := datetime.OffsetDate(startDate, payment.Period-1)
			if err != nil {
				return nil, err
			}
			rows[i].Date = date
		}
	}
	return rows, nil
}
