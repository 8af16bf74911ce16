package quote_test

import (
	"errors"
	"testing"

	"github.com/iwvelando/dealer-finance/internal/config"
	"github.com/iwvelando/dealer-finance/internal/quote"
	"github.com/iwvelando/dealer-finance/pkg/amortization"
	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/iwvelando/dealer-finance/pkg/finance"
	"github.com/iwvelando/dealer-finance/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEvaluateConfigurationFile(t *testing.T) {
	conf, err := config.LoadConfiguration("../config/testdata/config.yaml")
	require.NoError(t, err)

	results, err := quote.Evaluate(zap.NewNop(), *conf)
	require.NoError(t, err)
	require.Len(t, results, 3)

	calc := testutil.FindQuote(results, "GLE for a buyer")
	require.NotNil(t, calc)
	require.NotNil(t, calc.Calculator)
	assert.Empty(t, calc.Error)
	assert.Equal(t, 210000.0, calc.Calculator.FinancedAmount)
	require.Len(t, calc.Schedule, 60)
	assert.Equal(t, "2026-11-01", calc.Schedule[0].Date)
	assert.Equal(t, "2031-10-01", calc.Schedule[59].Date)
	assert.Equal(t, 0.0, calc.Schedule[59].RemainingPrincipal)

	profit := testutil.FindQuote(results, "Mustang margin")
	require.NotNil(t, profit)
	require.NotNil(t, profit.Profit)
	assert.Equal(t, 48, profit.Profit.NumberOfPayments, "sport rule runs four years")
	assert.Equal(t, 35000.0, profit.Profit.GrossProfit)
	assert.Nil(t, profit.Schedule)

	trader := testutil.FindQuote(results, "Trader deal")
	require.NotNil(t, trader)
	require.NotNil(t, trader.Trader)
	assert.Equal(t, 35.0, trader.Trader.TraderSharePercent)
	assert.Equal(t, 36000.0, trader.Trader.DownPayment)
}

func TestEvaluateRecordsRejectedQuotes(t *testing.T) {
	conf := config.Configuration{
		Quotes: []config.Quote{
			{
				Name: "Too little down",
				Kind: constants.QuoteKindCalculator,
				Calculator: finance.CalculatorInput{
					CarPrice: 100000, DownPayment: 10000, TermYears: 5, InterestRate: 4,
				},
			},
			{
				Name:     "Unknown rule type",
				Kind:     constants.QuoteKindProfit,
				RuleType: "truck",
				Profit:   finance.ProfitInput{CarCost: 1000, SellingPrice: 2000, DownPayment: 500},
			},
			{
				Name:   "No rule",
				Kind:   constants.QuoteKindProfit,
				Profit: finance.ProfitInput{CarCost: 1000, SellingPrice: 2000, DownPayment: 500},
			},
			{
				Name:   "Zero term",
				Kind:   constants.QuoteKindTrader,
				Trader: finance.TraderInput{CarValue: 100000, FinancingAmount: 80000, TraderRate: 5},
			},
		},
	}

	results, err := quote.Evaluate(nil, conf)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Contains(t, results[0].Error, finance.ErrDownPaymentBelowMinimum.Error())
	assert.Contains(t, results[1].Error, `"truck"`)
	assert.Contains(t, results[2].Error, "ruleType")
	assert.Contains(t, results[3].Error, "termYears")
	for _, result := range results {
		_, ok := result.Loan()
		assert.False(t, ok, result.Name)
	}
}

func TestEvaluateUnknownKind(t *testing.T) {
	conf := config.Configuration{Quotes: []config.Quote{{Name: "Lease", Kind: "lease"}}}
	_, err := quote.Evaluate(nil, conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lease")
}

func TestExplicitRuleWinsOverRuleType(t *testing.T) {
	conf := config.Configuration{Quotes: []config.Quote{{
		Name:     "Explicit",
		Kind:     constants.QuoteKindProfit,
		RuleType: "luxury",
		Rule:     finance.RuleTerms{InterestRate: 0, MaxPeriodYears: 2, MinDownPaymentPercent: 10},
		Profit:   finance.ProfitInput{CarCost: 100000, SellingPrice: 124000, DownPayment: 24000},
	}}}

	results, err := quote.Evaluate(nil, conf)
	require.NoError(t, err)
	require.NotNil(t, results[0].Profit)

	loan, ok := results[0].Loan()
	require.True(t, ok)
	assert.Equal(t, 24, loan.NumberOfPayments)
	assert.InDelta(t, 100000.0/24, loan.MonthlyPayment, 1e-9)
	assert.InDelta(t, 0, loan.TotalInterest, 1e-6)
}

func TestScheduleWithoutDates(t *testing.T) {
	rows, err := quote.Schedule(amortization.LoanInput{Principal: 12000, AnnualRatePercent: 0, TermYears: 1}, "")
	require.NoError(t, err)
	require.Len(t, rows, 12)
	for _, row := range rows {
		assert.Empty(t, row.Date)
		assert.InDelta(t, 1000, row.Payment.Payment, 1e-9)
	}

	_, err = quote.Schedule(amortization.LoanInput{Principal: -1, TermYears: 1}, "")
	assert.True(t, errors.Is(err, amortization.ErrInvalidInput))
}
