package amortization

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeConcreteLoan(t *testing.T) {
	result, err := Compute(LoanInput{Principal: 230000, AnnualRatePercent: 4.5, TermYears: 5})
	require.NoError(t, err)

	assert.InDelta(t, 0.00375, result.MonthlyRate, 1e-15)
	assert.Equal(t, 60, result.NumberOfPayments)
	assert.InDelta(t, 4287.89, result.MonthlyPayment, 0.005)
	assert.InDelta(t, 257273.67, result.TotalPayments, 0.01)
	assert.InDelta(t, 27273.67, result.TotalInterest, 0.01)
}

func TestComputeMatchesReferencePayment(t *testing.T) {
	tests := []struct {
		name     string
		input    LoanInput
		expected float64
	}{
		{
			name:     "30-year mortgage",
			input:    LoanInput{Principal: 175000, AnnualRatePercent: 4.5, TermYears: 30},
			expected: 886.70,
		},
		{
			name:     "30-year at 6 percent",
			input:    LoanInput{Principal: 240000, AnnualRatePercent: 6.0, TermYears: 30},
			expected: 1438.92,
		},
		{
			name:     "5-year car loan",
			input:    LoanInput{Principal: 20000, AnnualRatePercent: 4.0, TermYears: 5},
			expected: 368.33,
		},
		{
			name:     "3-year high interest",
			input:    LoanInput{Principal: 10000, AnnualRatePercent: 18.0, TermYears: 3},
			expected: 361.52,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.input)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if math.Abs(result.MonthlyPayment-tt.expected) > 0.01 {
				t.Errorf("Compute() monthly payment = %.2f, expected %.2f", result.MonthlyPayment, tt.expected)
			}
		})
	}
}

func TestComputeZeroInterest(t *testing.T) {
	for _, principal := range []float64{1, 12000, 99999.99, 230000} {
		for _, years := range []int{1, 3, 5, 7} {
			result, err := Compute(LoanInput{Principal: principal, AnnualRatePercent: 0, TermYears: years})
			require.NoError(t, err)

			assert.Equal(t, principal/float64(years*12), result.MonthlyPayment)
			assert.InDelta(t, 0, result.TotalInterest, 1e-9*principal)
			assert.Equal(t, 0.0, result.MonthlyRate)
		}
	}
}

func TestComputeRateMonotonicity(t *testing.T) {
	previous := -1.0
	for _, rate := range []float64{0, 0.25, 1, 2.5, 4.5, 5, 5.5, 10, 18, 30} {
		result, err := Compute(LoanInput{Principal: 150000, AnnualRatePercent: rate, TermYears: 5})
		require.NoError(t, err)
		assert.Greater(t, result.MonthlyPayment, previous, "rate %v", rate)
		previous = result.MonthlyPayment
	}
}

func TestComputeTermMonotonicity(t *testing.T) {
	var previous LoanResult
	for i, years := range []int{1, 2, 3, 4, 5, 6, 7, 10, 15, 30} {
		result, err := Compute(LoanInput{Principal: 150000, AnnualRatePercent: 4.5, TermYears: years})
		require.NoError(t, err)
		if i > 0 {
			assert.Less(t, result.MonthlyPayment, previous.MonthlyPayment, "term %d", years)
			assert.Greater(t, result.TotalInterest, previous.TotalInterest, "term %d", years)
		}
		previous = result
	}
}

func TestComputeExtremeInputsStayFinite(t *testing.T) {
	tests := []struct {
		name  string
		input LoanInput
	}{
		{"Very high rate", LoanInput{Principal: 1000, AnnualRatePercent: 10000, TermYears: 30}},
		{"Very long term", LoanInput{Principal: 1000, AnnualRatePercent: 10, TermYears: 10000}},
		{"Longest term", LoanInput{Principal: 1000, AnnualRatePercent: 5, TermYears: MaxTermYears}},
		{"Large principal", LoanInput{Principal: 1e12, AnnualRatePercent: 300, TermYears: 1000}},
		{"Tiny rate", LoanInput{Principal: 230000, AnnualRatePercent: 1e-9, TermYears: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.input)
			require.NoError(t, err)
			assert.Positive(t, result.NumberOfPayments)
			for _, value := range []float64{result.MonthlyPayment, result.TotalPayments, result.TotalInterest} {
				assert.False(t, math.IsNaN(value) || math.IsInf(value, 0), "got %v", value)
			}

			// The payment never falls below the first month's interest.
			interest := tt.input.Principal * result.MonthlyRate
			assert.GreaterOrEqual(t, result.MonthlyPayment, interest)
			assert.GreaterOrEqual(t, result.TotalInterest, 0.0)
		})
	}
}

func TestComputeLongTermPaymentApproachesInterest(t *testing.T) {
	result, err := Compute(LoanInput{Principal: 1000, AnnualRatePercent: 10000, TermYears: 30})
	require.NoError(t, err)
	assert.InDelta(t, 1000*result.MonthlyRate, result.MonthlyPayment, 1e-6)

	result, err = Compute(LoanInput{Principal: 1000, AnnualRatePercent: 10, TermYears: 10000})
	require.NoError(t, err)
	assert.InDelta(t, 1000*result.MonthlyRate, result.MonthlyPayment, 1e-6)
}

func TestComputeMonotonicityAtExtremes(t *testing.T) {
	previous := 0.0
	for _, rate := range []float64{1, 10, 100, 1000, 10000} {
		result, err := Compute(LoanInput{Principal: 1000, AnnualRatePercent: rate, TermYears: 10000})
		require.NoError(t, err)
		assert.Greater(t, result.MonthlyPayment, previous, "rate %v", rate)
		previous = result.MonthlyPayment
	}

	previous = math.Inf(1)
	for _, years := range []int{1, 10, 100, 1000, MaxTermYears} {
		result, err := Compute(LoanInput{Principal: 1000, AnnualRatePercent: 10000, TermYears: years})
		require.NoError(t, err)
		assert.LessOrEqual(t, result.MonthlyPayment, previous, "term %d", years)
		previous = result.MonthlyPayment
	}
}

func TestComputeIdentities(t *testing.T) {
	inputs := []LoanInput{
		{Principal: 230000, AnnualRatePercent: 4.5, TermYears: 5},
		{Principal: 1, AnnualRatePercent: 0.01, TermYears: 1},
		{Principal: 180000, AnnualRatePercent: 0, TermYears: 7},
		{Principal: 999999.99, AnnualRatePercent: 24, TermYears: 30},
	}

	for _, input := range inputs {
		result, err := Compute(input)
		require.NoError(t, err)
		assert.Equal(t, result.MonthlyPayment*float64(result.NumberOfPayments), result.TotalPayments)
		assert.Equal(t, result.TotalPayments-input.Principal, result.TotalInterest)
	}
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input LoanInput
		field string
	}{
		{"Zero principal", LoanInput{Principal: 0, AnnualRatePercent: 4.5, TermYears: 5}, "principal"},
		{"Negative principal", LoanInput{Principal: -100, AnnualRatePercent: 4.5, TermYears: 5}, "principal"},
		{"Negative rate", LoanInput{Principal: 1000, AnnualRatePercent: -1, TermYears: 5}, "annualRatePercent"},
		{"Zero term", LoanInput{Principal: 1000, AnnualRatePercent: 4.5, TermYears: 0}, "termYears"},
		{"NaN principal", LoanInput{Principal: math.NaN(), AnnualRatePercent: 4.5, TermYears: 5}, "principal"},
		{"Infinite rate", LoanInput{Principal: 1000, AnnualRatePercent: math.Inf(1), TermYears: 5}, "annualRatePercent"},
		{"Term overflows month count", LoanInput{Principal: 1000, AnnualRatePercent: 5, TermYears: math.MaxInt / 6}, "termYears"},
		{"Term one past the limit", LoanInput{Principal: 1000, AnnualRatePercent: 5, TermYears: MaxTermYears + 1}, "termYears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
			assert.Equal(t, LoanResult{}, result)
		})
	}
}

func TestInterestPayment(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		rate      float64
		expected  float64
	}{
		{"Standard mortgage interest", 200000, 6.0, 1000.0},
		{"Car loan interest", 15000, 4.5, 56.25},
		{"Zero interest", 10000, 0.0, 0.0},
		{"High interest", 5000, 24.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InterestPayment(tt.remaining, tt.rate)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("InterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}
