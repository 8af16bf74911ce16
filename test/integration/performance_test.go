package integration

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/dealer-finance/internal/config"
	"github.com/iwvelando/dealer-finance/internal/quote"
	"github.com/iwvelando/dealer-finance/pkg/amortization"
	"go.uber.org/zap"
)

// manyQuotes builds a configuration with n scheduled calculator quotes.
func manyQuotes(t testing.TB, n int) *config.Configuration {
	t.Helper()

	var b strings.Builder
	b.WriteString("quotes:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `  - name: quote %d
    kind: calculator
    schedule: true
    startDate: "2026-01-01"
    calculator: {carPrice: %d, downPayment: %d, termYears: %d, interestRate: 4.5}
`, i, 200000+i*1000, 60000+i*200, 1+i%7)
	}

	conf, err := config.LoadConfigurationFromReader(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	return conf
}

func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	conf := manyQuotes(t, 200)

	start := time.Now()
	results, err := quote.Evaluate(zap.NewNop(), *conf)
	duration := time.Since(start)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if len(results) != 200 {
		t.Fatalf("expected 200 results, got %d", len(results))
	}
	for _, result := range results {
		if result.Error != "" {
			t.Fatalf("quote %s rejected: %s", result.Name, result.Error)
		}
	}

	maxDuration := 2 * time.Second
	if duration > maxDuration {
		t.Errorf("evaluating 200 quotes took %v, expected under %v", duration, maxDuration)
	}
	t.Logf("evaluated %d quotes in %v", len(results), duration)
}

func BenchmarkEvaluate(b *testing.B) {
	conf := manyQuotes(b, 20)
	logger := zap.NewNop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := quote.Evaluate(logger, *conf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSchedule(b *testing.B) {
	loan := amortization.LoanInput{Principal: 230000, AnnualRatePercent: 4.5, TermYears: 7}

	for i := 0; i < b.N; i++ {
		if _, err := quote.Schedule(loan, "2026-01-01"); err != nil {
			b.Fatal(err)
		}
	}
}
