// Package output provides utilities for formatting and displaying quote results.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/dealer-finance/internal/quote"
	"github.com/iwvelando/dealer-finance/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type figure struct {
	label   string
	value   float64
	percent bool
	count   bool
}

// figures lists the reported values of a result in display order.
func figures(r quote.Result) []figure {
	loan, ok := r.Loan()
	if !ok {
		return nil
	}

	var list []figure
	switch {
	case r.Calculator != nil:
		c := r.Calculator
		list = append(list,
			figure{label: "Financed amount", value: c.FinancedAmount},
			figure{label: "Down payment", value: c.DownPaymentPercent, percent: true},
		)
	case r.Profit != nil:
		p := r.Profit
		list = append(list,
			figure{label: "Financed amount", value: p.FinancedAmount},
			figure{label: "Down payment", value: p.DownPaymentPercent, percent: true},
		)
	case r.Trader != nil:
		tr := r.Trader
		list = append(list,
			figure{label: "Financed amount", value: tr.FinancingAmount},
			figure{label: "Down payment", value: tr.DownPayment},
			figure{label: "Down payment share", value: tr.DownPaymentPercent, percent: true},
		)
	}

	list = append(list,
		figure{label: "Payments", value: float64(loan.NumberOfPayments), count: true},
		figure{label: "Monthly payment", value: loan.MonthlyPayment},
		figure{label: "Total payments", value: loan.TotalPayments},
		figure{label: "Total interest", value: loan.TotalInterest},
	)

	switch {
	case r.Calculator != nil:
		c := r.Calculator
		list = append(list,
			figure{label: "Interest share", value: c.InterestPercent, percent: true},
			figure{label: "Monthly insurance", value: c.MonthlyInsurance},
			figure{label: "Total monthly payment", value: c.TotalMonthlyPayment},
			figure{label: "Total cost", value: c.TotalCost},
		)
	case r.Profit != nil:
		p := r.Profit
		list = append(list,
			figure{label: "Gross profit", value: p.GrossProfit},
			figure{label: "Net profit", value: p.NetProfit},
			figure{label: "Profit margin", value: p.ProfitMargin, percent: true},
		)
	case r.Trader != nil:
		tr := r.Trader
		list = append(list,
			figure{label: "Trader share", value: tr.TraderSharePercent, percent: true},
			figure{label: "Trader profit", value: tr.TraderProfit},
			figure{label: "Company profit", value: tr.CompanyProfit},
		)
	}
	return list
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []quote.Result) {
	WritePretty(os.Stdout, results)
}

// WritePretty writes the human-readable tables to w.
func WritePretty(w io.Writer, results []quote.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Quote %s (%s) ---\n", result.Name, result.Kind)
		if result.Error != "" {
			_, _ = fmt.Fprintf(w, "Rejected: %s\n", result.Error)
		}
		for _, f := range figures(result) {
			switch {
			case f.count:
				_, _ = p.Fprintf(w, "%-22s | %d\n", f.label, int(f.value))
			case f.percent:
				_, _ = fmt.Fprintf(w, "%-22s | %s\n", f.label, format.Percent(f.value))
			default:
				_, _ = fmt.Fprintf(w, "%-22s | %s\n", f.label, format.Currency(f.value))
			}
		}
		if len(result.Schedule) > 0 {
			_, _ = fmt.Fprintf(w, "\nPeriod | Date       | Payment      | Principal    | Interest     | Remaining\n")
			_, _ = fmt.Fprintf(w, "______ | __________ | ____________ | ____________ | ____________ | _________\n")
			for _, row := range result.Schedule {
				_, _ = p.Fprintf(w, "%6d | %-10s | %12.2f | %12.2f | %12.2f | %.2f\n",
					row.Period, row.Date, row.Payment.Payment, row.Principal, row.Interest, row.RemainingPrincipal)
			}
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []quote.Result) {
	_, _ = fmt.Fprint(os.Stdout, CsvString(results))
}

// CsvString renders the results as CSV, one row per reported value. Schedules
// are omitted; rejected quotes produce a single error row.
func CsvString(results []quote.Result) string {
	var b strings.Builder
	b.WriteString(`"quote","kind","metric","value"` + "\n")
	for _, result := range results {
		if result.Error != "" {
			fmt.Fprintf(&b, "%s,%s,\"error\",%s\n", quoted(result.Name), quoted(result.Kind), quoted(result.Error))
			continue
		}
		for _, f := range figures(result) {
			value := fmt.Sprintf("%.2f", f.value)
			if f.count {
				value = fmt.Sprintf("%d", int(f.value))
			}
			fmt.Fprintf(&b, "%s,%s,%s,%s\n", quoted(result.Name), quoted(result.Kind), quoted(f.label), quoted(value))
		}
	}
	return b.String()
}

func quoted(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
