// Package format renders monetary amounts and percentages for display.
package format

import (
	"strings"

	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns an amount with the currency code and thousands separators
// (e.g., "-SAR 1,234.56").
func Currency(amount float64) string {
	formatted := NumericCurrency(amount)
	if strings.HasPrefix(formatted, "-") {
		return "-" + constants.CurrencyCode + " " + formatted[1:]
	}
	return constants.CurrencyCode + " " + formatted
}

// NumericCurrency returns an amount without a currency code but with
// separators (e.g., "-1,234.56"). Halves round away from zero.
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + groupThousands(d.StringFixed(constants.CurrencyPlaces))
}

// Percent renders a percentage with two decimals (e.g., "28.66%").
func Percent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(constants.CurrencyPlaces) + "%"
}

func groupThousands(formatted string) string {
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
