// Package finance layers the dealership's three calculators on top of the
// shared amortization engine: the buyer-facing finance calculator, the
// finance-rule profit calculator and the trader-deal calculator.
package finance

import (
	"errors"
	"fmt"
)

// Business-rule sentinels. Each is checked by the calculator before the
// amortization engine is invoked.
var (
	ErrDownPaymentTooHigh       = errors.New("down payment must be less than the car price")
	ErrDownPaymentBelowMinimum  = errors.New("down payment is below the required minimum")
	ErrSellingPriceNotAboveCost = errors.New("selling price must be greater than the car cost")
	ErrFinancingNotBelowValue   = errors.New("financing amount must be less than the car value")
)

// RuleViolationError describes a rejected calculation and wraps one of the
// business-rule sentinels.
type RuleViolationError struct {
	Rule   error
	Detail string
}

func (e *RuleViolationError) Error() string {
	if e.Detail == "" {
		return e.Rule.Error()
	}
	return fmt.Sprintf("%s: %s", e.Rule.Error(), e.Detail)
}

func (e *RuleViolationError) Unwrap() error {
	return e.Rule
}

func violation(rule error, format string, args ...interface{}) error {
	return &RuleViolationError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}
