package finance

import "github.com/iwvelando/dealer-finance/pkg/constants"

// Policy holds the configurable knobs of the calculators. Zero values fall
// back to the dealership defaults.
type Policy struct {
	MinDownPaymentPercent float64 `yaml:"minDownPaymentPercent" json:"minDownPaymentPercent"`
	TraderSharePercent    float64 `yaml:"traderSharePercent" json:"traderSharePercent"`
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		MinDownPaymentPercent: constants.DefaultMinDownPaymentPercent,
		TraderSharePercent:    constants.DefaultTraderSharePercent,
	}
}

// Normalize fills unset fields with their defaults.
func (p Policy) Normalize() Policy {
	if p.MinDownPaymentPercent <= 0 {
		p.MinDownPaymentPercent = constants.DefaultMinDownPaymentPercent
	}
	if p.TraderSharePercent <= 0 {
		p.TraderSharePercent = constants.DefaultTraderSharePercent
	}
	return p
}
