// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/dealer-finance/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateStorageBackend checks if the storage back end is supported. An
// empty back end means memory.
func ValidateStorageBackend(backend string) error {
	switch backend {
	case "", constants.StorageMemory, constants.StorageRedis, constants.StoragePostgres:
		return nil
	}
	return fmt.Errorf("expected storage backend of %s, %s or %s, got %s",
		constants.StorageMemory, constants.StorageRedis, constants.StoragePostgres, backend)
}

// ValidateQuoteKind checks if a quote kind is one of the supported calculators.
func ValidateQuoteKind(kind string) error {
	switch kind {
	case constants.QuoteKindCalculator, constants.QuoteKindProfit, constants.QuoteKindTrader:
		return nil
	}
	return fmt.Errorf("expected quote kind of %s, %s or %s, got %q",
		constants.QuoteKindCalculator, constants.QuoteKindProfit, constants.QuoteKindTrader, kind)
}
