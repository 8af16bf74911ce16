// Package constants provides shared constants for the dealer-finance application.
package constants

// DateLayout is the format used for deal start dates and is also the output
// date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places shown for currency values
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// CurrencyCode is printed ahead of formatted amounts
	CurrencyCode = "SAR"
)

// Finance policy defaults
const (
	// DefaultMinDownPaymentPercent is the minimum down payment, as a percentage
	// of the car price, enforced by the direct finance calculator.
	DefaultMinDownPaymentPercent = 20.0

	// DefaultTraderSharePercent is the share of total interest paid out to the
	// trader on a trader deal; the company keeps the remainder.
	DefaultTraderSharePercent = 30.0

	// CompletedDealMarginPercent is the flat margin reported on the deals
	// dashboard once any completed revenue exists.
	CompletedDealMarginPercent = 15.0

	// DealNumberPrefix prefixes generated trader deal numbers (TF-2024-001).
	DealNumberPrefix = "TF"

	// MinCarYear is the oldest model year accepted into the catalog
	MinCarYear = 1990
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Quote kinds accepted in the configuration file
const (
	QuoteKindCalculator = "calculator"
	QuoteKindProfit     = "profit"
	QuoteKindTrader     = "trader"
)

// Storage back ends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	// DefaultRedisAddr is used when the redis back end has no address
	DefaultRedisAddr = "localhost:6379"

	// DefaultKeyPrefix prefixes the redis hash of every collection
	DefaultKeyPrefix = "dealer:"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. DEALER_STORAGE_BACKEND
	EnvPrefix = "DEALER"

	// DotEnvFile is loaded into the environment before the configuration
	DotEnvFile = ".env"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimitRequests is the number of requests a client may make per window
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow is the refill window of the rate limiter
	DefaultRateLimitWindow = "1m"
)
