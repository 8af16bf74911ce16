// Package config defines the data structures related to configuration and
// includes functions for loading and checking it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/dealer-finance/internal/storage"
	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/iwvelando/dealer-finance/pkg/datetime"
	"github.com/iwvelando/dealer-finance/pkg/finance"
	"github.com/iwvelando/dealer-finance/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for dealer-finance.
type Configuration struct {
	Logging LoggingConfig  `yaml:"logging,omitempty"`
	Output  OutputConfig   `yaml:"output,omitempty"`
	Storage storage.Config `yaml:"storage,omitempty"`
	Finance finance.Policy `yaml:"finance,omitempty"`
	Seed    SeedConfig     `yaml:"seed,omitempty"`
	Quotes  []Quote        `yaml:"quotes,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// SeedConfig controls which default records are installed into an empty
// store when the server starts.
type SeedConfig struct {
	Catalog bool `yaml:"catalog"`
	Rules   bool `yaml:"rules"`
	Deals   bool `yaml:"deals"`
}

// Quote declares one calculation for the CLI to run. Kind selects which of
// the input blocks is used.
type Quote struct {
	Name       string                  `yaml:"name"`
	Kind       string                  `yaml:"kind"` // calculator, profit, trader
	Schedule   bool                    `yaml:"schedule,omitempty"`
	StartDate  string                  `yaml:"startDate,omitempty"` // first payment date of the schedule
	Calculator finance.CalculatorInput `yaml:"calculator,omitempty"`
	Profit     finance.ProfitInput     `yaml:"profit,omitempty"`
	Rule       finance.RuleTerms       `yaml:"rule,omitempty"`
	RuleType   string                  `yaml:"ruleType,omitempty"` // use the default rule of this car type
	Trader     finance.TraderInput     `yaml:"trader,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make the keys known to viper so environment overrides apply
	// even when the file leaves them out.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("storage.backend", constants.StorageMemory)
	v.SetDefault("storage.redisAddr", constants.DefaultRedisAddr)
	v.SetDefault("storage.redisDB", 0)
	v.SetDefault("storage.keyPrefix", constants.DefaultKeyPrefix)
	v.SetDefault("storage.databaseURL", "")
	v.SetDefault("finance.minDownPaymentPercent", constants.DefaultMinDownPaymentPercent)
	v.SetDefault("finance.traderSharePercent", constants.DefaultTraderSharePercent)
	v.SetDefault("seed.catalog", true)
	v.SetDefault("seed.rules", true)
	v.SetDefault("seed.deals", true)
	return v
}

// loadDotEnv reads a .env file into the process environment. Variables that
// are already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s, %s", path, err)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A .env file in the working directory is loaded first
// and DEALER_ prefixed environment variables override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if err := loadDotEnv(constants.DotEnvFile); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// Environment overrides apply as for LoadConfiguration; .env is not read.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Validate returns an error for settings that cannot work.
func (c *Configuration) Validate() error {
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	if err := validation.ValidateStorageBackend(c.Storage.Backend); err != nil {
		return err
	}
	if c.Storage.Backend == constants.StoragePostgres && c.Storage.DatabaseURL == "" {
		return fmt.Errorf("storage backend %s requires storage.databaseURL", constants.StoragePostgres)
	}
	for i, quote := range c.Quotes {
		if err := validation.ValidateQuoteKind(quote.Kind); err != nil {
			return fmt.Errorf("quote %d (%s): %w", i+1, quote.Name, err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	names := make([]string, 0, len(c.Quotes))
	for i, quote := range c.Quotes {
		if strings.TrimSpace(quote.Name) == "" {
			warnings = append(warnings, fmt.Sprintf("Quote %d has no name", i+1))
		}
		names = append(names, quote.Name)

		if quote.StartDate != "" && !datetime.ValidDate(quote.StartDate) {
			warnings = append(warnings, fmt.Sprintf("Quote '%s' has start date %q not in %s format; payment dates are omitted",
				quote.Name, quote.StartDate, datetime.DateLayout))
		}
		if quote.StartDate != "" && !quote.Schedule {
			warnings = append(warnings, fmt.Sprintf("Quote '%s' sets a start date but no schedule", quote.Name))
		}
		if quote.Kind == constants.QuoteKindProfit && quote.RuleType != "" && quote.Rule != (finance.RuleTerms{}) {
			warnings = append(warnings, fmt.Sprintf("Quote '%s' sets both rule and ruleType; rule is used", quote.Name))
		}
	}
	warnings = append(warnings, validation.DuplicateNames("Quote", names)...)

	if c.Finance.TraderSharePercent > 100 {
		warnings = append(warnings, fmt.Sprintf("Trader share of %.2f%% exceeds 100%%; the company share will be negative",
			c.Finance.TraderSharePercent))
	}
	if c.Finance.MinDownPaymentPercent >= 100 {
		warnings = append(warnings, fmt.Sprintf("Minimum down payment of %.2f%% leaves nothing to finance",
			c.Finance.MinDownPaymentPercent))
	}

	return warnings
}
