package config

import (
	"fmt"
	"os"

	"github.com/rpgo/withdrawal-sweep/internal/calculation"
	"github.com/rpgo/withdrawal-sweep/internal/domain"
	money "github.com/rpgo/withdrawal-sweep/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ScenarioInput holds scenario values in form units: dollar amounts in
// thousands and rates as whole-number percentages.
type ScenarioInput struct {
	Spend        decimal.Decimal `yaml:"spend" json:"spend"`
	MinSpend     decimal.Decimal `yaml:"min_spend" json:"min_spend"`
	Balance      decimal.Decimal `yaml:"balance" json:"balance"`
	BondYield    decimal.Decimal `yaml:"bond_yield" json:"bond_yield"`
	BondAmount   decimal.Decimal `yaml:"bond_amount" json:"bond_amount"`
	Cash         decimal.Decimal `yaml:"cash" json:"cash"`
	CashTarget   decimal.Decimal `yaml:"cash_target" json:"cash_target"`
	COLA         decimal.Decimal `yaml:"cola" json:"cola"`
	Pension      decimal.Decimal `yaml:"pension" json:"pension"`
	PensionStart int             `yaml:"pension_start" json:"pension_start"`
	Spouse       decimal.Decimal `yaml:"spouse" json:"spouse"`
	SpouseStart  int             `yaml:"spouse_start" json:"spouse_start"`
}

// SweepInput configures the historical sweep and grid scan.
type SweepInput struct {
	DataFile            string `yaml:"data_file" json:"data_file"`
	PresentYear         int    `yaml:"present_year" json:"present_year"`
	FirstYear           int    `yaml:"first_year" json:"first_year"`
	Workers             int    `yaml:"workers" json:"workers"`
	GraduatedSpendTiers bool   `yaml:"graduated_spend_tiers" json:"graduated_spend_tiers"`
}

// Configuration is the on-disk input file shape.
type Configuration struct {
	Scenario ScenarioInput `yaml:"scenario" json:"scenario"`
	Sweep    SweepInput    `yaml:"sweep" json:"sweep"`
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	// Getenv resolves environment overrides; defaults to os.Getenv.
	Getenv func(string) string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Getenv: os.Getenv}
}

// LoadFromFile loads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML input, applies defaults and environment overrides, and validates.
func (ip *InputParser) Parse(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&config)
	if err := ip.applyEnv(&config); err != nil {
		return nil, fmt.Errorf("environment override failed: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

func applyDefaults(config *Configuration) {
	if config.Sweep.PresentYear == 0 {
		config.Sweep.PresentYear = calculation.DefaultPresentYear
	}
	if config.Sweep.FirstYear == 0 {
		config.Sweep.FirstYear = calculation.DefaultFirstYear
	}
	if config.Sweep.Workers == 0 {
		config.Sweep.Workers = calculation.DefaultWorkers
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if err := ip.validateSweep(&config.Sweep); err != nil {
		return fmt.Errorf("sweep validation failed: %w", err)
	}
	if err := config.Parameters().Validate(); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateSweep(sweep *SweepInput) error {
	if sweep.FirstYear >= sweep.PresentYear {
		return &domain.InvalidParameterError{Field: "first_year", Value: float64(sweep.FirstYear), Reason: "must precede present_year"}
	}
	if sweep.Workers < 0 {
		return &domain.InvalidParameterError{Field: "workers", Value: float64(sweep.Workers), Reason: "cannot be negative"}
	}
	return nil
}

// Parameters converts form units into simulation parameters.
func (c *Configuration) Parameters() domain.ScenarioParameters {
	s := c.Scenario
	return domain.ScenarioParameters{
		Spend:                    money.FromThousands(s.Spend).Float64(),
		MinSpend:                 money.FromThousands(s.MinSpend).Float64(),
		OriginalBalance:          money.FromThousands(s.Balance).Float64(),
		BondYield:                money.RateFromPercent(s.BondYield).InexactFloat64(),
		BondAmount:               money.FromThousands(s.BondAmount).Float64(),
		PiggyBankInit:            money.FromThousands(s.Cash).Float64(),
		PiggyBankTarget:          money.FromThousands(s.CashTarget).Float64(),
		COLA:                     money.RateFromPercent(s.COLA).InexactFloat64(),
		PensionAmount:            money.FromThousands(s.Pension).Float64(),
		PensionStartOffset:       s.PensionStart,
		SpouseBenefitAmount:      money.FromThousands(s.Spouse).Float64(),
		SpouseBenefitStartOffset: s.SpouseStart,
	}
}

// GridOptions converts the sweep section into scanner options.
func (c *Configuration) GridOptions() calculation.GridOptions {
	return calculation.GridOptions{
		PresentYear:    c.Sweep.PresentYear,
		FirstYear:      c.Sweep.FirstYear,
		Workers:        c.Sweep.Workers,
		GraduatedTiers: c.Sweep.GraduatedSpendTiers,
	}
}
