package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/calculation"
	"github.com/valleyjudge/offer-comparison/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of offer comparison files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a comparison from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Comparison, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML comparison.
func (ip *InputParser) Parse(data []byte) (*domain.Comparison, error) {
	// years may be omitted from the file; an explicit value is kept as is.
	cmp := domain.Comparison{Years: domain.DefaultYears}
	if err := yaml.Unmarshal(data, &cmp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", domain.ErrInvalidInput, err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&cmp); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cmp, nil
}

// ValidateConfiguration validates the loaded comparison
func (ip *InputParser) ValidateConfiguration(cmp *domain.Comparison) error {
	if cmp.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrInvalidInput)
	}
	if cmp.Years < 1 || cmp.Years > 50 {
		return fmt.Errorf("%w: years must be between 1 and 50", domain.ErrInvalidInput)
	}
	if _, err := cmp.Granularity.PeriodsPerYear(); err != nil {
		return err
	}
	for _, p := range cmp.Paydays {
		if p < 1 || p > 31 {
			return fmt.Errorf("%w: payday %d is not a day of the month", domain.ErrInvalidInput, p)
		}
	}
	if cmp.AlreadyEarnedFirstYear.IsNegative() {
		return fmt.Errorf("%w: already_earned_first_year cannot be negative", domain.ErrInvalidInput)
	}
	if cmp.AlreadyEarnedState != "" {
		if _, err := calculation.LookupStateRegime(cmp.AlreadyEarnedState); err != nil {
			return fmt.Errorf("already_earned_state: %w", err)
		}
	}
	for _, s := range cmp.Series {
		if !isSeries(s) {
			return fmt.Errorf("%w: unknown series %q", domain.ErrInvalidInput, string(s))
		}
	}

	// Validate offers
	if len(cmp.Offers) == 0 {
		return fmt.Errorf("%w: no offers provided", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(cmp.Offers))
	for i, offer := range cmp.Offers {
		if err := ip.validateOffer(&offer); err != nil {
			return fmt.Errorf("offer %d validation failed: %w", i, err)
		}
		if seen[offer.Name] {
			return fmt.Errorf("%w: duplicate offer name %q", domain.ErrInvalidInput, offer.Name)
		}
		seen[offer.Name] = true
	}

	return nil
}

// validateOffer validates a single offer's data
func (ip *InputParser) validateOffer(offer *domain.Offer) error {
	if err := offer.Validate(); err != nil {
		return err
	}
	if _, err := calculation.LookupStateRegime(offer.State); err != nil {
		return err
	}
	if offer.Base.IsZero() && offer.Bonus.IsZero() && offer.SigningBonus.IsZero() && len(offer.Grants) == 0 {
		return fmt.Errorf("%w: offer %s pays nothing", domain.ErrInvalidInput, offer.Name)
	}
	return nil
}

func isSeries(s domain.SeriesKind) bool {
	for _, k := range domain.AllSeries() {
		if k == s {
			return true
		}
	}
	return false
}

// WriteConfiguration encodes a comparison as YAML.
func WriteConfiguration(w io.Writer, cmp *domain.Comparison) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cmp); err != nil {
		return err
	}
	return enc.Close()
}

// SaveConfiguration writes a comparison to a YAML file.
func SaveConfiguration(cmp *domain.Comparison, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteConfiguration(f, cmp); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CreateExampleConfiguration creates an example comparison of two offers
func (ip *InputParser) CreateExampleConfiguration() *domain.Comparison {
	startDate, _ := time.Parse("2006-01-02", "2016-08-15")

	return &domain.Comparison{
		Title:     "Example offers",
		StartDate: startDate,
		Years:     domain.DefaultYears,
		Offers: []domain.Offer{
			{
				Name:  "Initech",
				Base:  decimal.NewFromInt(105000),
				Bonus: decimal.NewFromInt(50000),
				State: "CA",
				Color: "red",
				Grants: []domain.RsuGrant{
					{Total: decimal.NewFromInt(100000)},
				},
			},
			{
				Name:  "Contoso",
				Base:  decimal.NewFromInt(95000),
				Bonus: decimal.NewFromInt(10000),
				State: "WA",
				Color: "purple",
				Grants: []domain.RsuGrant{
					{
						Total: decimal.NewFromInt(250000),
						Vesting: []decimal.Decimal{
							decimal.NewFromFloat(0.05),
							decimal.NewFromFloat(0.15),
							decimal.NewFromFloat(0.40),
							decimal.NewFromFloat(0.40),
						},
					},
				},
			},
		},
	}
}
