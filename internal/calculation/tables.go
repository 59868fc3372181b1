package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valleyjudge/offer-comparison/internal/domain"
)

// TAX TABLE ASSUMPTIONS:
//
// 1. All years of a projection use the 2016 tables; no bracket indexing.
// 2. Single filer, standard deduction, no credits.
// 3. Federal and state income taxes are computed independently on the same
//    gross income. State tax paid is not deducted from the federal base.
// 4. California SDI is modelled as a state payroll tax.

// TaxYear is the reference year of the built-in tables.
const TaxYear = 2016

// JurisdictionFederal names the federal regime.
const JurisdictionFederal = "US"

// JurisdictionNone is the empty state code: no state income or payroll tax.
const JurisdictionNone = ""

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func di(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// brackets builds a schedule from alternating threshold/rate pairs.
func brackets(pairs ...float64) []domain.Bracket {
	out := make([]domain.Bracket, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Bracket{Threshold: d(pairs[i]), Rate: d(pairs[i+1])})
	}
	return out
}

func federal2016() domain.TaxRegime {
	return domain.TaxRegime{
		Jurisdiction: JurisdictionFederal,
		Year:         TaxYear,
		Brackets: brackets(
			0, 0.10,
			9275, 0.15,
			37650, 0.25,
			91150, 0.28,
			190150, 0.33,
			413350, 0.35,
			415050, 0.396,
		),
		StandardDeduction: di(6300),
		PersonalExemption: domain.Exemption{Amount: di(4050), PhaseOutBegin: di(259400), PhaseOutEnd: di(381900)},
		Payroll: []domain.PayrollTax{
			{Name: "social security", Rate: d(0.062), WageCap: di(118500)},
			{Name: "medicare", Rate: d(0.0145)},
		},
		AMT: &domain.AMTSchedule{
			Exemption: domain.Exemption{Amount: di(53900), PhaseOutBegin: di(119700), PhaseOutEnd: di(333600)},
			Brackets:  brackets(0, 0.26, 186300, 0.28),
		},
	}
}

func california2016() domain.TaxRegime {
	return domain.TaxRegime{
		Jurisdiction: "CA",
		Year:         TaxYear,
		Brackets: brackets(
			0, 0.010,
			7582, 0.020,
			17976, 0.040,
			28371, 0.060,
			39384, 0.080,
			49774, 0.093,
			254250, 0.103,
			305100, 0.113,
			508500, 0.123,
			1000000, 0.133, // mental health services tax: +1% over $1M
		),
		StandardDeduction: di(4044),
		Payroll: []domain.PayrollTax{
			{Name: "SDI", Rate: d(0.009), WageCap: di(106742)},
		},
	}
}

func washington2016() domain.TaxRegime {
	return domain.TaxRegime{Jurisdiction: "WA", Year: TaxYear}
}

func noState() domain.TaxRegime {
	return domain.TaxRegime{Jurisdiction: JurisdictionNone, Year: TaxYear}
}

// regimes2016 is built once at startup and only ever handed out as clones.
var regimes2016 = map[string]domain.TaxRegime{
	JurisdictionFederal: federal2016(),
	"CA":                california2016(),
	"WA":                washington2016(),
	JurisdictionNone:    noState(),
}

// FederalRegime returns the federal tables.
func FederalRegime() domain.TaxRegime {
	return regimes2016[JurisdictionFederal].Clone()
}

// LookupRegime returns the tables for a state code (case-insensitive) or
// the federal code. The empty code is the no-state regime.
func LookupRegime(jurisdiction string) (domain.TaxRegime, error) {
	r, ok := regimes2016[NormalizeJurisdiction(jurisdiction)]
	if !ok {
		return domain.TaxRegime{}, fmt.Errorf("%w: %q (supported: %s)", domain.ErrUnknownJurisdiction,
			jurisdiction, strings.Join(SupportedStates(), ", "))
	}
	return r.Clone(), nil
}

// LookupStateRegime is LookupRegime restricted to state codes.
func LookupStateRegime(state string) (domain.TaxRegime, error) {
	if NormalizeJurisdiction(state) == JurisdictionFederal {
		return domain.TaxRegime{}, fmt.Errorf("%w: %q is the federal code, not a state", domain.ErrUnknownJurisdiction, state)
	}
	return LookupRegime(state)
}

// NormalizeJurisdiction maps a user-supplied code to its table key.
func NormalizeJurisdiction(jurisdiction string) string {
	return strings.ToUpper(strings.TrimSpace(jurisdiction))
}

// SupportedStates lists the state codes with tax tables.
func SupportedStates() []string {
	var out []string
	for k := range regimes2016 {
		if k != JurisdictionFederal && k != JurisdictionNone {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
