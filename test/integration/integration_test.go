package integration

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valleyjudge/offer-comparison/internal/calculation"
	"github.com/valleyjudge/offer-comparison/internal/config"
	"github.com/valleyjudge/offer-comparison/internal/output"
)

const exampleOffers = "../testdata/example_offers.yaml"

func TestEndToEndCalculation(t *testing.T) {
	// Test that we can load a configuration and run calculations
	parser := config.NewInputParser()
	cmp, err := parser.LoadFromFile(exampleOffers)
	require.NoError(t, err)
	assert.Len(t, cmp.Offers, 2)

	engine := calculation.NewCalculationEngine()
	results, err := engine.Compare(*cmp)
	require.NoError(t, err)
	require.Len(t, results.Offers, 2)

	// Four years of monthly points, every offer on the same dates
	for _, o := range results.Offers {
		require.Len(t, o.Points, 48)
		assert.Equal(t, results.Offers[0].Points[47].Date, o.Points[47].Date)
		assert.True(t, o.Final().Total.GreaterThan(decimal.Zero))
		assert.True(t, o.Final().Tax.GreaterThan(decimal.Zero), "%s paid no tax", o.Name)
	}

	rec := output.AnalyzeOffers(results)
	assert.NotEmpty(t, rec.OfferName)
	assert.NotEmpty(t, rec.RunnerUp)
	assert.True(t, rec.NetIncomeChange.GreaterThanOrEqual(decimal.Zero))
}

func TestConfigurationMatchesExample(t *testing.T) {
	parser := config.NewInputParser()
	fromFile, err := parser.LoadFromFile(exampleOffers)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(fromFile))

	engine := calculation.NewCalculationEngine()
	a, err := engine.Compare(*fromFile)
	require.NoError(t, err)
	b, err := engine.Compare(*parser.CreateExampleConfiguration())
	require.NoError(t, err)
	for i := range a.Offers {
		assert.True(t, a.Offers[i].Final().Total.Equal(b.Offers[i].Final().Total),
			"%s: %s != %s", a.Offers[i].Name, a.Offers[i].Final().Total, b.Offers[i].Final().Total)
	}
}

func TestAllFormatsRender(t *testing.T) {
	cmp, err := config.NewInputParser().LoadFromFile(exampleOffers)
	require.NoError(t, err)
	results, err := calculation.NewCalculationEngine().Compare(*cmp)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f, err := output.LookupFormatter(name, output.Options{})
			require.NoError(t, err)
			out, err := f.Format(results)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}
