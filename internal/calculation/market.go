package calculation

import (
	"fmt"
	"math"

	"github.com/Noyack/webapp-sub003/internal/domain"
)

// MarketModel holds the parameters of the correlated return/inflation model.
// Rates are decimal fractions (0.07 means 7%).
type MarketModel struct {
	MeanReturn                 float64
	ReturnStdDev               float64
	BaseInflation              float64
	InflationVolatility        float64
	ReturnInflationCorrelation float64
}

// DefaultMarketModel returns the long-run assumptions used by the planner
func DefaultMarketModel() MarketModel {
	return MarketModel{
		MeanReturn:                 0.07,
		ReturnStdDev:               0.15,
		BaseInflation:              0.025,
		InflationVolatility:        0.015,
		ReturnInflationCorrelation: -0.3,
	}
}

// Validate checks that the model parameters describe a usable distribution
func (m MarketModel) Validate() error {
	if m.ReturnStdDev <= 0 {
		return fmt.Errorf("return std dev must be positive, got %g", m.ReturnStdDev)
	}
	if m.InflationVolatility < 0 {
		return fmt.Errorf("inflation volatility cannot be negative, got %g", m.InflationVolatility)
	}
	if m.ReturnInflationCorrelation < -1 || m.ReturnInflationCorrelation > 1 {
		return fmt.Errorf("return/inflation correlation must be within [-1, 1], got %g", m.ReturnInflationCorrelation)
	}
	if m.MeanReturn <= -1 {
		return fmt.Errorf("mean return must be greater than -100%%, got %g", m.MeanReturn)
	}
	return nil
}

// ScenarioGenerator draws market scenarios from a MarketModel
type ScenarioGenerator struct {
	Model  MarketModel
	Source UniformSource
}

// NewScenarioGenerator creates a generator bound to one random source
func NewScenarioGenerator(model MarketModel, src UniformSource) *ScenarioGenerator {
	return &ScenarioGenerator{Model: model, Source: src}
}

// Generate draws one scenario covering the given number of years. Each year's
// inflation is correlated with that year's market return and floored at zero.
func (g *ScenarioGenerator) Generate(years int) domain.MarketScenario {
	if years <= 0 {
		return domain.MarketScenario{Returns: []float64{}, InflationRates: []float64{}}
	}

	m := g.Model
	scenario := domain.MarketScenario{
		Returns:        make([]float64, years),
		InflationRates: make([]float64, years),
	}
	independentWeight := math.Sqrt(1 - m.ReturnInflationCorrelation*m.ReturnInflationCorrelation)

	for year := 0; year < years; year++ {
		marketReturn := Normal(g.Source, m.MeanReturn, m.ReturnStdDev)

		zReturn := (marketReturn - m.MeanReturn) / m.ReturnStdDev
		correlated := m.ReturnInflationCorrelation * zReturn * m.InflationVolatility
		independent := independentWeight * Normal(g.Source, 0, m.InflationVolatility)

		scenario.Returns[year] = marketReturn
		scenario.InflationRates[year] = math.Max(0, m.BaseInflation+correlated+independent)
	}

	return scenario
}
