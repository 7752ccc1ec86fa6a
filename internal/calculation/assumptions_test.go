package calculation

import (
	"testing"

	"github.com/Noyack/webapp-sub003/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestApplyMarketAssumptions(t *testing.T) {
	assert.Equal(t, DefaultMarketModel(), ApplyMarketAssumptions(DefaultMarketModel(), nil))

	mean := 0.05
	corr := -0.5
	m := ApplyMarketAssumptions(DefaultMarketModel(), &domain.MarketAssumptions{
		MeanReturn:                 &mean,
		ReturnInflationCorrelation: &corr,
	})
	assert.Equal(t, 0.05, m.MeanReturn)
	assert.Equal(t, -0.5, m.ReturnInflationCorrelation)
	assert.Equal(t, 0.15, m.ReturnStdDev)
}

func TestApplyPolicyAssumptions(t *testing.T) {
	base := 120
	years := 0
	p := ApplyPolicyAssumptions(DefaultLifecyclePolicy(), &domain.PolicyAssumptions{
		GlidePathBase:     &base,
		SequenceRiskYears: &years,
	})
	assert.Equal(t, 120, p.GlidePathBase)
	assert.Equal(t, 0, p.SequenceRiskYears)
	assert.Equal(t, 0.035, p.BondReturn)

	// no penalty years means the blended return is used as is
	assert.InDelta(t, 0.55*0.10+0.45*0.035, p.RetirementReturn(65, 0, 0.10), 1e-12)
}

func TestEngineForPlan(t *testing.T) {
	vol := 0.2
	plan := &domain.PlanConfiguration{
		Simulation: domain.SimulationSettings{NumSimulations: 250, Seed: 9, Workers: 3, SampleSize: 10},
		Market:     &domain.MarketAssumptions{ReturnStdDev: &vol},
	}

	e := EngineForPlan(plan)
	assert.Equal(t, 250, e.Config().NumSimulations)
	assert.Equal(t, uint64(9), e.Config().Seed)
	assert.Equal(t, 3, e.Config().Workers)
	assert.Equal(t, 10, e.Config().SampleSize)
	assert.Equal(t, 0.2, e.MarketModel().ReturnStdDev)
	assert.Equal(t, DefaultLifecyclePolicy(), e.Policy())
}
