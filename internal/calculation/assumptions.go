package calculation

import "github.com/Noyack/webapp-sub003/internal/domain"

// ApplyMarketAssumptions overlays the non-nil plan overrides onto a model
func ApplyMarketAssumptions(m MarketModel, a *domain.MarketAssumptions) MarketModel {
	if a == nil {
		return m
	}
	if a.MeanReturn != nil {
		m.MeanReturn = *a.MeanReturn
	}
	if a.ReturnStdDev != nil {
		m.ReturnStdDev = *a.ReturnStdDev
	}
	if a.BaseInflation != nil {
		m.BaseInflation = *a.BaseInflation
	}
	if a.InflationVolatility != nil {
		m.InflationVolatility = *a.InflationVolatility
	}
	if a.ReturnInflationCorrelation != nil {
		m.ReturnInflationCorrelation = *a.ReturnInflationCorrelation
	}
	return m
}

// ApplyPolicyAssumptions overlays the non-nil plan overrides onto a policy
func ApplyPolicyAssumptions(p LifecyclePolicy, a *domain.PolicyAssumptions) LifecyclePolicy {
	if a == nil {
		return p
	}
	if a.GlidePathBase != nil {
		p.GlidePathBase = *a.GlidePathBase
	}
	if a.MinEquityPct != nil {
		p.MinEquityPct = *a.MinEquityPct
	}
	if a.MaxEquityPct != nil {
		p.MaxEquityPct = *a.MaxEquityPct
	}
	if a.BondReturn != nil {
		p.BondReturn = *a.BondReturn
	}
	if a.SequenceRiskPenalty != nil {
		p.SequenceRiskPenalty = *a.SequenceRiskPenalty
	}
	if a.SequenceRiskYears != nil {
		p.SequenceRiskYears = *a.SequenceRiskYears
	}
	if a.MinRetirementReturn != nil {
		p.MinRetirementReturn = *a.MinRetirementReturn
	}
	return p
}

// EngineForPlan builds an engine from a plan document's simulation settings
// and model overrides. Extra options are applied last.
func EngineForPlan(plan *domain.PlanConfiguration, opts ...EngineOption) *MonteCarloEngine {
	cfg := MonteCarloConfig{
		NumSimulations: plan.Simulation.NumSimulations,
		Seed:           plan.Simulation.Seed,
		Workers:        plan.Simulation.Workers,
		SampleSize:     plan.Simulation.SampleSize,
	}
	all := []EngineOption{
		WithMarketModel(ApplyMarketAssumptions(DefaultMarketModel(), plan.Market)),
		WithPolicy(ApplyPolicyAssumptions(DefaultLifecyclePolicy(), plan.Policy)),
	}
	return NewMonteCarloEngine(cfg, append(all, opts...)...)
}
